// Package metrics exposes Prometheus instrumentation for the session
// layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service holds the session-layer collectors. All methods are safe for
// concurrent use.
type Service struct {
	registry *prometheus.Registry

	connectAttempts *prometheus.CounterVec
	signOps         *prometheus.CounterVec
	sessionActive   prometheus.Gauge
}

func New() *Service {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Service{
		registry: registry,
		connectAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_session_connect_attempts_total",
			Help: "Connect attempts per provider and outcome.",
		}, []string{"provider", "outcome"}),
		signOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_session_sign_operations_total",
			Help: "Sign operations per provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		sessionActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wallet_session_active",
			Help: "1 while a provider session is connected.",
		}),
	}
}

// Registry returns the backing registry for the metrics endpoint.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Service) ObserveConnect(providerName string, err error) {
	s.connectAttempts.WithLabelValues(providerName, outcome(err)).Inc()
}

func (s *Service) ObserveSign(providerName, operation string, err error) {
	s.signOps.WithLabelValues(providerName, operation, outcome(err)).Inc()
}

func (s *Service) SetSessionActive(active bool) {
	if active {
		s.sessionActive.Set(1)
		return
	}
	s.sessionActive.Set(0)
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
