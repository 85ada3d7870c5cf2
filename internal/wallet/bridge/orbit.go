package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Orbit bridge protocol: one POST route per operation under /v1, with an
// HTTP-status-like "status" integer inside the response envelope. The
// outer HTTP exchange always answers 200; 200/403/5xx-style outcomes live
// in the envelope.

const (
	orbitLookupProbeTimeout   = 500 * time.Millisecond
	orbitDefaultClientTimeout = 30 * time.Second
)

// OrbitClient speaks the orbit bridge protocol against a local daemon.
type OrbitClient struct {
	endpoint string
	http     *http.Client
}

var _ Native = (*OrbitClient)(nil)

func NewOrbitClient(endpoint string) *OrbitClient {
	return &OrbitClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: orbitDefaultClientTimeout},
	}
}

func (c *OrbitClient) post(ctx context.Context, op string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request")
		}
		reader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/"+op, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "bridge call %s failed", op)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bridge call %s: unexpected HTTP status %d", op, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", op)
	}

	return raw, nil
}

func (c *OrbitClient) Connect(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "connect", nil)
}

func (c *OrbitClient) Disconnect(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "disconnect", nil)
}

func (c *OrbitClient) IsConnected(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "is-connected", nil)
}

func (c *OrbitClient) SignTransaction(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "sign-transaction", payload)
}

func (c *OrbitClient) SignAndSubmitTransaction(ctx context.Context, payload, opts json.RawMessage) (json.RawMessage, error) {
	return c.post(ctx, "sign-and-submit", map[string]json.RawMessage{
		"payload": payload,
		"options": opts,
	})
}

func (c *OrbitClient) SignMessage(ctx context.Context, message string) (json.RawMessage, error) {
	return c.post(ctx, "sign-message", map[string]string{"message": message})
}

// OrbitLocator probes the orbit daemon's status endpoint and hands out a
// client once the daemon is reachable.
type OrbitLocator struct {
	endpoint string
	http     *http.Client
}

var _ Locator = (*OrbitLocator)(nil)

func NewOrbitLocator(endpoint string) *OrbitLocator {
	return &OrbitLocator{
		endpoint: endpoint,
		http:     &http.Client{Timeout: orbitLookupProbeTimeout},
	}
}

func (l *OrbitLocator) Lookup(ctx context.Context) (Native, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/v1/status", nil)
	if err != nil {
		return nil, false
	}

	res, err := l.http.Do(req)
	if err != nil {
		return nil, false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, false
	}

	return NewOrbitClient(l.endpoint), true
}
