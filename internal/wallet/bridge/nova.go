package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Nova bridge protocol: a single POST /rpc endpoint taking
// {id, method, params} and answering with a {result, error} envelope.
// Failures travel in the envelope's error object, never in the HTTP
// status.

const (
	novaMethodConnect        = "wallet_connect"
	novaMethodDisconnect     = "wallet_disconnect"
	novaMethodIsConnected    = "wallet_isConnected"
	novaMethodSignTxn        = "wallet_signTransaction"
	novaMethodSignAndSubmit  = "wallet_signAndSubmitTransaction"
	novaMethodSignMessage    = "wallet_signMessage"
	novaLookupProbeTimeout   = 500 * time.Millisecond
	novaDefaultClientTimeout = 30 * time.Second
)

type novaRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NovaClient speaks the nova bridge protocol against a local daemon.
type NovaClient struct {
	endpoint string
	http     *http.Client
}

var _ Native = (*NovaClient)(nil)

func NewNovaClient(endpoint string) *NovaClient {
	return &NovaClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: novaDefaultClientTimeout},
	}
}

func (c *NovaClient) call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	reqBody, err := json.Marshal(novaRequest{
		ID:     uuid.NewString(),
		Method: method,
		Params: params,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/rpc", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "bridge call %s failed", method)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("bridge call %s: unexpected HTTP status %d", method, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", method)
	}

	return raw, nil
}

func (c *NovaClient) Connect(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, novaMethodConnect, nil)
}

func (c *NovaClient) Disconnect(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, novaMethodDisconnect, nil)
}

func (c *NovaClient) IsConnected(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, novaMethodIsConnected, nil)
}

func (c *NovaClient) SignTransaction(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.call(ctx, novaMethodSignTxn, payload)
}

func (c *NovaClient) SignAndSubmitTransaction(ctx context.Context, payload, opts json.RawMessage) (json.RawMessage, error) {
	params, err := json.Marshal(map[string]json.RawMessage{
		"payload": payload,
		"options": opts,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal params")
	}
	return c.call(ctx, novaMethodSignAndSubmit, params)
}

func (c *NovaClient) SignMessage(ctx context.Context, message string) (json.RawMessage, error) {
	params, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal params")
	}
	return c.call(ctx, novaMethodSignMessage, params)
}

// NovaLocator probes the nova daemon's health endpoint and hands out a
// client once the daemon is reachable.
type NovaLocator struct {
	endpoint string
	http     *http.Client
}

var _ Locator = (*NovaLocator)(nil)

func NewNovaLocator(endpoint string) *NovaLocator {
	return &NovaLocator{
		endpoint: endpoint,
		http:     &http.Client{Timeout: novaLookupProbeTimeout},
	}
}

func (l *NovaLocator) Lookup(ctx context.Context) (Native, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/healthz", nil)
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

	return NewNovaClient(l.endpoint), true
}
