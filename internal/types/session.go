package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostSelectPayload selects a provider without connecting.
type PostSelectPayload struct {
	// Provider name
	// Required: true
	Provider *string `json:"provider"`
}

// Validate validates this post select payload
func (m *PostSelectPayload) Validate(formats strfmt.Registry) error {
	if err := validate.Required("provider", "body", m.Provider); err != nil {
		return errors.CompositeValidationError(err)
	}
	return nil
}

// PostConnectPayload connects to the named or currently selected
// provider.
type PostConnectPayload struct {
	// Provider name, empty for the current selection
	Provider string `json:"provider,omitempty"`
}

// Validate validates this post connect payload
func (m *PostConnectPayload) Validate(_ strfmt.Registry) error {
	return nil
}

// PostSignTransactionPayload carries an opaque transaction payload.
type PostSignTransactionPayload struct {
	// Opaque transaction payload
	// Required: true
	Payload json.RawMessage `json:"payload"`
}

// Validate validates this post sign transaction payload
func (m *PostSignTransactionPayload) Validate(_ strfmt.Registry) error {
	if len(m.Payload) == 0 {
		return errors.CompositeValidationError(errors.Required("payload", "body", nil))
	}
	return nil
}

// PostSignAndSubmitPayload carries an opaque transaction payload plus
// optional submission options.
type PostSignAndSubmitPayload struct {
	// Opaque transaction payload
	// Required: true
	Payload json.RawMessage `json:"payload"`

	// Opaque submission options
	Options json.RawMessage `json:"options,omitempty"`
}

// Validate validates this post sign and submit payload
func (m *PostSignAndSubmitPayload) Validate(_ strfmt.Registry) error {
	if len(m.Payload) == 0 {
		return errors.CompositeValidationError(errors.Required("payload", "body", nil))
	}
	return nil
}

// PostSignMessagePayload carries a message to sign.
type PostSignMessagePayload struct {
	// Message to sign
	// Required: true
	Message *string `json:"message"`
}

// Validate validates this post sign message payload
func (m *PostSignMessagePayload) Validate(_ strfmt.Registry) error {
	if err := validate.Required("message", "body", m.Message); err != nil {
		return errors.CompositeValidationError(err)
	}
	return nil
}

// AccountResponse is the public account snapshot. Fields are null while
// no session is connected.
type AccountResponse struct {
	PublicKey *string `json:"publicKey"`
	Address   *string `json:"address"`
	AuthKey   *string `json:"authKey"`
}

// Validate validates this account response
func (m *AccountResponse) Validate(_ strfmt.Registry) error {
	return nil
}

// SessionResponse is the published session state.
type SessionResponse struct {
	Selected      string           `json:"selected,omitempty"`
	Account       *AccountResponse `json:"account,omitempty"`
	Connected     bool             `json:"connected"`
	Connecting    bool             `json:"connecting"`
	Disconnecting bool             `json:"disconnecting"`
	AutoConnect   bool             `json:"autoConnect"`
}

// Validate validates this session response
func (m *SessionResponse) Validate(formats strfmt.Registry) error {
	if m.Account != nil {
		if err := m.Account.Validate(formats); err != nil {
			return err
		}
	}
	return nil
}

// ProviderResponse describes one registry entry.
type ProviderResponse struct {
	Name       string `json:"name"`
	ReadyState string `json:"readyState"`
	Connected  bool   `json:"connected"`
	InstallURL string `json:"installUrl,omitempty"`
}

// ProviderListResponse is the ordered registry snapshot.
type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
}

// Validate validates this provider list response
func (m *ProviderListResponse) Validate(_ strfmt.Registry) error {
	return nil
}

// SignTransactionResponse carries the normalized signing result.
type SignTransactionResponse struct {
	// Base64-encoded signed payload
	SignedPayload string `json:"signedPayload"`
}

// Validate validates this sign transaction response
func (m *SignTransactionResponse) Validate(_ strfmt.Registry) error {
	return nil
}

// SignAndSubmitResponse carries the submission hash.
type SignAndSubmitResponse struct {
	Hash string `json:"hash"`
}

// Validate validates this sign and submit response
func (m *SignAndSubmitResponse) Validate(_ strfmt.Registry) error {
	return nil
}

// SignMessageResponse carries the message signature.
type SignMessageResponse struct {
	Signature string `json:"signature"`
}

// Validate validates this sign message response
func (m *SignMessageResponse) Validate(_ strfmt.Registry) error {
	return nil
}
