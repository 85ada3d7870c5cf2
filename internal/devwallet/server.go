package devwallet

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Envelope error codes of the nova protocol.
const (
	codeInvalidRequest = 4000
	codeUserRejected   = 4001
	codeInternal       = 5000
)

type rpcRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	ID     string    `json:"id"`
	Result any       `json:"result,omitempty"`
	Error  *rpcError `json:"error,omitempty"`
}

// Server serves the nova bridge protocol over a local HTTP endpoint.
type Server struct {
	mu        sync.Mutex
	connected bool

	wallet *Wallet
	reject bool
	echo   *echo.Echo
}

// NewServer builds the daemon. With reject set, every connect and sign
// request answers with the user-rejected envelope code, which is how a
// declined wallet prompt looks to the adapter.
func NewServer(wallet *Wallet, reject bool) *Server {
	s := &Server{
		wallet: wallet,
		reject: reject,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", s.getHealthz)
	e.POST("/rpc", s.postRPC)

	s.echo = e
	return s
}

// Start blocks serving on listenAddress.
func (s *Server) Start(listenAddress string) error {
	log.Info().Str("listen_address", listenAddress).Str("address", s.wallet.Address()).Msg("Starting devwallet bridge")
	return s.echo.Start(listenAddress)
}

// Echo exposes the underlying server for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) getHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) postRPC(c echo.Context) error {
	var req rpcRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, rpcResponse{
			Error: &rpcError{Code: codeInvalidRequest, Message: "malformed request"},
		})
	}

	res := rpcResponse{ID: req.ID}

	switch req.Method {
	case "wallet_connect":
		res = s.handleConnect(req)
	case "wallet_disconnect":
		res = s.handleDisconnect(req)
	case "wallet_isConnected":
		s.mu.Lock()
		res.Result = s.connected
		s.mu.Unlock()
	case "wallet_signTransaction":
		res = s.handleSignTransaction(req)
	case "wallet_signAndSubmitTransaction":
		res = s.handleSignAndSubmit(req)
	case "wallet_signMessage":
		res = s.handleSignMessage(req)
	default:
		res.Error = &rpcError{Code: codeInvalidRequest, Message: "unknown method " + req.Method}
	}

	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleConnect(req rpcRequest) rpcResponse {
	if s.reject {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeUserRejected, Message: "connection rejected"}}
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	return rpcResponse{ID: req.ID, Result: map[string]string{
		"publicKey": s.wallet.PublicKey(),
		"address":   s.wallet.Address(),
		"authKey":   s.wallet.AuthKey(),
	}}
}

func (s *Server) handleDisconnect(req rpcRequest) rpcResponse {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()

	return rpcResponse{ID: req.ID, Result: map[string]bool{"disconnected": true}}
}

func (s *Server) requireSession(req rpcRequest) *rpcResponse {
	if s.reject {
		return &rpcResponse{ID: req.ID, Error: &rpcError{Code: codeUserRejected, Message: "request rejected"}}
	}

	s.mu.Lock()
	connected := s.connected
	s.mu.Unlock()

	if !connected {
		return &rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInvalidRequest, Message: "no active session"}}
	}
	return nil
}

func (s *Server) handleSignTransaction(req rpcRequest) rpcResponse {
	if res := s.requireSession(req); res != nil {
		return *res
	}

	signed, err := s.wallet.SignPayload(req.Params)
	if err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInternal, Message: err.Error()}}
	}

	return rpcResponse{ID: req.ID, Result: map[string]string{
		"signedPayload": base64.StdEncoding.EncodeToString(signed),
	}}
}

func (s *Server) handleSignAndSubmit(req rpcRequest) rpcResponse {
	if res := s.requireSession(req); res != nil {
		return *res
	}

	var params struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInvalidRequest, Message: "malformed params"}}
	}

	signed, err := s.wallet.SignPayload(params.Payload)
	if err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInternal, Message: err.Error()}}
	}

	// There is no chain behind a dev bridge; the submission hash is the
	// digest of the signed payload.
	hash := "0x" + hex.EncodeToString(crypto.Keccak256(signed))

	return rpcResponse{ID: req.ID, Result: map[string]string{"hash": hash}}
}

func (s *Server) handleSignMessage(req rpcRequest) rpcResponse {
	if res := s.requireSession(req); res != nil {
		return *res
	}

	var params struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInvalidRequest, Message: "malformed params"}}
	}

	signature, err := s.wallet.SignMessage(params.Message)
	if err != nil {
		return rpcResponse{ID: req.ID, Error: &rpcError{Code: codeInternal, Message: err.Error()}}
	}

	return rpcResponse{ID: req.ID, Result: map[string]string{"signature": signature}}
}
