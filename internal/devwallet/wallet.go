// Package devwallet is a development stand-in for a real provider
// bridge: a local daemon that speaks the nova bridge protocol and signs
// with a real secp256k1 key derived from an encrypted on-disk seed. It
// exists so the session service can be exercised end to end without any
// third-party wallet installed.
package devwallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

// Wallet holds the derived signing key.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
}

// NewWallet derives the wallet key from seed on a fixed hardened path.
func NewWallet(seed []byte) (*Wallet, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive master key")
	}

	// Fixed path m/44'/60'/0': one account is all a dev bridge needs.
	key := master
	for _, index := range []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild,
	} {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive child key")
		}
	}

	privateKey, err := crypto.ToECDSA(key.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build ECDSA key")
	}

	return &Wallet{privateKey: privateKey}, nil
}

// PublicKey returns the hex-encoded compressed public key.
func (w *Wallet) PublicKey() string {
	return hex.EncodeToString(crypto.CompressPubkey(&w.privateKey.PublicKey))
}

// Address returns the 0x-prefixed account address.
func (w *Wallet) Address() string {
	return crypto.PubkeyToAddress(w.privateKey.PublicKey).Hex()
}

// AuthKey returns the account's authentication key. The dev bridge keeps
// it equal to the keccak hash of the public key.
func (w *Wallet) AuthKey() string {
	pub := crypto.FromECDSAPub(&w.privateKey.PublicKey)
	return "0x" + hex.EncodeToString(crypto.Keccak256(pub[1:]))
}

// SignPayload signs the keccak digest of an opaque payload.
func (w *Wallet) SignPayload(payload []byte) ([]byte, error) {
	digest := crypto.Keccak256(payload)
	signature, err := crypto.Sign(digest, w.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign payload")
	}
	return signature, nil
}

// SignMessage signs a personal message with the standard recoverable
// prefix, so signatures cannot be replayed as transactions.
func (w *Wallet) SignMessage(message string) (string, error) {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	signature, err := crypto.Sign(crypto.Keccak256([]byte(prefixed)), w.privateKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign message")
	}
	return "0x" + hex.EncodeToString(signature), nil
}
