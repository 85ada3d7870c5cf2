package devwallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// Seed file: 32 random bytes encrypted with AES-256-GCM under a
// scrypt-derived key.

const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	seedLen      = 32
)

type seedFile struct {
	EncryptedSeed string `json:"encryptedSeed"`
	Salt          string `json:"salt"`
	Nonce         string `json:"nonce"`
	KDF           string `json:"kdf"`
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	return key, nil
}

// CreateSeedFile generates a fresh random seed and writes it encrypted to
// path. The plaintext seed is returned for immediate use.
func CreateSeedFile(path, password string) ([]byte, error) {
	seed := make([]byte, seedLen)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, errors.Wrap(err, "failed to generate seed")
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init GCM")
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}

	encrypted := gcm.Seal(nil, nonce, seed, nil)

	raw, err := json.Marshal(seedFile{
		EncryptedSeed: hex.EncodeToString(encrypted),
		Salt:          hex.EncodeToString(salt),
		Nonce:         hex.EncodeToString(nonce),
		KDF:           "scrypt",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal seed file")
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write seed file")
	}

	return seed, nil
}

// OpenSeedFile decrypts the seed stored at path.
func OpenSeedFile(path, password string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read seed file")
	}

	var file seedFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed file")
	}
	if file.KDF != "scrypt" {
		return nil, errors.Errorf("unsupported KDF %q", file.KDF)
	}

	salt, err := hex.DecodeString(file.Salt)
	if err != nil {
		return nil, errors.Wrap(err, "invalid salt encoding")
	}
	nonce, err := hex.DecodeString(file.Nonce)
	if err != nil {
		return nil, errors.Wrap(err, "invalid nonce encoding")
	}
	encrypted, err := hex.DecodeString(file.EncryptedSeed)
	if err != nil {
		return nil, errors.Wrap(err, "invalid seed encoding")
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init GCM")
	}

	seed, err := gcm.Open(nil, nonce, encrypted, nil)
	if err != nil {
		return nil, errors.New("invalid password or corrupted seed file")
	}

	return seed, nil
}

// SeedFileExists reports whether a seed file is present at path.
func SeedFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
