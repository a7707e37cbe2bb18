// Package crypto implements the encryption provider behind the store's
// persistence boundary: whole-file AES-256-GCM with Argon2id key derivation
// for plaintext passphrases.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"

	"github.com/iudanet/secretsguard/internal/store"
)

const (
	// NonceSize is the AES-GCM nonce size (12 bytes standard)
	NonceSize = 12
	// KeySize is the AES-256 key size
	KeySize = 32

	// Argon2id parameters
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

// deriveSalt is an application-scoped constant: a passphrase must always
// derive to the same key, so the derived form can be cached (keyring) and
// handed back later as a pre-derived key.
var deriveSalt = []byte("secretsguard.v1.store-key")

// DeriveKey derives the AES key for a plaintext passphrase. Deterministic by
// design; see deriveSalt.
func DeriveKey(passphrase string) []byte {
	return argon2.IDKey([]byte(passphrase), deriveSalt, argon2Time, argon2Memory, argon2Threads, KeySize)
}

// FileCipher encrypts and decrypts whole store artifacts on disk.
// Artifact layout: nonce (12 bytes) + ciphertext + GCM auth tag.
type FileCipher struct{}

// Compile-time check that FileCipher satisfies the store's provider contract
var _ store.Cipher = (*FileCipher)(nil)

// NewFileCipher creates the default file cipher.
func NewFileCipher() *FileCipher {
	return &FileCipher{}
}

// Encrypt writes plaintext encrypted under key to path.
func (c *FileCipher) Encrypt(path string, key store.Key, plaintext []byte) error {
	aesGCM, err := newGCM(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends the ciphertext and auth tag after the nonce
	encrypted := aesGCM.Seal(nonce, nonce, plaintext, nil)

	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return fmt.Errorf("failed to write encrypted artifact: %w", err)
	}
	return nil
}

// Decrypt reads the artifact at path and returns the decrypted plaintext.
func (c *FileCipher) Decrypt(path string, key store.Key) ([]byte, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted artifact: %w", err)
	}
	if len(encrypted) < NonceSize {
		return nil, fmt.Errorf("encrypted artifact too short")
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := encrypted[:NonceSize]
	ciphertext := encrypted[NonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: wrong key or corrupted data: %w", err)
	}
	return plaintext, nil
}

// newGCM builds the AEAD for the given key material, deriving the AES key
// first when the key is a plaintext passphrase.
func newGCM(key store.Key) (cipher.AEAD, error) {
	material, err := materialize(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(material)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

// materialize turns the store's key material into AES key bytes.
func materialize(key store.Key) ([]byte, error) {
	if len(key.Data) == 0 {
		return nil, fmt.Errorf("key cannot be empty")
	}
	if key.Plain {
		return DeriveKey(string(key.Data)), nil
	}
	if len(key.Data) != KeySize {
		return nil, fmt.Errorf("derived key must be %d bytes, got %d", KeySize, len(key.Data))
	}
	return key.Data, nil
}
