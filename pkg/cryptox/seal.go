package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer provides authenticated encryption for secrets cached on disk,
// such as OAuth access and refresh tokens. The output format is:
// [24-byte nonce][ciphertext][16-byte auth tag]
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 256-bit key from the given key material using SHA-256
// and returns a Sealer using XChaCha20-Poly1305. Any non-empty key material
// is acceptable; passphrases and raw key files both work.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, fmt.Errorf("cryptox: sealer key material is empty")
	}

	key := sha256.Sum256(keyMaterial)
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to create AEAD: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts and authenticates plaintext with a random nonce per call.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext and auth tag to the nonce
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal, verifying the authentication tag.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("cryptox: sealed data too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decryption failed: %w", err)
	}

	return plaintext, nil
}
