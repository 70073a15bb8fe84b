package seal

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key of the specified length using HKDF-SHA256.
// salt can be nil (uses zero salt), info provides context binding.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	hk := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveAEAD derives a keySize-byte AES key from secret and returns an AEAD
// using it. keySize must be 16 or 32.
func DeriveAEAD(secret, salt, info []byte, keySize int, opts ...Option) (*AEAD, error) {
	if keySize != 16 && keySize != 32 {
		return nil, ErrInvalidKeySize
	}
	key, err := DeriveKey(secret, salt, info, keySize)
	if err != nil {
		return nil, err
	}
	defer clear(key)
	return NewAEAD(key, opts...)
}
