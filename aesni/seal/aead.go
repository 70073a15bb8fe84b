package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"sync/atomic"

	"github.com/TheusHen/aesni/aesni"
)

const (
	// NonceSize is the length of the nonce prepended to every message.
	NonceSize = 12
	// TagSize is the length of the GCM tag appended to every message.
	TagSize = 16

	headerSize = 1
)

const (
	payloadRaw byte = iota
	payloadLZ4
)

var (
	ErrCiphertextTooShort = errors.New("seal: ciphertext too short")
	ErrDecryptionFailed   = errors.New("seal: decryption failed")
	ErrInvalidKeySize     = errors.New("seal: key must be 16 or 32 bytes")
)

// AEAD wraps AES-GCM with automatic nonce management and optional payload
// compression. It is safe for concurrent use.
type AEAD struct {
	aead   cipher.AEAD
	prefix [4]byte
	seq    atomic.Uint64

	compress bool
	level    CompressionLevel
}

// Option configures an AEAD.
type Option func(*AEAD)

// WithCompression compresses payloads with LZ4 at the given level whenever
// that makes them smaller.
func WithCompression(level CompressionLevel) Option {
	return func(a *AEAD) {
		a.compress = true
		a.level = level
	}
}

// NewAEAD creates an AEAD from a 16 or 32-byte key.
func NewAEAD(key []byte, opts ...Option) (*AEAD, error) {
	if len(key) != 16 && len(key) != 32 {
		return nil, ErrInvalidKeySize
	}
	aead, err := aesni.NewGCM(key)
	if err != nil {
		return nil, err
	}
	a := &AEAD{aead: aead}
	for _, opt := range opts {
		opt(a)
	}
	if _, err := io.ReadFull(rand.Reader, a.prefix[:]); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AEAD) nextNonce() []byte {
	seq := a.seq.Add(1)
	nonce := make([]byte, NonceSize)
	copy(nonce[:4], a.prefix[:])
	binary.BigEndian.PutUint64(nonce[4:], seq)
	return nonce
}

// Seal compresses (if enabled), encrypts and authenticates plaintext.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes)
func (a *AEAD) Seal(plaintext, additionalData []byte) []byte {
	payload := a.encodePayload(plaintext)
	nonce := a.nextNonce()
	out := make([]byte, NonceSize, NonceSize+len(payload)+TagSize)
	copy(out, nonce)
	return a.aead.Seal(out, nonce, payload, additionalData)
}

// Open verifies and decrypts a message produced by Seal. Compressed payloads
// are inflated regardless of this AEAD's own options.
func (a *AEAD) Open(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize+headerSize+TagSize {
		return nil, ErrCiphertextTooShort
	}
	nonce := ciphertext[:NonceSize]
	payload, err := a.aead.Open(nil, nonce, ciphertext[NonceSize:], additionalData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return decodePayload(payload)
}

// Overhead returns the bytes a message gains when sealed without compression.
func (a *AEAD) Overhead() int { return NonceSize + headerSize + TagSize }

// NonceSize returns the nonce size.
func (a *AEAD) NonceSize() int { return NonceSize }

// Sent returns the number of messages sealed so far.
func (a *AEAD) Sent() uint64 { return a.seq.Load() }

func (a *AEAD) encodePayload(plaintext []byte) []byte {
	if a.compress && len(plaintext) > 0 {
		compressed, err := Compress(plaintext, a.level)
		if err == nil && len(compressed) < len(plaintext) {
			return append([]byte{payloadLZ4}, compressed...)
		}
	}
	return append([]byte{payloadRaw}, plaintext...)
}

func decodePayload(payload []byte) ([]byte, error) {
	switch payload[0] {
	case payloadRaw:
		return payload[headerSize:], nil
	case payloadLZ4:
		return Decompress(payload[headerSize:])
	default:
		return nil, ErrDecryptionFailed
	}
}
