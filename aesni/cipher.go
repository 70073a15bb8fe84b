package aesni

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/xts"

	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/cpu"
	"github.com/TheusHen/aesni/aesni/gcm"
	"github.com/TheusHen/aesni/aesni/keysched"
	"github.com/TheusHen/aesni/aesni/round"
)

// BlockSize is the AES block size in bytes.
const BlockSize = block.Size

// ErrKeySize is returned for keys that are not 16 or 32 bytes.
var ErrKeySize = keysched.ErrUnsupportedKeySize

// Cipher is an AES block cipher driven by the round pipeline. It implements
// cipher.Block and is safe for concurrent use.
type Cipher struct {
	ks *keysched.Schedule
}

// New returns a Cipher for a 16 or 32-byte key regardless of the capability
// gate. Without AES-NI the rounds run on the portable instruction model.
func New(key []byte) (*Cipher, error) {
	ks, err := keysched.Expand(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{ks: ks}, nil
}

// NewCipher returns the accelerated Cipher when cpu.Supported reports the
// required instructions and the standard library implementation otherwise.
// Both paths accept only 16 and 32-byte keys.
func NewCipher(key []byte) (cipher.Block, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if !cpu.Supported() {
		return aes.NewCipher(key)
	}
	return New(key)
}

// NewGCM returns AES-GCM with a 12-byte nonce and a 16-byte tag, selected
// the same way as NewCipher.
func NewGCM(key []byte) (cipher.AEAD, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if !cpu.Supported() {
		b, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(b)
	}
	return gcm.New(key)
}

// NewXTS returns AES-XTS for a 32 or 64-byte key, the concatenation of the
// data key and the tweak key.
func NewXTS(key []byte) (*xts.Cipher, error) {
	return xts.NewCipher(NewCipher, key)
}

func checkKey(key []byte) error {
	switch len(key) {
	case keysched.Size128.Bytes(), keysched.Size256.Bytes():
		return nil
	}
	return ErrKeySize
}

func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst. Like the standard
// library it panics when either buffer is shorter than a block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesni: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesni: output not full block")
	}
	out := round.EncryptBlock(c.ks, block.Block(src[:BlockSize]))
	copy(dst, out[:])
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aesni: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aesni: output not full block")
	}
	out := round.DecryptBlock(c.ks, block.Block(src[:BlockSize]))
	copy(dst, out[:])
}

// Wipe zeroes the round keys. The Cipher must not be used afterwards.
func (c *Cipher) Wipe() {
	c.ks.Wipe()
}
