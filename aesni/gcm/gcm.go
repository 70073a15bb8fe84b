package gcm

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/ghash"
	"github.com/TheusHen/aesni/aesni/keysched"
	"github.com/TheusHen/aesni/aesni/round"
)

const (
	// StandardNonceSize is the 96-bit nonce for which J0 is nonce||1.
	StandardNonceSize = 12
	// TagSize is the full tag length.
	TagSize = 16
	// MinTagSize is the shortest truncated tag accepted by NewWithTagSize.
	MinTagSize = 12

	// 2^32-2 counter blocks are available per nonce.
	maxPlaintext = (1<<32 - 2) * block.Size
)

var (
	ErrOpen      = errors.New("gcm: message authentication failed")
	ErrNonceSize = errors.New("gcm: nonce size must be positive")
	ErrTagSize   = errors.New("gcm: tag size must be between 12 and 16 bytes")
)

// GCM is an AES-GCM instance bound to one key schedule. It is safe for
// concurrent use: Seal and Open keep all per-message state on the stack.
type GCM struct {
	ks        *keysched.Schedule
	h         block.Block
	nonceSize int
	tagSize   int
}

// New returns AES-GCM with a 12-byte nonce and a 16-byte tag. The key must be
// 16 or 32 bytes.
func New(key []byte) (*GCM, error) {
	return newGCM(key, StandardNonceSize, TagSize)
}

// NewWithNonceSize returns AES-GCM accepting nonces of size bytes. Sizes
// other than 12 derive the initial counter through GHASH.
func NewWithNonceSize(key []byte, size int) (*GCM, error) {
	if size <= 0 {
		return nil, ErrNonceSize
	}
	return newGCM(key, size, TagSize)
}

// NewWithTagSize returns AES-GCM with a 12-byte nonce and tags truncated to
// tagSize bytes.
func NewWithTagSize(key []byte, tagSize int) (*GCM, error) {
	if tagSize < MinTagSize || tagSize > TagSize {
		return nil, ErrTagSize
	}
	return newGCM(key, StandardNonceSize, tagSize)
}

func newGCM(key []byte, nonceSize, tagSize int) (*GCM, error) {
	ks, err := keysched.Expand(key)
	if err != nil {
		return nil, err
	}
	return &GCM{
		ks:        ks,
		h:         round.EncryptBlock(ks, block.Zero),
		nonceSize: nonceSize,
		tagSize:   tagSize,
	}, nil
}

func (g *GCM) NonceSize() int { return g.nonceSize }

func (g *GCM) Overhead() int { return g.tagSize }

// Seal encrypts and authenticates plaintext, authenticates additionalData and
// appends the ciphertext and tag to dst. To reuse plaintext's storage for the
// output, use plaintext[:0] as dst.
func (g *GCM) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != g.nonceSize {
		panic("gcm: incorrect nonce length given to GCM")
	}
	if uint64(len(plaintext)) > maxPlaintext {
		panic("gcm: message too large for GCM")
	}

	counter := g.initialCounter(nonce)
	tagMask := round.EncryptBlock(g.ks, counter)
	inc32(&counter)

	ret, out := sliceForAppend(dst, len(plaintext)+g.tagSize)
	ct := out[:len(plaintext)]
	g.counterCrypt(ct, plaintext, &counter)

	tag := g.tag(ct, additionalData, tagMask)
	copy(out[len(plaintext):], tag[:g.tagSize])
	return ret
}

// Open verifies and decrypts ciphertext, appending the plaintext to dst.
// On failure it returns ErrOpen and leaves dst untouched.
func (g *GCM) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != g.nonceSize {
		panic("gcm: incorrect nonce length given to GCM")
	}
	if len(ciphertext) < g.tagSize {
		return nil, ErrOpen
	}
	if uint64(len(ciphertext)) > maxPlaintext+uint64(g.tagSize) {
		return nil, ErrOpen
	}

	tag := ciphertext[len(ciphertext)-g.tagSize:]
	ciphertext = ciphertext[:len(ciphertext)-g.tagSize]

	counter := g.initialCounter(nonce)
	tagMask := round.EncryptBlock(g.ks, counter)
	inc32(&counter)

	expected := g.tag(ciphertext, additionalData, tagMask)
	if subtle.ConstantTimeCompare(expected[:g.tagSize], tag) != 1 {
		return nil, ErrOpen
	}

	ret, out := sliceForAppend(dst, len(ciphertext))
	g.counterCrypt(out, ciphertext, &counter)
	return ret, nil
}

// Wipe clears the key schedule and hash subkey. The GCM must not be used
// afterwards.
func (g *GCM) Wipe() {
	g.ks.Wipe()
	g.h.Wipe()
}

func (g *GCM) initialCounter(nonce []byte) block.Block {
	if len(nonce) == StandardNonceSize {
		var j0 block.Block
		copy(j0[:], nonce)
		j0[block.Size-1] = 1
		return j0
	}
	acc := ghash.NewAccumulator(g.h)
	acc.Write(nonce)
	acc.Lengths(0, len(nonce))
	return acc.Sum()
}

func (g *GCM) tag(ct, additionalData []byte, mask block.Block) block.Block {
	return ghash.Sum(g.h, additionalData, ct).Xor(mask)
}

// counterCrypt xors in with the keystream starting at counter. out and in
// may overlap exactly.
func (g *GCM) counterCrypt(out, in []byte, counter *block.Block) {
	for len(in) >= block.Size {
		mask := round.EncryptBlock(g.ks, *counter)
		inc32(counter)
		subtle.XORBytes(out[:block.Size], in[:block.Size], mask[:])
		out, in = out[block.Size:], in[block.Size:]
	}
	if len(in) > 0 {
		mask := round.EncryptBlock(g.ks, *counter)
		inc32(counter)
		subtle.XORBytes(out, in, mask[:len(in)])
	}
}

func inc32(counter *block.Block) {
	ctr := binary.BigEndian.Uint32(counter[12:])
	binary.BigEndian.PutUint32(counter[12:], ctr+1)
}

// sliceForAppend extends in by n bytes, reallocating when needed. head is the
// whole slice, tail the n new bytes.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
