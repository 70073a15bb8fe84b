package block

import (
	"encoding/binary"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

// Size is the length of a block in bytes.
const Size = 16

var (
	ErrInvalidBlockLength = errors.New("block: input must be exactly 16 bytes")
)

// Block is a 128-bit cipher block.
type Block [Size]byte

// Zero is the all-zero block.
var Zero Block

// Parse copies p into a Block. p must be exactly Size bytes long.
func Parse(p []byte) (Block, error) {
	var b Block
	if len(p) != Size {
		return b, ErrInvalidBlockLength
	}
	copy(b[:], p)
	return b, nil
}

// ParseHex decodes a 32 character hex string into a Block.
func ParseHex(s string) (Block, error) {
	if len(s) != 2*Size {
		return Block{}, ErrInvalidBlockLength
	}
	var b Block
	if _, err := fasthex.Decode(b[:], []byte(s)); err != nil {
		return Block{}, err
	}
	return b, nil
}

// FromWords builds a block from its big-endian high and low words.
func FromWords(hi, lo uint64) Block {
	var b Block
	binary.BigEndian.PutUint64(b[:8], hi)
	binary.BigEndian.PutUint64(b[8:], lo)
	return b
}

// Words returns the big-endian high and low 64-bit halves.
func (b Block) Words() (hi, lo uint64) {
	return binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])
}

// FromUint128 is the inverse of Uint128.
func FromUint128(u uint128.Uint128) Block {
	var b Block
	u.PutBytesBE(b[:])
	return b
}

// Uint128 interprets the block as a big-endian 128-bit integer.
func (b Block) Uint128() uint128.Uint128 {
	return uint128.FromBytesBE(b[:])
}

// Xor returns b ^ o.
func (b Block) Xor(o Block) Block {
	hi0, lo0 := b.Words()
	hi1, lo1 := o.Words()
	return FromWords(hi0^hi1, lo0^lo1)
}

// IsZero reports whether every byte of b is zero.
func (b Block) IsZero() bool {
	return b == Zero
}

// String returns the lowercase hex encoding of the block.
func (b Block) String() string {
	return fasthex.EncodeToString(b[:])
}

// Wipe zeroes the block in place.
func (b *Block) Wipe() {
	clear(b[:])
}
