package keysched

import (
	"errors"

	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/internal/hw"
	"lukechampine.com/uint128"
)

// KeySize is a supported raw key length in bits.
type KeySize int

const (
	Size128 KeySize = 128
	Size256 KeySize = 256
)

// MaxSlots is the slot count of the largest (256-bit) schedule.
const MaxSlots = 28

var (
	ErrUnsupportedKeySize = errors.New("keysched: key size must be 128 or 256 bits")
)

// Lanes of the AESKEYGENASSIST output picked by the expansion steps.
const (
	laneSubWord    = 2 // SubWord(X3)
	laneRotSubWord = 3 // RotWord(SubWord(X3)) ^ rcon
)

// Bytes returns the raw key length for the size.
func (k KeySize) Bytes() int { return int(k) / 8 }

// Rounds returns the number of cipher rounds for the size.
func (k KeySize) Rounds() int {
	switch k {
	case Size128:
		return 10
	case Size256:
		return 14
	}
	return 0
}

// Schedule holds the expanded round keys for one raw key.
type Schedule struct {
	slots [MaxSlots]block.Block
	nr    int
}

// Expand derives a schedule from a 16 or 32-byte raw key.
// The raw key is not retained beyond what slot 0 (and slot 1) hold by definition.
func Expand(rawKey []byte) (*Schedule, error) {
	return New(rawKey, KeySize(len(rawKey)*8))
}

// New derives a schedule for the given size. rawKey must be exactly
// size.Bytes() long.
func New(rawKey []byte, size KeySize) (*Schedule, error) {
	nr := size.Rounds()
	if nr == 0 || len(rawKey) != size.Bytes() {
		return nil, ErrUnsupportedKeySize
	}
	s := &Schedule{nr: nr}
	switch size {
	case Size128:
		s.expand128(rawKey)
	case Size256:
		s.expand256(rawKey)
	}
	s.invert()
	return s, nil
}

func (s *Schedule) expand128(rawKey []byte) {
	k := &s.slots
	copy(k[0][:], rawKey)
	rcon := byte(0x01)
	for i := 1; i <= 10; i++ {
		k[i] = step(k[i-1], k[i-1], laneRotSubWord, rcon)
		rcon = double(rcon)
	}
}

func (s *Schedule) expand256(rawKey []byte) {
	k := &s.slots
	copy(k[0][:], rawKey[:16])
	copy(k[1][:], rawKey[16:])
	rcon := byte(0x01)
	for i := 2; i <= 14; i++ {
		if i%2 == 0 {
			k[i] = step(k[i-2], k[i-1], laneRotSubWord, rcon)
			rcon = double(rcon)
		} else {
			k[i] = step(k[i-2], k[i-1], laneSubWord, 0)
		}
	}
}

// invert fills slots nr+1..2nr-1 with InvMixColumns of forward keys nr-1..1.
func (s *Schedule) invert() {
	k := &s.slots
	for i := 1; i < s.nr; i++ {
		hw.InvMixColumns(&k[s.nr+i], &k[s.nr-i])
	}
}

// step runs the assist on src, selects one 32-bit lane, and folds it into the
// prefix-xor diffusion of prev. The round constant only ever lands in the
// rotated (odd) lanes, so it is applied here rather than as an immediate.
func step(prev, src block.Block, lane int, rcon byte) block.Block {
	var assist block.Block
	hw.KeygenAssist(&assist, &src)
	if lane&1 == 1 {
		assist[4*lane] ^= rcon
	}
	t := uint64(assist[4*lane]) | uint64(assist[4*lane+1])<<8 | uint64(assist[4*lane+2])<<16 | uint64(assist[4*lane+3])<<24

	// Lanes are little-endian 32-bit words, so a 4-byte register shift is a
	// 32-bit shift of the little-endian 128-bit value.
	v := uint128.FromBytes(prev[:])
	v = v.Xor(v.Lsh(32))
	v = v.Xor(v.Lsh(32))
	v = v.Xor(v.Lsh(32))
	v = v.Xor(uint128.New(t|t<<32, t|t<<32))

	var out block.Block
	v.PutBytes(out[:])
	return out
}

// double multiplies a round constant by x in GF(2^8).
func double(rcon byte) byte {
	return rcon<<1 ^ (rcon>>7)*0x1b
}

// Rounds returns the number of cipher rounds (10 or 14).
func (s *Schedule) Rounds() int { return s.nr }

// KeySize returns the size of the key the schedule was derived from.
func (s *Schedule) KeySize() KeySize {
	if s.nr == 14 {
		return Size256
	}
	return Size128
}

// Len returns the number of stored slots (20 or 28).
func (s *Schedule) Len() int { return 2 * s.nr }

// Slots returns the stored round keys in storage order. The returned slice
// aliases the schedule and must be treated as read-only.
func (s *Schedule) Slots() []block.Block { return s.slots[:2*s.nr] }

// Forward returns the encryption round key for round i (0..Rounds()).
func (s *Schedule) Forward(i int) block.Block {
	if i < 0 || i > s.nr {
		panic("keysched: round out of range")
	}
	return s.slots[i]
}

// Inverse returns the key the decryption pipeline applies at step i
// (0..Rounds()): the last forward key, the transformed interior keys, then
// the raw key.
func (s *Schedule) Inverse(i int) block.Block {
	switch {
	case i < 0 || i > s.nr:
		panic("keysched: round out of range")
	case i == 0:
		return s.slots[s.nr]
	case i == s.nr:
		return s.slots[0]
	}
	return s.slots[s.nr+i]
}

// Wipe zeroes every slot. The schedule must not be used afterwards.
func (s *Schedule) Wipe() {
	for i := range s.slots {
		s.slots[i].Wipe()
	}
}
