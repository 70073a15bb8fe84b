package hw

import (
	"encoding/binary"
	"math/bits"

	"github.com/TheusHen/aesni/aesni/block"
)

var sbox, invSbox = buildSBoxes()

// buildSBoxes walks the multiplicative group of GF(2^8) with generator 3,
// pairing each p with its inverse q, and applies the affine transform.
func buildSBoxes() (s, inv [256]byte) {
	p, q := byte(1), byte(1)
	for {
		p = p ^ p<<1 ^ (p>>7)*0x1b

		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		x := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^ bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		s[p] = x ^ 0x63
		if p == 1 {
			break
		}
	}
	s[0] = 0x63

	for i := range s {
		inv[s[i]] = byte(i)
	}
	return s, inv
}

// xtime multiplies by x in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func xtime(b byte) byte {
	return b<<1 ^ (b>>7)*0x1b
}

func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		p ^= a & -(b & 1)
		a = xtime(a)
		b >>= 1
	}
	return p
}

// rounds validates the slot layout shared by both round loops and returns
// the round count.
func rounds(xk []block.Block) int {
	nr := len(xk) / 2
	if nr < 2 || len(xk) != 2*nr {
		panic("hw: malformed key schedule")
	}
	return nr
}

func xorInto(dst, a, b *block.Block) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// subShift is SubBytes and ShiftRows fused; the state is column major.
func subShift(s *block.Block) block.Block {
	var t block.Block
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[4*c+r] = sbox[s[4*((c+r)&3)+r]]
		}
	}
	return t
}

func invSubShift(s *block.Block) block.Block {
	var t block.Block
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			t[4*c+r] = invSbox[s[4*((c-r)&3)+r]]
		}
	}
	return t
}

func mixColumns(t *block.Block) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := t[c], t[c+1], t[c+2], t[c+3]
		t[c] = xtime(a0) ^ xtime(a1) ^ a1 ^ a2 ^ a3
		t[c+1] = a0 ^ xtime(a1) ^ xtime(a2) ^ a2 ^ a3
		t[c+2] = a0 ^ a1 ^ xtime(a2) ^ xtime(a3) ^ a3
		t[c+3] = xtime(a0) ^ a0 ^ a1 ^ a2 ^ xtime(a3)
	}
}

func invMixColumns(t *block.Block) {
	for c := 0; c < 16; c += 4 {
		a0, a1, a2, a3 := t[c], t[c+1], t[c+2], t[c+3]
		t[c] = gmul(a0, 14) ^ gmul(a1, 11) ^ gmul(a2, 13) ^ gmul(a3, 9)
		t[c+1] = gmul(a0, 9) ^ gmul(a1, 14) ^ gmul(a2, 11) ^ gmul(a3, 13)
		t[c+2] = gmul(a0, 13) ^ gmul(a1, 9) ^ gmul(a2, 14) ^ gmul(a3, 11)
		t[c+3] = gmul(a0, 11) ^ gmul(a1, 13) ^ gmul(a2, 9) ^ gmul(a3, 14)
	}
}

func encGeneric(state, key *block.Block) {
	t := subShift(state)
	mixColumns(&t)
	xorInto(state, &t, key)
}

func encLastGeneric(state, key *block.Block) {
	t := subShift(state)
	xorInto(state, &t, key)
}

func decGeneric(state, key *block.Block) {
	t := invSubShift(state)
	invMixColumns(&t)
	xorInto(state, &t, key)
}

func decLastGeneric(state, key *block.Block) {
	t := invSubShift(state)
	xorInto(state, &t, key)
}

func invMixColumnsGeneric(dst, src *block.Block) {
	t := *src
	invMixColumns(&t)
	*dst = t
}

func subWord(x uint32) uint32 {
	return uint32(sbox[x>>24])<<24 | uint32(sbox[x>>16&0xff])<<16 | uint32(sbox[x>>8&0xff])<<8 | uint32(sbox[x&0xff])
}

// keygenAssistGeneric models AESKEYGENASSIST with a zero immediate:
// lanes are SubWord(X1), RotWord(SubWord(X1)), SubWord(X3), RotWord(SubWord(X3)).
func keygenAssistGeneric(dst, src *block.Block) {
	s1 := subWord(binary.LittleEndian.Uint32(src[4:]))
	s3 := subWord(binary.LittleEndian.Uint32(src[12:]))
	binary.LittleEndian.PutUint32(dst[0:], s1)
	binary.LittleEndian.PutUint32(dst[4:], bits.RotateLeft32(s1, -8))
	binary.LittleEndian.PutUint32(dst[8:], s3)
	binary.LittleEndian.PutUint32(dst[12:], bits.RotateLeft32(s3, -8))
}

func clmulGeneric(a, b uint64) (lo, hi uint64) {
	for i := uint(0); i < 64; i++ {
		mask := -(b >> i & 1)
		lo ^= a << i & mask
		hi ^= a >> (64 - i) & mask
	}
	return lo, hi
}

func encryptBlockGeneric(xk []block.Block, dst, src *block.Block) {
	nr := rounds(xk)
	var s block.Block
	xorInto(&s, src, &xk[0])
	for i := 1; i < nr; i++ {
		encGeneric(&s, &xk[i])
	}
	encLastGeneric(&s, &xk[nr])
	*dst = s
}

func decryptBlockGeneric(xk []block.Block, dst, src *block.Block) {
	nr := rounds(xk)
	var s block.Block
	xorInto(&s, src, &xk[nr])
	for i := nr + 1; i < 2*nr; i++ {
		decGeneric(&s, &xk[i])
	}
	decLastGeneric(&s, &xk[0])
	*dst = s
}
