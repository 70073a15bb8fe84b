package ghash

import (
	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/internal/hw"
	"lukechampine.com/uint128"
)

// One is the multiplicative identity of the field.
var One = block.FromWords(1<<63, 0)

// reduction is the reflected field polynomial: 0xe1 in the top byte.
const reduction = 0xe1 << 56

// Update folds x into the running tag: (tag ^ x) * h.
func Update(tag, h, x block.Block) block.Block {
	return Mul(tag.Xor(x), h)
}

// Mul returns x * y using three carry-less products (Karatsuba) and a
// two-step fold of the upper half.
func Mul(x, y block.Block) block.Block {
	x1, x0 := x.Words()
	y1, y0 := y.Words()

	z0lo, z0hi := hw.CLMul(x0, y0)
	z1lo, z1hi := hw.CLMul(x1, y1)
	z2lo, z2hi := hw.CLMul(x0^x1, y0^y1)
	z2lo ^= z0lo ^ z1lo
	z2hi ^= z0hi ^ z1hi

	v0 := z0lo
	v1 := z0hi ^ z2lo
	v2 := z1lo ^ z2hi
	v3 := z1hi

	// The product of two reflected 128-bit values is the reflected 255-bit
	// product shifted right by one.
	v3 = v3<<1 | v2>>63
	v2 = v2<<1 | v1>>63
	v1 = v1<<1 | v0>>63
	v0 <<= 1

	v2 ^= v0 ^ v0>>1 ^ v0>>2 ^ v0>>7
	v1 ^= v0<<63 ^ v0<<62 ^ v0<<57
	v3 ^= v1 ^ v1>>1 ^ v1>>2 ^ v1>>7
	v2 ^= v1<<63 ^ v1<<62 ^ v1<<57

	return block.FromWords(v3, v2)
}

// MulReference is the bit-serial definition: walk the bits of x from the
// most significant, accumulating y and halving y after every bit.
func MulReference(x, y block.Block) block.Block {
	var z uint128.Uint128
	v := y.Uint128()
	for i := 0; i < block.Size; i++ {
		for m := byte(0x80); m != 0; m >>= 1 {
			if x[i]&m != 0 {
				z = z.Xor(v)
			}
			v = half(v)
		}
	}
	return block.FromUint128(z)
}

// MulDoubling evaluates x * y by Horner's rule over the bits of x, starting
// from the x^127 coefficient.
func MulDoubling(x, y block.Block) block.Block {
	var z uint128.Uint128
	v := y.Uint128()
	for i := block.Size - 1; i >= 0; i-- {
		for m := byte(0x01); m != 0; m <<= 1 {
			z = half(z)
			if x[i]&m != 0 {
				z = z.Xor(v)
			}
		}
	}
	return block.FromUint128(z)
}

// half multiplies by x, which in the reflected convention is a right shift
// with the dropped coefficient folded back through the reduction constant.
func half(v uint128.Uint128) uint128.Uint128 {
	carry := v.Lo & 1
	v = v.Rsh(1)
	v.Hi ^= reduction & -carry
	return v
}
