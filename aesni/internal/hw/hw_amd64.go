//go:build amd64 && !purego

package hw

import (
	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/cpu"
)

var useAsm = cpu.Supported()

//go:noescape
func encAsm(state, key *block.Block)

//go:noescape
func encLastAsm(state, key *block.Block)

//go:noescape
func decAsm(state, key *block.Block)

//go:noescape
func decLastAsm(state, key *block.Block)

//go:noescape
func invMixColumnsAsm(dst, src *block.Block)

//go:noescape
func keygenAssistAsm(dst, src *block.Block)

//go:noescape
func clmulAsm(a, b uint64) (lo, hi uint64)

//go:noescape
func encryptBlockAsm(nr int, xk *block.Block, dst, src *block.Block)

//go:noescape
func decryptBlockAsm(nr int, xk *block.Block, dst, src *block.Block)

// Accelerated reports whether the assembly backend is in use.
func Accelerated() bool { return useAsm }

// Enc performs one AESENC round: ShiftRows, SubBytes, MixColumns, AddRoundKey.
func Enc(state, key *block.Block) {
	if useAsm {
		encAsm(state, key)
		return
	}
	encGeneric(state, key)
}

// EncLast performs AESENCLAST, the final round without MixColumns.
func EncLast(state, key *block.Block) {
	if useAsm {
		encLastAsm(state, key)
		return
	}
	encLastGeneric(state, key)
}

// Dec performs one AESDEC round of the equivalent inverse cipher.
func Dec(state, key *block.Block) {
	if useAsm {
		decAsm(state, key)
		return
	}
	decGeneric(state, key)
}

// DecLast performs AESDECLAST, the final inverse round without InvMixColumns.
func DecLast(state, key *block.Block) {
	if useAsm {
		decLastAsm(state, key)
		return
	}
	decLastGeneric(state, key)
}

// InvMixColumns performs AESIMC.
func InvMixColumns(dst, src *block.Block) {
	if useAsm {
		invMixColumnsAsm(dst, src)
		return
	}
	invMixColumnsGeneric(dst, src)
}

// KeygenAssist performs AESKEYGENASSIST with a zero round constant.
func KeygenAssist(dst, src *block.Block) {
	if useAsm {
		keygenAssistAsm(dst, src)
		return
	}
	keygenAssistGeneric(dst, src)
}

// CLMul returns the 128-bit carry-less product of a and b.
func CLMul(a, b uint64) (lo, hi uint64) {
	if useAsm {
		return clmulAsm(a, b)
	}
	return clmulGeneric(a, b)
}

// EncryptBlock encrypts src into dst with the forward slots of xk.
func EncryptBlock(xk []block.Block, dst, src *block.Block) {
	nr := rounds(xk)
	if useAsm {
		encryptBlockAsm(nr, &xk[0], dst, src)
		return
	}
	encryptBlockGeneric(xk, dst, src)
}

// DecryptBlock decrypts src into dst with the inverse slots of xk.
func DecryptBlock(xk []block.Block, dst, src *block.Block) {
	nr := rounds(xk)
	if useAsm {
		decryptBlockAsm(nr, &xk[0], dst, src)
		return
	}
	decryptBlockGeneric(xk, dst, src)
}
