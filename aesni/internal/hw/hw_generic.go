//go:build !amd64 || purego

package hw

import "github.com/TheusHen/aesni/aesni/block"

// Accelerated reports whether the assembly backend is in use.
func Accelerated() bool { return false }

// Enc performs one AESENC round: ShiftRows, SubBytes, MixColumns, AddRoundKey.
func Enc(state, key *block.Block) { encGeneric(state, key) }

// EncLast performs AESENCLAST, the final round without MixColumns.
func EncLast(state, key *block.Block) { encLastGeneric(state, key) }

// Dec performs one AESDEC round of the equivalent inverse cipher.
func Dec(state, key *block.Block) { decGeneric(state, key) }

// DecLast performs AESDECLAST, the final inverse round without InvMixColumns.
func DecLast(state, key *block.Block) { decLastGeneric(state, key) }

// InvMixColumns performs AESIMC.
func InvMixColumns(dst, src *block.Block) { invMixColumnsGeneric(dst, src) }

// KeygenAssist performs AESKEYGENASSIST with a zero round constant.
func KeygenAssist(dst, src *block.Block) { keygenAssistGeneric(dst, src) }

// CLMul returns the 128-bit carry-less product of a and b.
func CLMul(a, b uint64) (lo, hi uint64) { return clmulGeneric(a, b) }

// EncryptBlock encrypts src into dst with the forward slots of xk.
func EncryptBlock(xk []block.Block, dst, src *block.Block) { encryptBlockGeneric(xk, dst, src) }

// DecryptBlock decrypts src into dst with the inverse slots of xk.
func DecryptBlock(xk []block.Block, dst, src *block.Block) { decryptBlockGeneric(xk, dst, src) }
