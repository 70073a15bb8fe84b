// Package gcm implements the Galois/Counter Mode AEAD on top of the round
// pipeline and the GHASH accumulator.
//
// The returned *GCM satisfies crypto/cipher.AEAD. Counter blocks are built
// with a 32-bit big-endian increment of the last word. Tags are compared in
// constant time and a failed Open writes nothing to dst.
package gcm
