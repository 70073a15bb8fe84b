// Package aesni provides a hardware-accelerated AES block cipher core and the
// GHASH accumulator used by GCM.
//
// The core is split into three leaves that only share the 128-bit block type:
//   - keysched: forward and equivalent-inverse round keys for 128 and 256-bit keys
//   - round: the per-block encrypt/decrypt pipeline over a schedule
//   - ghash: multiply-accumulate in GF(2^128)
//
// Package gcm assembles them into an AEAD and package seal adds managed
// nonces, key derivation and compression on top.
//
// NewCipher and NewGCM consult the capability gate (package cpu) and fall
// back to the standard library when AES-NI or PCLMULQDQ is missing. New
// always returns the round-pipeline cipher.
package aesni
