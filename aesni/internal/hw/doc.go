// Package hw exposes the AES-NI and PCLMULQDQ instructions the cipher core is
// built on, one Go function per instruction, plus the two per-block round
// loops.
//
// On amd64 the functions are backed by assembly when the CPU reports AES and
// PCLMULQDQ. Everywhere else, and under the purego build tag, a portable
// model with the same bit-exact semantics is used. The model doubles as the
// reference the assembly is tested against.
package hw
