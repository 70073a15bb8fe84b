// Package ghash implements the GCM universal hash: multiplication in
// GF(2^128) modulo x^128 + x^7 + x^2 + x + 1 in the bit-reflected
// convention, where the most significant bit of byte 0 is the x^0 coefficient.
//
// Mul is the production path built on carry-less multiplication. MulReference
// (bit-serial) and MulDoubling (Horner over doublings) are slow oracles with
// identical input/output mapping; they exist for verification.
package ghash
