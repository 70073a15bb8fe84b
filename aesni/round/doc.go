// Package round applies the AES round sequence to single blocks.
//
// Encryption runs an initial key xor, Rounds()-1 full rounds and a final round
// without MixColumns. Decryption is the equivalent inverse cipher over the
// pre-transformed keys stored in the schedule. The functions are pure: they
// never modify the schedule and may be called concurrently on a shared one.
package round
