// Package seal packages AES-GCM into self-describing sealed messages.
//
// An AEAD manages its own nonces: a 32-bit random prefix chosen at
// construction followed by a 64-bit message counter, which allows 2^64
// messages per key without reuse. A sealed message is
//
//	nonce (12 bytes) || GCM(header || payload) || tag (16 bytes)
//
// where the one-byte header records whether the payload was compressed with
// LZ4. Keys can be derived from a shared secret with HKDF-SHA256, and large
// inputs can be sealed as an ordered set of chunks by a pool of workers.
package seal
