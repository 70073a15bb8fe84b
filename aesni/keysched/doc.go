// Package keysched derives AES round keys for 128 and 256-bit keys.
//
// A Schedule stores the forward round keys in ascending order followed by the
// InvMixColumns-transformed interior keys in descending order, which is the
// layout the equivalent inverse cipher consumes. Slot 0 (the raw key) and
// slot nr (the last forward key) are shared by both directions.
//
// A Schedule is immutable once built and may be shared by any number of
// goroutines. Owners should call Wipe when they are done with it.
package keysched
