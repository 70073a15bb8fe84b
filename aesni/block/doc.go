// Package block defines the 128-bit value shared by every part of the cipher core.
//
// A Block can be viewed as 16 bytes, as two big-endian 64-bit words, or as an
// unsigned 128-bit integer. Blocks are values: operations return new blocks.
package block
