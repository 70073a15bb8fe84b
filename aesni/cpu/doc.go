// Package cpu reports whether the running processor provides the AES round
// instructions and carry-less multiplication that the accelerated paths
// require.
//
// Supported is the gate consulted by the aesni constructors. Describe gives
// a fuller picture for diagnostics and is not used for dispatch.
package cpu
