package ghash

import (
	"encoding/binary"

	"github.com/TheusHen/aesni/aesni/block"
)

// Accumulator carries the running tag of one message. It is not safe for
// concurrent use; independent messages use independent accumulators.
type Accumulator struct {
	h   block.Block
	tag block.Block
}

// NewAccumulator returns an accumulator with a zero tag for hash subkey h.
func NewAccumulator(h block.Block) *Accumulator {
	return &Accumulator{h: h}
}

// Update folds one block into the tag.
func (a *Accumulator) Update(x block.Block) {
	a.tag = Update(a.tag, a.h, x)
}

// Write folds p into the tag as whole blocks, zero-padding a short tail.
// Data is processed immediately, so a message made of several Write calls
// is padded after each call, as GCM requires for its AAD and ciphertext.
func (a *Accumulator) Write(p []byte) {
	for len(p) >= block.Size {
		a.Update(block.Block(p[:block.Size]))
		p = p[block.Size:]
	}
	if len(p) > 0 {
		var x block.Block
		copy(x[:], p)
		a.Update(x)
	}
}

// Lengths folds the final length block: bit lengths of the AAD and the
// ciphertext as big-endian 64-bit integers.
func (a *Accumulator) Lengths(aadLen, ctLen int) {
	var x block.Block
	binary.BigEndian.PutUint64(x[:8], uint64(aadLen)*8)
	binary.BigEndian.PutUint64(x[8:], uint64(ctLen)*8)
	a.Update(x)
}

// Sum returns the current tag.
func (a *Accumulator) Sum() block.Block { return a.tag }

// Reset clears the tag, keeping the subkey.
func (a *Accumulator) Reset() { a.tag = block.Zero }

// Wipe clears both the tag and the subkey.
func (a *Accumulator) Wipe() {
	a.tag.Wipe()
	a.h.Wipe()
}

// Sum returns GHASH_h(aad, ct) including the length block.
func Sum(h block.Block, aad, ct []byte) block.Block {
	a := Accumulator{h: h}
	a.Write(aad)
	a.Write(ct)
	a.Lengths(len(aad), len(ct))
	return a.tag
}
