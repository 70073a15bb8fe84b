package seal

import (
	"bytes"
	"errors"

	"github.com/klauspost/reedsolomon"
)

var (
	ErrTooManyLost   = errors.New("seal: too many shards lost, cannot recover")
	ErrInvalidParity = errors.New("seal: invalid data/parity configuration")
)

// Parity spreads a sealed message over Reed-Solomon shards so that it
// survives the loss of up to ParityShards of them. Recovered bytes are still
// authenticated by Open; parity only restores availability.
type Parity struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewParity creates a codec producing dataShards+parityShards shards.
func NewParity(dataShards, parityShards int) (*Parity, error) {
	if dataShards <= 0 || parityShards <= 0 {
		return nil, ErrInvalidParity
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Parity{enc: enc, dataShards: dataShards, parityShards: parityShards}, nil
}

// DataShards returns the number of data shards.
func (p *Parity) DataShards() int { return p.dataShards }

// ParityShards returns the number of parity shards.
func (p *Parity) ParityShards() int { return p.parityShards }

// TotalShards returns the total number of shards (data + parity).
func (p *Parity) TotalShards() int { return p.dataShards + p.parityShards }

// Protect splits a sealed message into data shards and computes parity.
// The caller keeps len(sealed) to pass to Recover.
func (p *Parity) Protect(sealed []byte) ([][]byte, error) {
	shards, err := p.enc.Split(sealed)
	if err != nil {
		return nil, err
	}
	if err := p.enc.Encode(shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// Recover rebuilds missing shards (nil entries) and returns the first size
// bytes of the data shards.
func (p *Parity) Recover(shards [][]byte, size int) ([]byte, error) {
	if err := p.enc.ReconstructData(shards); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return nil, ErrTooManyLost
		}
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(size)
	if err := p.enc.Join(&buf, shards, size); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
