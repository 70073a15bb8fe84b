package seal

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
)

// DefaultChunkSize is the plaintext size of each chunk (256 KB).
const DefaultChunkSize = 256 * 1024

var ErrNoChunks = errors.New("seal: no chunks to open")

// Sealer seals large inputs as independently authenticated chunks using a
// pool of workers. Each chunk binds its index and the total chunk count in
// its associated data, so chunks cannot be reordered, dropped or spliced
// between messages of different lengths.
type Sealer struct {
	aead      *AEAD
	chunkSize int
	workers   int
}

// NewSealer creates a Sealer. Non-positive chunkSize and workers select
// DefaultChunkSize and 4 workers.
func NewSealer(aead *AEAD, chunkSize, workers int) *Sealer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if workers <= 0 {
		workers = 4
	}
	return &Sealer{aead: aead, chunkSize: chunkSize, workers: workers}
}

// ChunkSize returns the configured chunk size.
func (s *Sealer) ChunkSize() int { return s.chunkSize }

// Split splits data into chunk-sized pieces. Empty data yields a single
// empty piece so that the chunk count is always authenticated.
func (s *Sealer) Split(data []byte) [][]byte {
	if len(data) == 0 {
		return [][]byte{{}}
	}
	var pieces [][]byte
	for i := 0; i < len(data); i += s.chunkSize {
		end := i + s.chunkSize
		if end > len(data) {
			end = len(data)
		}
		pieces = append(pieces, data[i:end])
	}
	return pieces
}

// SealAll splits data and seals every chunk. The result is ordered by
// chunk index.
func (s *Sealer) SealAll(ctx context.Context, data, additionalData []byte) ([][]byte, error) {
	pieces := s.Split(data)
	out := make([][]byte, len(pieces))
	err := s.run(ctx, len(pieces), func(i int) error {
		out[i] = s.aead.Seal(pieces[i], chunkAAD(i, len(pieces), additionalData))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OpenAll verifies and decrypts chunks produced by SealAll and reassembles
// the original data.
func (s *Sealer) OpenAll(ctx context.Context, chunks [][]byte, additionalData []byte) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	plain := make([][]byte, len(chunks))
	err := s.run(ctx, len(chunks), func(i int) error {
		pt, err := s.aead.Open(chunks[i], chunkAAD(i, len(chunks), additionalData))
		if err != nil {
			return err
		}
		plain[i] = pt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Reassemble(plain), nil
}

// Reassemble concatenates opened chunks in order.
func Reassemble(pieces [][]byte) []byte {
	n := 0
	for _, p := range pieces {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range pieces {
		buf = append(buf, p...)
	}
	return buf
}

// run calls fn for indices 0..n-1 on the worker pool and returns the first
// error.
func (s *Sealer) run(ctx context.Context, n int, fn func(i int) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, s.workers*2)
	errChan := make(chan error, s.workers)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := fn(i); err != nil {
					select {
					case errChan <- err:
					default:
					}
					cancel()
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errChan:
		return err
	default:
	}
	return ctx.Err()
}

func chunkAAD(index, count int, additionalData []byte) []byte {
	aad := make([]byte, 16, 16+len(additionalData))
	binary.BigEndian.PutUint64(aad[:8], uint64(index))
	binary.BigEndian.PutUint64(aad[8:], uint64(count))
	return append(aad, additionalData...)
}
