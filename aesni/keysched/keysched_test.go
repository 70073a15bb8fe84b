package keysched

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/TheusHen/aesni/aesni/block"
	"github.com/TheusHen/aesni/aesni/internal/hw"
	fasthex "github.com/tmthrgd/go-hex"
)

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := fasthex.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString(%q): %v", s, err)
	}
	return b
}

// FIPS-197 Appendix A.1.
func TestExpand128(t *testing.T) {
	key := mustDecode(t, "2b7e151628aed2a6abf7158809cf4f3c")
	s, err := Expand(key)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if s.Rounds() != 10 || s.Len() != 20 || s.KeySize() != Size128 {
		t.Fatalf("unexpected shape: rounds=%d len=%d", s.Rounds(), s.Len())
	}

	want := map[int]string{
		0:  "2b7e151628aed2a6abf7158809cf4f3c",
		1:  "a0fafe1788542cb123a339392a6c7605",
		2:  "f2c295f27a96b9435935807a7359f67f",
		10: "d014f9a8c9ee2589e13f0cc8b6630ca6",
	}
	for i, hex := range want {
		if got := s.Forward(i).String(); got != hex {
			t.Fatalf("round key %d = %s, want %s", i, got, hex)
		}
	}
}

// FIPS-197 Appendix A.3.
func TestExpand256(t *testing.T) {
	key := mustDecode(t, "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4")
	s, err := Expand(key)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if s.Rounds() != 14 || s.Len() != 28 || s.KeySize() != Size256 {
		t.Fatalf("unexpected shape: rounds=%d len=%d", s.Rounds(), s.Len())
	}

	want := map[int]string{
		0:  "603deb1015ca71be2b73aef0857d7781",
		1:  "1f352c073b6108d72d9810a30914dff4",
		2:  "9ba354118e6925afa51a8b5f2067fcde",
		3:  "a8b09c1a93d194cdbe49846eb75d5b9a",
		14: "fe4890d1e6188d0b046df344706c631e",
	}
	for i, hex := range want {
		if got := s.Forward(i).String(); got != hex {
			t.Fatalf("round key %d = %s, want %s", i, got, hex)
		}
	}
}

// Round keys as little-endian words, matching the layout an AES-NI register holds.
func TestExpand128Words(t *testing.T) {
	ref := [11][4]uint32{
		{0x11223344, 0x55667788, 0x99aabbcc, 0xddeeff00},
		{0x72e31b53, 0x27856cdb, 0xbe2fd717, 0x63c12817},
		{0x82186365, 0xa59d0fbe, 0x1bb2d8a9, 0x7873f0be},
		{0x2ca4eced, 0x8939e353, 0x928b3bfa, 0xeaf8cb44},
		{0x3723adfa, 0xbe1a4ea9, 0x2c917553, 0xc669be17},
		{0xc7975444, 0x798d1aed, 0x551c6fbe, 0x9375d1a9},
		{0x144bc95a, 0x6dc6d3b7, 0x38dabc09, 0xabaf6da0},
		{0xf429b026, 0x99ef6391, 0xa135df98, 0x0a9ab238},
		{0xf34e0891, 0x6aa16b00, 0xcb94b498, 0xc10e06a0},
		{0x1336a3e5, 0x7997c8e5, 0xb2037c7d, 0x730d7add},
		{0xd2b97409, 0xab2ebcec, 0x192dc091, 0x6a20ba4c},
	}

	key := make([]byte, 16)
	for i, w := range ref[0] {
		binary.LittleEndian.PutUint32(key[4*i:], w)
	}
	s, err := New(key, Size128)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for r := range ref {
		rk := s.Forward(r)
		for i, w := range ref[r] {
			if got := binary.LittleEndian.Uint32(rk[4*i:]); got != w {
				t.Fatalf("round %d word %d = %#08x, want %#08x", r, i, got, w)
			}
		}
	}
}

func TestInverseLayout(t *testing.T) {
	for _, n := range []int{16, 32} {
		key := make([]byte, n)
		for i := range key {
			key[i] = byte(i * 7)
		}
		s, err := Expand(key)
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		nr := s.Rounds()
		slots := s.Slots()
		if len(slots) != 2*nr {
			t.Fatalf("Slots() has %d entries, want %d", len(slots), 2*nr)
		}
		if !bytes.Equal(slots[0][:], key[:16]) {
			t.Fatalf("slot 0 is not the raw key")
		}
		if n == 32 && !bytes.Equal(slots[1][:], key[16:]) {
			t.Fatalf("slot 1 is not the second key half")
		}

		for i := 1; i < nr; i++ {
			var want block.Block
			fwd := s.Forward(nr - i)
			hw.InvMixColumns(&want, &fwd)
			if slots[nr+i] != want {
				t.Fatalf("slot %d != InvMixColumns(round key %d)", nr+i, nr-i)
			}
			if s.Inverse(i) != want {
				t.Fatalf("Inverse(%d) mismatch", i)
			}
		}
		if s.Inverse(0) != s.Forward(nr) || s.Inverse(nr) != s.Forward(0) {
			t.Fatalf("outer decryption keys must be shared with the forward schedule")
		}
	}
}

func TestExpandDeterministic(t *testing.T) {
	key := mustDecode(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	a, _ := Expand(key)
	b, _ := Expand(key)
	if *a != *b {
		t.Fatalf("Expand is not deterministic")
	}

	var wg sync.WaitGroup
	results := make([]*Schedule, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Expand(key)
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if *r != *a {
			t.Fatalf("concurrent Expand %d differs", i)
		}
	}
}

func TestUnsupportedKeySize(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17, 24, 33, 64} {
		if _, err := Expand(make([]byte, n)); !errors.Is(err, ErrUnsupportedKeySize) {
			t.Fatalf("Expand(%d bytes): expected ErrUnsupportedKeySize, got %v", n, err)
		}
	}
	if _, err := New(make([]byte, 24), KeySize(192)); !errors.Is(err, ErrUnsupportedKeySize) {
		t.Fatalf("New(192): expected ErrUnsupportedKeySize, got %v", err)
	}
	if _, err := New(make([]byte, 16), Size256); !errors.Is(err, ErrUnsupportedKeySize) {
		t.Fatalf("New with short key: expected ErrUnsupportedKeySize, got %v", err)
	}
}

func TestWipe(t *testing.T) {
	s, _ := Expand(mustDecode(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	s.Wipe()
	for i, k := range s.Slots() {
		if !k.IsZero() {
			t.Fatalf("slot %d not wiped", i)
		}
	}
}

func TestRoundConstants(t *testing.T) {
	want := []byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}
	rcon := byte(0x01)
	for i, w := range want {
		if rcon != w {
			t.Fatalf("rcon[%d] = %#02x, want %#02x", i, rcon, w)
		}
		rcon = double(rcon)
	}
}

func BenchmarkExpand128(b *testing.B) {
	key := make([]byte, 16)
	for i := 0; i < b.N; i++ {
		_, _ = Expand(key)
	}
}

func BenchmarkExpand256(b *testing.B) {
	key := make([]byte, 32)
	for i := 0; i < b.N; i++ {
		_, _ = Expand(key)
	}
}
