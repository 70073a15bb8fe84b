package hw

import (
	"crypto/rand"
	"testing"

	"github.com/TheusHen/aesni/aesni/block"
)

func mustHex(t *testing.T, s string) block.Block {
	t.Helper()
	b, err := block.ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", s, err)
	}
	return b
}

func randomBlock(t testing.TB) block.Block {
	var b block.Block
	if _, err := rand.Read(b[:]); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return b
}

func TestSBox(t *testing.T) {
	cases := map[byte]byte{0x00: 0x63, 0x01: 0x7c, 0x53: 0xed, 0xff: 0x16, 0x10: 0xca}
	for in, want := range cases {
		if sbox[in] != want {
			t.Fatalf("sbox[%#02x] = %#02x, want %#02x", in, sbox[in], want)
		}
		if invSbox[want] != in {
			t.Fatalf("invSbox[%#02x] = %#02x, want %#02x", want, invSbox[want], in)
		}
	}
	seen := make(map[byte]bool)
	for _, v := range sbox {
		seen[v] = true
	}
	if len(seen) != 256 {
		t.Fatalf("sbox is not a permutation")
	}
}

// FIPS-197 Appendix B, first round.
func TestEncRound(t *testing.T) {
	state := mustHex(t, "193de3bea0f4e22b9ac68d2ae9f84808")
	key := mustHex(t, "a0fafe1788542cb123a339392a6c7605")
	want := mustHex(t, "a49c7ff2689f352b6b5bea43026a5049")

	s := state
	Enc(&s, &key)
	if s != want {
		t.Fatalf("Enc = %s, want %s", s, want)
	}

	s = state
	encGeneric(&s, &key)
	if s != want {
		t.Fatalf("encGeneric = %s, want %s", s, want)
	}

	// Enc(s, k) = MC(SR(SB(s))) ^ k: strip k, undo MC, then DecLast with a zero key.
	var zero block.Block
	back := want
	xorInto(&back, &back, &key)
	InvMixColumns(&back, &back)
	DecLast(&back, &zero)
	if back != state {
		t.Fatalf("inverse round = %s, want %s", back, state)
	}
}

func TestLastRoundsInvert(t *testing.T) {
	var zero block.Block
	for i := 0; i < 64; i++ {
		s := randomBlock(t)
		k := randomBlock(t)

		x := s
		EncLast(&x, &k)
		xorInto(&x, &x, &k)
		DecLast(&x, &zero)
		if x != s {
			t.Fatalf("DecLast does not invert EncLast for %s", s)
		}

		// InvMixColumns(Enc(s, 0)) == EncLast(s, 0)
		full, last := s, s
		Enc(&full, &zero)
		EncLast(&last, &zero)
		InvMixColumns(&full, &full)
		if full != last {
			t.Fatalf("InvMixColumns does not undo MixColumns for %s", s)
		}
	}
}

func TestKeygenAssist(t *testing.T) {
	// Word 3 of the FIPS-197 A.1 key is 09cf4f3c; RotWord(SubWord) of it is 8a84eb01.
	src := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	var dst block.Block
	KeygenAssist(&dst, &src)
	if got := dst[12:16]; got[0] != 0x8a || got[1] != 0x84 || got[2] != 0xeb || got[3] != 0x01 {
		t.Fatalf("lane 3 = %x, want 8a84eb01", got)
	}
	if got := dst[8:12]; got[0] != 0x01 || got[1] != 0x8a || got[2] != 0x84 || got[3] != 0xeb {
		t.Fatalf("lane 2 = %x, want 018a84eb", got)
	}
}

func TestCLMul(t *testing.T) {
	cases := []struct {
		a, b, lo, hi uint64
	}{
		{1, 0xdeadbeef, 0xdeadbeef, 0},
		{3, 3, 5, 0},
		{2, 1 << 63, 0, 1},
		{1 << 63, 1 << 63, 0, 1 << 62},
		{0xffffffffffffffff, 3, 0x1, 0x1},
	}
	for _, c := range cases {
		lo, hi := CLMul(c.a, c.b)
		if lo != c.lo || hi != c.hi {
			t.Fatalf("CLMul(%#x, %#x) = (%#x, %#x), want (%#x, %#x)", c.a, c.b, lo, hi, c.lo, c.hi)
		}
	}
}

func TestBackendMatchesModel(t *testing.T) {
	if !Accelerated() {
		t.Skip("assembly backend not in use")
	}
	for i := 0; i < 256; i++ {
		s, k := randomBlock(t), randomBlock(t)

		ops := []struct {
			name      string
			hw, model func(state, key *block.Block)
		}{
			{"Enc", Enc, encGeneric},
			{"EncLast", EncLast, encLastGeneric},
			{"Dec", Dec, decGeneric},
			{"DecLast", DecLast, decLastGeneric},
		}
		for _, o := range ops {
			a, b := s, s
			o.hw(&a, &k)
			o.model(&b, &k)
			if a != b {
				t.Fatalf("%s: backend %s, model %s", o.name, a, b)
			}
		}

		var a, b block.Block
		InvMixColumns(&a, &s)
		invMixColumnsGeneric(&b, &s)
		if a != b {
			t.Fatalf("InvMixColumns: backend %s, model %s", a, b)
		}
		KeygenAssist(&a, &s)
		keygenAssistGeneric(&b, &s)
		if a != b {
			t.Fatalf("KeygenAssist: backend %s, model %s", a, b)
		}

		x, y := s.Words()
		lo0, hi0 := CLMul(x, y)
		lo1, hi1 := clmulGeneric(x, y)
		if lo0 != lo1 || hi0 != hi1 {
			t.Fatalf("CLMul(%#x, %#x): backend (%#x, %#x), model (%#x, %#x)", x, y, lo0, hi0, lo1, hi1)
		}
	}
}

func TestRoundLoopsMatchModel(t *testing.T) {
	for _, n := range []int{20, 28} {
		xk := make([]block.Block, n)
		for i := range xk {
			xk[i] = randomBlock(t)
		}
		for i := 0; i < 64; i++ {
			src := randomBlock(t)
			var a, b block.Block
			EncryptBlock(xk, &a, &src)
			encryptBlockGeneric(xk, &b, &src)
			if a != b {
				t.Fatalf("EncryptBlock(%d slots) = %s, model %s", n, a, b)
			}
			DecryptBlock(xk, &a, &src)
			decryptBlockGeneric(xk, &b, &src)
			if a != b {
				t.Fatalf("DecryptBlock(%d slots) = %s, model %s", n, a, b)
			}
		}
	}
}

func TestMalformedSchedulePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on odd-length schedule")
		}
	}()
	var dst, src block.Block
	EncryptBlock(make([]block.Block, 21), &dst, &src)
}

func BenchmarkEncryptBlock(b *testing.B) {
	xk := make([]block.Block, 20)
	var dst, src block.Block
	b.SetBytes(block.Size)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncryptBlock(xk, &dst, &src)
	}
}

func BenchmarkCLMul(b *testing.B) {
	var lo, hi uint64
	for i := 0; i < b.N; i++ {
		lo, hi = CLMul(uint64(i), 0x9e3779b97f4a7c15^hi)
	}
	_ = lo
}
