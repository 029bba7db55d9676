package entropy

import (
	"errors"
	"strings"
	"testing"
)

// scriptBackend returns a scripted word sequence and records the widths it
// was asked for. Exhausted scripts yield zero words.
type scriptBackend struct {
	words     []uint64
	lastNBits int
	calls     int
}

func (s *scriptBackend) Name() string { return "script" }

func (s *scriptBackend) Draw(nbits, shots int) ([]uint64, error) {
	s.lastNBits = nbits
	s.calls++
	out := make([]uint64, shots)
	for i := range out {
		if len(s.words) > 0 {
			out[i] = s.words[0]
			s.words = s.words[1:]
		}
	}
	return out, nil
}

// biasedBackend always returns the all-ones word, so every draw for a
// non-power-of-two max is out of range.
type biasedBackend struct{}

func (biasedBackend) Name() string { return "biased" }

func (biasedBackend) Draw(nbits, shots int) ([]uint64, error) {
	out := make([]uint64, shots)
	for i := range out {
		out[i] = wordMask(nbits)
	}
	return out, nil
}

// failBackend errors on every draw.
type failBackend struct{}

func (failBackend) Name() string { return "fail" }

func (failBackend) Draw(nbits, shots int) ([]uint64, error) {
	return nil, errors.New("backend offline")
}

func TestUniform_InRangeForAllBackends(t *testing.T) {
	backends := []Backend{Simulator{}, NewPseudo(1)}
	maxes := []int{1, 2, 3, 5, 8, 10, 17, 100}
	for _, b := range backends {
		src := NewSource(b)
		for _, max := range maxes {
			for i := 0; i < 200; i++ {
				v, err := src.Uniform(max)
				if err != nil {
					t.Fatalf("%s: Uniform(%d): %v", b.Name(), max, err)
				}
				if v < 0 || v >= max {
					t.Fatalf("%s: Uniform(%d) returned %d, want [0,%d)", b.Name(), max, v, max)
				}
			}
		}
	}
}

func TestUniform_WidthIsBitLengthOfMax(t *testing.T) {
	cases := []struct {
		max   int
		nbits int
	}{
		{1, 1},
		{7, 3},
		{8, 4}, // bit length of 8, not ceil(log2(8))
		{10, 4},
		{100, 7},
	}
	for _, tc := range cases {
		sb := &scriptBackend{}
		if _, err := NewSource(sb).Uniform(tc.max); err != nil {
			t.Fatalf("Uniform(%d): %v", tc.max, err)
		}
		if sb.lastNBits != tc.nbits {
			t.Fatalf("Uniform(%d) drew %d bits, want %d", tc.max, sb.lastNBits, tc.nbits)
		}
	}
}

func TestUniform_RejectsOutOfRangeDraws(t *testing.T) {
	// max=10 draws 4-bit words: 15 and 10 must be rejected, 3 accepted.
	sb := &scriptBackend{words: []uint64{15, 10, 3}}
	v, err := NewSource(sb).Uniform(10)
	if err != nil {
		t.Fatalf("Uniform(10): %v", err)
	}
	if v != 3 {
		t.Fatalf("Uniform(10) = %d, want 3 after two rejections", v)
	}
	if sb.calls != 3 {
		t.Fatalf("expected 3 backend round-trips, got %d", sb.calls)
	}
}

func TestUniform_InvalidMax(t *testing.T) {
	src := NewSource(NewPseudo(1))
	for _, max := range []int{0, -3} {
		if _, err := src.Uniform(max); err == nil {
			t.Fatalf("Uniform(%d) should fail", max)
		}
	}
}

func TestUniform_RejectionLimitOnBiasedBackend(t *testing.T) {
	src := NewSource(biasedBackend{})
	_, err := src.Uniform(10)
	if err == nil {
		t.Fatal("biased backend should exhaust the rejection rounds")
	}
	if !errors.Is(err, ErrRejectionLimit) {
		t.Fatalf("expected ErrRejectionLimit, got %v", err)
	}
}

func TestUniform_BackendFailurePropagates(t *testing.T) {
	_, err := NewSource(failBackend{}).Uniform(10)
	if err == nil {
		t.Fatal("backend failure should propagate")
	}
	if !strings.Contains(err.Error(), "backend offline") {
		t.Fatalf("error should wrap the backend failure, got %v", err)
	}
}

func TestUniformBatch_FullLengthAndRange(t *testing.T) {
	src := NewSource(NewPseudo(7))
	got, err := src.UniformBatch(10, 50)
	if err != nil {
		t.Fatalf("UniformBatch(10, 50): %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("expected the shortfall to be re-queried up to 50 values, got %d", len(got))
	}
	for i, v := range got {
		if v < 0 || v >= 10 {
			t.Fatalf("batch[%d] = %d, want [0,10)", i, v)
		}
	}
}

func TestUniformBatch_ShortOnBiasedBackend(t *testing.T) {
	got, err := NewSource(biasedBackend{}).UniformBatch(10, 8)
	if err != nil {
		t.Fatalf("UniformBatch on biased backend: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("biased backend should yield zero survivors, got %d", len(got))
	}
}

func TestUniformBatch_ZeroCount(t *testing.T) {
	got, err := NewSource(NewPseudo(1)).UniformBatch(10, 0)
	if err != nil {
		t.Fatalf("UniformBatch(10, 0): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("zero-count batch should be empty, got %d values", len(got))
	}
}

func TestUniformBatch_InvalidArgs(t *testing.T) {
	src := NewSource(NewPseudo(1))
	if _, err := src.UniformBatch(0, 5); err == nil {
		t.Fatal("batch with max=0 should fail")
	}
	if _, err := src.UniformBatch(10, -1); err == nil {
		t.Fatal("batch with negative count should fail")
	}
}

func TestRowBits_StaysWithinWidth(t *testing.T) {
	src := NewSource(NewPseudo(3))
	for i := 0; i < 100; i++ {
		row, err := src.RowBits(5)
		if err != nil {
			t.Fatalf("RowBits(5): %v", err)
		}
		if row >= 1<<5 {
			t.Fatalf("RowBits(5) = %b, high bits should be clear", row)
		}
	}
}

func TestRowBits_InvalidWidth(t *testing.T) {
	src := NewSource(NewPseudo(1))
	for _, n := range []int{0, -1, 65} {
		if _, err := src.RowBits(n); err == nil {
			t.Fatalf("RowBits(%d) should fail", n)
		}
	}
}

func TestPseudo_DeterministicPerSeed(t *testing.T) {
	a := NewSource(NewPseudo(42))
	b := NewSource(NewPseudo(42))
	for i := 0; i < 20; i++ {
		va, err := a.Uniform(100)
		if err != nil {
			t.Fatalf("Uniform: %v", err)
		}
		vb, err := b.Uniform(100)
		if err != nil {
			t.Fatalf("Uniform: %v", err)
		}
		if va != vb {
			t.Fatalf("draw %d: same seed diverged, %d vs %d", i, va, vb)
		}
	}
}

func TestSimulator_DrawShape(t *testing.T) {
	words, err := Simulator{}.Draw(8, 5)
	if err != nil {
		t.Fatalf("Draw(8, 5): %v", err)
	}
	if len(words) != 5 {
		t.Fatalf("expected 5 words, got %d", len(words))
	}
	for i, w := range words {
		if w >= 256 {
			t.Fatalf("word %d = %d exceeds 8 bits", i, w)
		}
	}
}

func TestBackend_InvalidDrawArgs(t *testing.T) {
	for _, b := range []Backend{Simulator{}, NewPseudo(1)} {
		if _, err := b.Draw(0, 1); err == nil {
			t.Fatalf("%s: Draw width 0 should fail", b.Name())
		}
		if _, err := b.Draw(65, 1); err == nil {
			t.Fatalf("%s: Draw width 65 should fail", b.Name())
		}
		if _, err := b.Draw(8, 0); err == nil {
			t.Fatalf("%s: Draw with 0 shots should fail", b.Name())
		}
	}
}
