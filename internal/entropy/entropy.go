// Package entropy provides uniform random draws on top of a pluggable bit
// source. The game treats the source as an opaque service: "give me n random
// bits" or "give me an integer uniformly drawn from [0, max)". Non-power-of-two
// ranges are handled by rejection sampling, so every accepted value is exactly
// uniform.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"math/rand"
)

// DefaultMaxRounds bounds rejection sampling. The draw width is the bit
// length of max, so each round accepts with probability above 1/2; 64 rounds
// fail with odds below 2^-64 on a fair backend.
const DefaultMaxRounds = 64

// ErrRejectionLimit reports that rejection sampling ran out of rounds without
// producing an in-range value. Only a heavily biased backend can get here.
var ErrRejectionLimit = errors.New("entropy: rejection round limit exhausted")

// Backend produces raw uniform random bits. One Draw call is one backend
// round-trip, which may block for non-trivial wall-clock time.
type Backend interface {
	// Draw returns shots independent words of nbits uniform random bits
	// each, packed LSB-first. nbits must be in [1, 64] and shots positive.
	Draw(nbits, shots int) ([]uint64, error)
	// Name identifies the backend in logs and reports.
	Name() string
}

// Simulator draws bits from the operating system's entropy pool. It stands in
// for the external probabilistic service in normal play.
type Simulator struct{}

// Name implements Backend.
func (Simulator) Name() string { return "simulator" }

// Draw implements Backend.
func (Simulator) Draw(nbits, shots int) ([]uint64, error) {
	if err := checkDrawArgs(nbits, shots); err != nil {
		return nil, err
	}
	out := make([]uint64, shots)
	var buf [8]byte
	for i := range out {
		if _, err := crand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("entropy: simulator read: %w", err)
		}
		out[i] = binary.LittleEndian.Uint64(buf[:]) & wordMask(nbits)
	}
	return out, nil
}

// Pseudo is a deterministic backend driven by a seeded math/rand source.
// Tests and headless runs use it for reproducible mazes.
type Pseudo struct {
	rng *rand.Rand
}

// NewPseudo creates a deterministic backend for the given seed.
func NewPseudo(seed int64) *Pseudo {
	return &Pseudo{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- reproducible draws, not security
}

// Name implements Backend.
func (p *Pseudo) Name() string { return "pseudo" }

// Draw implements Backend.
func (p *Pseudo) Draw(nbits, shots int) ([]uint64, error) {
	if err := checkDrawArgs(nbits, shots); err != nil {
		return nil, err
	}
	out := make([]uint64, shots)
	for i := range out {
		out[i] = p.rng.Uint64() & wordMask(nbits)
	}
	return out, nil
}

// Source exposes uniform integer draws on top of a Backend. It owns the
// rejection loop and its round cap; the backend itself never retries.
type Source struct {
	backend   Backend
	maxRounds int
}

// NewSource wraps a backend with the default rejection round cap.
func NewSource(b Backend) *Source {
	return &Source{backend: b, maxRounds: DefaultMaxRounds}
}

// BackendName identifies the wrapped backend.
func (s *Source) BackendName() string { return s.backend.Name() }

// Uniform returns an integer uniformly distributed in [0, max). The draw
// width is the bit length of max, so 2^width can exceed max; out-of-range
// words are rejected and redrawn, one backend round-trip per attempt.
func (s *Source) Uniform(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("entropy: uniform max must be positive, got %d", max)
	}
	nbits := bits.Len(uint(max))
	for round := 0; round < s.maxRounds; round++ {
		words, err := s.backend.Draw(nbits, 1)
		if err != nil {
			return 0, fmt.Errorf("entropy: uniform draw: %w", err)
		}
		if v := words[0]; v < uint64(max) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("entropy: uniform(%d) after %d rounds: %w", max, s.maxRounds, ErrRejectionLimit)
}

// UniformBatch returns up to count integers in [0, max). The first round
// requests all count shots in one backend round-trip and keeps the in-range
// survivors; later rounds re-query only the shortfall. If the round cap runs
// out the survivors collected so far are returned short, never padded with
// out-of-range values.
func (s *Source) UniformBatch(max, count int) ([]int, error) {
	if max <= 0 {
		return nil, fmt.Errorf("entropy: batch max must be positive, got %d", max)
	}
	if count < 0 {
		return nil, fmt.Errorf("entropy: batch count must be non-negative, got %d", count)
	}
	if count == 0 {
		return nil, nil
	}
	nbits := bits.Len(uint(max))
	out := make([]int, 0, count)
	for round := 0; round < s.maxRounds && len(out) < count; round++ {
		words, err := s.backend.Draw(nbits, count-len(out))
		if err != nil {
			return nil, fmt.Errorf("entropy: batch draw: %w", err)
		}
		for _, w := range words {
			if w < uint64(max) {
				out = append(out, int(w))
			}
		}
	}
	return out, nil
}

// RowBits returns n independent coin flips packed LSB-first: bit x of the
// word is flip x. Every n-bit word is in range, so there is no rejection.
func (s *Source) RowBits(n int) (uint64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("entropy: row width must be in [1,64], got %d", n)
	}
	words, err := s.backend.Draw(n, 1)
	if err != nil {
		return 0, fmt.Errorf("entropy: row draw: %w", err)
	}
	return words[0], nil
}

// wordMask returns a mask keeping the low nbits bits.
func wordMask(nbits int) uint64 {
	if nbits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(nbits) - 1
}

func checkDrawArgs(nbits, shots int) error {
	if nbits < 1 || nbits > 64 {
		return fmt.Errorf("entropy: draw width must be in [1,64], got %d", nbits)
	}
	if shots < 1 {
		return fmt.Errorf("entropy: draw shots must be positive, got %d", shots)
	}
	return nil
}
