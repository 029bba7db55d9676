package game

import (
	"fmt"
	"math/rand"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/entropy"
)

// TestSim is a headless harness used by tests and the report tool. It drives
// a Session without Ebiten, with deterministic seeding, scripted boards and
// structured logging. Construction panics on a misconfigured scenario;
// production code builds a Session directly and handles errors.
type TestSim struct {
	Session *Session
	Events  *EpisodeLog

	cfg    Config
	seed   int64
	rows   []uint64
	policy Policy
}

// Policy chooses the input step for each tick. Return (0, 0) to stand still.
type Policy func(tick int, s *Session) (dx, dy int)

// StandStill is the default policy: no input, walkers only.
func StandStill(int, *Session) (int, int) { return 0, 0 }

// MoveScript replays a fixed step sequence, then stands still.
func MoveScript(steps ...Point) Policy {
	i := 0
	return func(int, *Session) (int, int) {
		if i >= len(steps) {
			return 0, 0
		}
		st := steps[i]
		i++
		return st.X, st.Y
	}
}

// RandomWalk drives the pair with uniform random direction steps.
func RandomWalk(seed int64) Policy {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness policy
	return func(int, *Session) (int, int) {
		st := adversarySteps[rng.Intn(4)] // the four directions, never stay
		return st.X, st.Y
	}
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // sizes, counts, seed, verbose, policy; applied first
	simOptRows                        // scripted board rows; applied once the size is known
	simOptPlace                       // direct placement; applied after the first episode starts
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the board side length.
func WithGridSize(n int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.GridSize = n
	}}
}

// WithAdversaryCount sets how many walkers spawn per episode.
func WithAdversaryCount(n int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.AdversaryCount = n
	}}
}

// WithAdversaryDelay sets the walker step period in ticks.
func WithAdversaryDelay(n int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.AdversaryDelay = n
	}}
}

// WithSeed sets the root seed for deterministic runs. The entropy backend
// and the walker rng both derive from it.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.Events = NewEpisodeLog(v)
	}}
}

// WithPolicy sets the input policy for RunTicks and RunUntil.
func WithPolicy(p Policy) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.policy = p
	}}
}

// WithScriptedRows pins the first board rows, top to bottom; bit x of a row
// word opens cell (x, y). Remaining rows fall back to the seeded backend.
func WithScriptedRows(rows ...uint64) SimOption {
	return SimOption{simOptRows, func(ts *TestSim) {
		ts.rows = append([]uint64(nil), rows...)
	}}
}

// WithAllOpen scripts a board with every cell open.
func WithAllOpen() SimOption {
	return SimOption{simOptRows, func(ts *TestSim) {
		rows := make([]uint64, ts.cfg.GridSize)
		for i := range rows {
			rows[i] = fullRow(ts.cfg.GridSize)
		}
		ts.rows = rows
	}}
}

// WithAllClosed scripts a board where only the forced start and goal cells
// are open. Walkers have nowhere to spawn, so pair it with
// WithAdversaryCount(0).
func WithAllClosed() SimOption {
	return SimOption{simOptRows, func(ts *TestSim) {
		ts.rows = make([]uint64, ts.cfg.GridSize)
	}}
}

// WithAgentsAt moves the pair to the given cells after the episode starts.
func WithAgentsAt(p1, p2 Point) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.Session.p1 = p1
		ts.Session.p2 = p2
	}}
}

// WithAdversariesAt replaces the spawned walkers with walkers at the given
// cells, taken as given whether open or not.
func WithAdversariesAt(cells ...Point) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.Session.adversaries = NewAdversarySet(append([]Point(nil), cells...), ts.cfg.AdversaryDelay)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Configuration (sizes, counts, seed, verbose, policy)
//  2. Scripted rows, now that the board size is fixed
//  3. Build the session and start the first episode
//  4. Direct placement of agents and walkers
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:    DefaultConfig(),
		seed:   1,
		Events: NewEpisodeLog(false),
		policy: StandStill,
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptRows {
			o.fn(ts)
		}
	}
	rootRng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	var backend entropy.Backend = entropy.NewPseudo(rootRng.Int63())
	if ts.rows != nil {
		backend = &rowBackend{rows: ts.rows, delegate: backend}
	}
	walkRng := rand.New(rand.NewSource(rootRng.Int63())) // #nosec G404 -- test harness
	sess, err := NewSession(ts.cfg, entropy.NewSource(backend), walkRng, ts.Events)
	if err == nil {
		err = sess.Reset()
	}
	if err != nil {
		panic(fmt.Sprintf("game: test sim: %v", err))
	}
	ts.Session = sess
	for _, o := range opts {
		if o.kind == simOptPlace {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the session n ticks under the policy.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		dx, dy := ts.policy(ts.Session.Tick()+1, ts.Session)
		ts.Session.Advance(dx, dy)
	}
}

// RunUntil advances the session up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		dx, dy := ts.policy(ts.Session.Tick()+1, ts.Session)
		ts.Session.Advance(dx, dy)
		if predicate(ts) {
			return ts.Session.Tick()
		}
	}
	return -1
}

// RunToOutcome plays until the episode leaves the playing phase, up to
// maxTicks. Returns the final phase and the tick it ended on, or -1 when
// the episode is still going.
func (ts *TestSim) RunToOutcome(maxTicks int) (Phase, int) {
	end := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Phase() != PhasePlaying
	}, maxTicks)
	return ts.Session.Phase(), end
}

// rowBackend feeds scripted board rows while delegating every other draw to
// the wrapped backend. Board rows are the only single-shot draws a session
// makes and they come first, so the script never collides with spawn
// batches.
type rowBackend struct {
	rows     []uint64
	next     int
	delegate entropy.Backend
}

func (rb *rowBackend) Name() string { return "scripted-rows" }

func (rb *rowBackend) Draw(nbits, shots int) ([]uint64, error) {
	if shots == 1 && rb.next < len(rb.rows) {
		w := rb.rows[rb.next]
		rb.next++
		return []uint64{w}, nil
	}
	return rb.delegate.Draw(nbits, shots)
}

// fullRow returns a row word with every cell bit set.
func fullRow(size int) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(size) - 1
}
