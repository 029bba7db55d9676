package game

import (
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/entropy"
)

// Phase is the session state: the instructions screen, active play, or one
// of the two terminal outcomes. Terminal phases return to play via Reset.
type Phase int

const (
	PhaseInstructions Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// spawnRounds bounds the batched placement draws for one episode. Each round
// requests one candidate cell per missing walker.
const spawnRounds = 32

// Session is one run of the game: the board, the entangled agent pair, the
// walkers and the phase machine. It has no rendering or input dependencies;
// the windowed app and the headless harness both drive it through Reset and
// Advance.
type Session struct {
	cfg         Config
	src         *entropy.Source
	rng         *rand.Rand
	events      *EpisodeLog
	grid        *Grid
	p1          Point
	p2          Point
	adversaries *AdversarySet
	phase       Phase
	tick        int
	episodes    int
}

// NewSession wires a session and leaves it on the instructions screen; the
// first Reset draws a board and starts play. rng drives the adversary walks
// and is never the entropy source. src supplies maze rows and spawn cells;
// any failure from it ends the session. A nil rng gets a time seed, a nil
// events log records non-verbose.
func NewSession(cfg Config, src *entropy.Source, rng *rand.Rand, events *EpisodeLog) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- walk steps, not security
	}
	if events == nil {
		events = NewEpisodeLog(false)
	}
	return &Session{
		cfg:    cfg,
		src:    src,
		rng:    rng,
		events: events,
		phase:  PhaseInstructions,
	}, nil
}

// Reset starts a fresh episode: a new board is drawn from the entropy
// source, the first agent returns to the top-left corner, the second to the
// bottom-right, walkers respawn and the phase flips to playing. Works from
// any phase, including mid-play. Nothing survives a reset except the log.
//
// The second agent's corner is not forced open, so it may start on a wall;
// moves off it commit normally since only destinations are validated.
func (s *Session) Reset() error {
	size := s.cfg.GridSize
	start := Point{0, 0}
	goal := Point{size / 2, size / 2}
	grid, err := NewGrid(size, start, goal, s.src)
	if err != nil {
		return err
	}
	s.grid = grid
	s.tick = 0
	s.p1 = start
	s.p2 = Point{size - 1, size - 1}
	s.events.Add(s.tick, "--", "maze", "generated",
		fmt.Sprintf("%d/%d cells open, goal %v", grid.OpenCount(), size*size, goal), float64(grid.OpenCount()))
	cells, err := s.spawnCells()
	if err != nil {
		return err
	}
	s.adversaries = NewAdversarySet(cells, s.cfg.AdversaryDelay)
	s.episodes++
	s.phase = PhasePlaying
	s.events.Add(s.tick, "--", "state", "playing", fmt.Sprintf("episode %d begins", s.episodes), 0)
	log.Debugf("episode %d: %dx%d board, %d/%d open, %d adversaries, backend=%s",
		s.episodes, size, size, grid.OpenCount(), size*size, len(cells), s.src.BackendName())
	return nil
}

// Advance runs one playing tick. The input step commits first (dx, dy of
// zero means no input), then the walker timer ticks, then the outcome is
// evaluated. Reaching the goal is checked before capture, so touching the
// goal and a walker on the same tick still wins. Outside the playing phase
// Advance does nothing.
func (s *Session) Advance(dx, dy int) {
	if s.phase != PhasePlaying {
		return
	}
	s.tick++
	s.step(dx, dy)
	for _, st := range s.adversaries.Advance(s.grid, s.rng) {
		s.events.Add(s.tick, adversaryLabel(st.Index), "adversary", "step",
			fmt.Sprintf("%v -> %v", st.From, st.To), 0)
	}
	s.events.AddVerbose(s.tick, "P1", "move", "position", s.p1.String(), 0)
	s.events.AddVerbose(s.tick, "P2", "move", "position", s.p2.String(), 0)
	s.checkOutcome()
}

// step applies one input step to the entangled pair. Each agent commits
// independently: a wall or edge leaves that agent in place while its twin
// may still move, so the pair can fall out of perfect mirroring.
func (s *Session) step(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	s.events.Add(s.tick, "--", "input", "step", fmt.Sprintf("(%+d,%+d)", dx, dy), 0)
	n1, n2 := EntangledMove(s.p1, s.p2, dx, dy, s.grid.Size)
	s.commitAgent("P1", &s.p1, n1)
	s.commitAgent("P2", &s.p2, n2)
}

func (s *Session) commitAgent(label string, pos *Point, next Point) {
	from := *pos
	switch {
	case next == from:
		s.events.Add(s.tick, label, "move", "blocked", fmt.Sprintf("%v: board edge", from), 0)
	case !s.grid.Open(next):
		s.events.Add(s.tick, label, "move", "blocked", fmt.Sprintf("%v -> %v: wall", from, next), 0)
	default:
		*pos = next
		s.events.Add(s.tick, label, "move", "accepted", fmt.Sprintf("%v -> %v", from, next), 0)
	}
}

// checkOutcome flips the phase at the end of a tick. The goal is checked
// before capture.
func (s *Session) checkOutcome() {
	goal := s.grid.Goal()
	if s.p1 == goal || s.p2 == goal {
		who := "P2"
		if s.p1 == goal {
			who = "P1"
		}
		s.phase = PhaseWon
		s.events.Add(s.tick, who, "state", "won", fmt.Sprintf("reached the goal %v", goal), 0)
		log.Debugf("episode %d won by %s at tick %d", s.episodes, who, s.tick)
		return
	}
	for i, cell := range s.adversaries.Cells {
		if cell == s.p1 || cell == s.p2 {
			caught := "P2"
			if cell == s.p1 {
				caught = "P1"
			}
			s.phase = PhaseLost
			s.events.Add(s.tick, adversaryLabel(i), "state", "lost",
				fmt.Sprintf("%s caught at %v", caught, cell), 0)
			log.Debugf("episode %d lost: %s caught at tick %d", s.episodes, caught, s.tick)
			return
		}
	}
}

// spawnCells picks distinct open cells for the configured walkers, with both
// agents and the goal excluded. Candidate coordinates are drawn in batches
// so one backend round-trip usually covers every placement; a board too
// closed to host them all within the round budget fails the episode.
func (s *Session) spawnCells() ([]Point, error) {
	count := s.cfg.AdversaryCount
	if count == 0 {
		return nil, nil
	}
	taken := map[Point]bool{
		s.p1:          true,
		s.p2:          true,
		s.grid.Goal(): true,
	}
	cells := make([]Point, 0, count)
	for round := 0; round < spawnRounds && len(cells) < count; round++ {
		coords, err := s.src.UniformBatch(s.grid.Size, 2*(count-len(cells)))
		if err != nil {
			return nil, fmt.Errorf("game: adversary spawn: %w", err)
		}
		for i := 0; i+1 < len(coords) && len(cells) < count; i += 2 {
			p := Point{coords[i], coords[i+1]}
			if taken[p] || !s.grid.Open(p) {
				continue
			}
			taken[p] = true
			s.events.Add(s.tick, adversaryLabel(len(cells)), "adversary", "spawned", p.String(), 0)
			cells = append(cells, p)
		}
	}
	if len(cells) < count {
		return nil, fmt.Errorf("game: placed %d of %d adversaries after %d spawn rounds", len(cells), count, spawnRounds)
	}
	return cells, nil
}

func adversaryLabel(i int) string { return fmt.Sprintf("A%d", i) }

// Phase returns the current state of the session machine.
func (s *Session) Phase() Phase { return s.phase }

// Tick returns how many ticks the current episode has run.
func (s *Session) Tick() int { return s.tick }

// Grid returns the current board, nil before the first Reset.
func (s *Session) Grid() *Grid { return s.grid }

// Agents returns the positions of the entangled pair.
func (s *Session) Agents() (p1, p2 Point) { return s.p1, s.p2 }

// AdversaryPositions returns a snapshot of every walker's cell.
func (s *Session) AdversaryPositions() []Point {
	if s.adversaries == nil {
		return nil
	}
	return append([]Point(nil), s.adversaries.Cells...)
}

// Episodes returns how many episodes have started.
func (s *Session) Episodes() int { return s.episodes }

// Events returns the episode log.
func (s *Session) Events() *EpisodeLog { return s.events }

// Config returns the session parameters.
func (s *Session) Config() Config { return s.cfg }

// BackendName identifies the entropy backend in reports.
func (s *Session) BackendName() string { return s.src.BackendName() }
