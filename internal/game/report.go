package game

import (
	"fmt"
	"strings"
)

// reportTailEvents is how many trailing log lines the report includes.
const reportTailEvents = 12

// EpisodeReport summarizes a session for sharing: parameters, counters
// derived from the episode log, a board sketch and the most recent events.
// The windowed game copies it to the clipboard on demand.
func EpisodeReport(s *Session) string {
	cfg := s.Config()
	ev := s.Events()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Quantum Adventure episode report ---\n")
	fmt.Fprintf(&b, "backend=%s grid=%dx%d adversaries=%d delay=%d\n",
		s.BackendName(), cfg.GridSize, cfg.GridSize, cfg.AdversaryCount, cfg.AdversaryDelay)
	fmt.Fprintf(&b, "episode=%d phase=%s tick=%d\n", s.Episodes(), s.Phase(), s.Tick())
	if g := s.Grid(); g != nil {
		fmt.Fprintf(&b, "open_cells=%d/%d\n", g.OpenCount(), g.Size*g.Size)
	}
	fmt.Fprintf(&b, "moves: accepted=%d blocked=%d\n",
		ev.CountCategory("move", "accepted"), ev.CountCategory("move", "blocked"))
	fmt.Fprintf(&b, "adversary_steps=%d wins=%d losses=%d\n",
		ev.CountCategory("adversary", "step"),
		ev.CountCategory("state", "won"),
		ev.CountCategory("state", "lost"))

	b.WriteString("board:\n")
	b.WriteString(BoardSketch(s))

	entries := ev.Entries()
	from := len(entries) - reportTailEvents
	if from < 0 {
		from = 0
	}
	b.WriteString("recent_events:\n")
	for _, e := range entries[from:] {
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// BoardSketch renders the live board one row per line: '#' wall, '.' floor,
// 'G' goal, '1' and '2' the agents ('&' when stacked), 'X' walkers drawn
// over everything else, matching the window's draw order.
func BoardSketch(s *Session) string {
	g := s.Grid()
	if g == nil {
		return "(no board yet)\n"
	}
	lines := make([][]byte, g.Size)
	for y := 0; y < g.Size; y++ {
		line := make([]byte, g.Size)
		for x := 0; x < g.Size; x++ {
			if g.Open(Point{x, y}) {
				line[x] = '.'
			} else {
				line[x] = '#'
			}
		}
		lines[y] = line
	}
	goal := g.Goal()
	lines[goal.Y][goal.X] = 'G'
	p1, p2 := s.Agents()
	lines[p1.Y][p1.X] = '1'
	if p2 == p1 {
		lines[p2.Y][p2.X] = '&'
	} else {
		lines[p2.Y][p2.X] = '2'
	}
	for _, a := range s.AdversaryPositions() {
		lines[a.Y][a.X] = 'X'
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
