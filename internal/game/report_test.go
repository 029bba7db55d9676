package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/entropy"
)

func TestBoardSketch_MarksEveryActor(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(6),
		WithSeed(2),
		WithAllOpen(),
		WithAdversaryCount(1),
		WithAdversariesAt(Point{0, 5}),
		WithAgentsAt(Point{1, 0}, Point{4, 4}),
	)

	want := strings.Join([]string{
		".1....",
		"......",
		"......",
		"...G..",
		"....2.",
		"X.....",
	}, "\n") + "\n"
	if got := BoardSketch(ts.Session); got != want {
		t.Fatalf("sketch mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestBoardSketch_StackedAgentsShareOneMark(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(6),
		WithSeed(2),
		WithAllOpen(),
		WithAdversaryCount(0),
		WithAgentsAt(Point{2, 2}, Point{2, 2}),
	)

	sketch := BoardSketch(ts.Session)
	if !strings.Contains(sketch, "&") {
		t.Fatalf("expected a stacked pair mark, got:\n%s", sketch)
	}
	if strings.Contains(sketch, "1") || strings.Contains(sketch, "2") {
		t.Fatalf("expected no separate agent marks when stacked, got:\n%s", sketch)
	}
}

func TestBoardSketch_WalkersDrawOverAgents(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(6),
		WithSeed(2),
		WithAllOpen(),
		WithAdversaryCount(1),
		WithAdversariesAt(Point{1, 1}),
		WithAgentsAt(Point{1, 1}, Point{4, 4}),
	)

	lines := strings.Split(BoardSketch(ts.Session), "\n")
	if lines[1][1] != 'X' {
		t.Fatalf("expected the walker drawn over the agent at (1,1), got %q", lines[1])
	}
}

func TestBoardSketch_BeforeTheFirstEpisode(t *testing.T) {
	s, err := NewSession(DefaultConfig(), entropy.NewSource(entropy.NewPseudo(1)), rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := BoardSketch(s); got != "(no board yet)\n" {
		t.Fatalf("expected a placeholder sketch, got %q", got)
	}
}

func TestEpisodeReport_SummarisesTheEpisode(t *testing.T) {
	ts := NewTestSim(WithSeed(8), WithAdversaryDelay(50))
	ts.RunTicks(5)

	rep := EpisodeReport(ts.Session)
	for _, want := range []string{
		"--- Quantum Adventure episode report ---",
		"backend=pseudo grid=10x10 adversaries=3 delay=50",
		"episode=1 phase=playing tick=5",
		"open_cells=",
		"moves: accepted=0 blocked=0",
		"adversary_steps=0 wins=0 losses=0",
		"board:",
		"recent_events:",
	} {
		if !strings.Contains(rep, want) {
			t.Fatalf("report missing %q:\n%s", want, rep)
		}
	}
}

func TestEpisodeReport_KeepsOnlyRecentEvents(t *testing.T) {
	ts := NewTestSim(
		WithSeed(8),
		WithAllOpen(),
		WithAdversaryCount(0),
		WithPolicy(MoveScript(
			Point{1, 0}, Point{1, 0}, Point{1, 0}, Point{1, 0}, Point{1, 0},
		)),
	)
	ts.RunTicks(5)

	rep := EpisodeReport(ts.Session)
	if got := strings.Count(rep, "\n  [T="); got != reportTailEvents {
		t.Fatalf("expected %d tail lines, got %d:\n%s", reportTailEvents, got, rep)
	}
	if !strings.Contains(rep, "(4,0) -> (5,0)") {
		t.Fatalf("expected the latest move in the tail:\n%s", rep)
	}
}
