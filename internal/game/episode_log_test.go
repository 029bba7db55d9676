package game

import (
	"strings"
	"testing"
)

func TestEpisodeEvent_StringIsFixedWidth(t *testing.T) {
	e := EpisodeEvent{Tick: 7, Actor: "P1", Category: "move", Key: "blocked", Value: "(0,0): board edge"}
	want := "[T=007] P1   move      blocked          (0,0): board edge"
	if got := e.String(); got != want {
		t.Fatalf("format drifted:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestEpisodeLog_FilterAndCount(t *testing.T) {
	l := NewEpisodeLog(false)
	l.Add(1, "P1", "move", "accepted", "(0,0) -> (1,0)", 0)
	l.Add(2, "P2", "move", "blocked", "(9,9): board edge", 0)
	l.Add(2, "A0", "adversary", "step", "(4,4) -> (4,5)", 0)
	l.Add(3, "P1", "move", "accepted", "(1,0) -> (2,0)", 0)

	if got := len(l.Filter("move", "")); got != 3 {
		t.Fatalf("expected 3 move events, got %d", got)
	}
	if got := len(l.Filter("move", "accepted")); got != 2 {
		t.Fatalf("expected 2 accepted moves, got %d", got)
	}
	if got := l.CountCategory("adversary", "step"); got != 1 {
		t.Fatalf("expected 1 walker step, got %d", got)
	}
	if got := len(l.Filter("", "blocked")); got != 1 {
		t.Fatalf("expected 1 blocked event matching any category, got %d", got)
	}
	if got := len(l.FilterActor("P1")); got != 2 {
		t.Fatalf("expected 2 events for P1, got %d", got)
	}
}

func TestEpisodeLog_LastOf(t *testing.T) {
	l := NewEpisodeLog(false)
	l.Add(1, "P1", "move", "accepted", "(0,0) -> (1,0)", 0)
	l.Add(5, "P1", "move", "accepted", "(1,0) -> (2,0)", 0)

	e, ok := l.LastOf("move", "accepted")
	if !ok {
		t.Fatal("expected a matching event")
	}
	if e.Tick != 5 {
		t.Fatalf("expected the latest event at tick 5, got tick %d", e.Tick)
	}
	if _, ok := l.LastOf("state", "won"); ok {
		t.Fatal("expected no won event")
	}
}

func TestEpisodeLog_HasEventMatchesSubstrings(t *testing.T) {
	l := NewEpisodeLog(false)
	l.Add(2, "P2", "move", "blocked", "(3,4) -> (3,5): wall", 0)

	if !l.HasEvent("move", "blocked", "wall") {
		t.Fatal("expected a wall block to match")
	}
	if l.HasEvent("move", "blocked", "board edge") {
		t.Fatal("expected no edge block")
	}
	if !l.HasEvent("", "", "(3,4)") {
		t.Fatal("expected an empty category and key to match anything")
	}
}

func TestEpisodeLog_VerboseGating(t *testing.T) {
	quiet := NewEpisodeLog(false)
	quiet.AddVerbose(1, "P1", "move", "position", "(0,0)", 0)
	if got := len(quiet.Entries()); got != 0 {
		t.Fatalf("expected verbose entries dropped on a quiet log, got %d", got)
	}

	loud := NewEpisodeLog(true)
	loud.AddVerbose(1, "P1", "move", "position", "(0,0)", 0)
	if got := len(loud.Entries()); got != 1 {
		t.Fatalf("expected verbose entries kept on a verbose log, got %d", got)
	}
}

func TestEpisodeLog_FormatOneLinePerEvent(t *testing.T) {
	l := NewEpisodeLog(false)
	l.Add(1, "--", "maze", "generated", "52/100 cells open, goal (5,5)", 52)
	l.Add(2, "P1", "move", "accepted", "(0,0) -> (1,0)", 0)

	out := l.Format()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "[T=001]") || !strings.Contains(lines[0], "generated") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}
