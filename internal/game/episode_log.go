package game

import (
	"fmt"
	"strings"
)

// EpisodeEvent is one recorded event during a session.
type EpisodeEvent struct {
	Tick     int
	Actor    string  // "P1", "P2", adversary labels "A0".., or "--" for global events
	Category string  // maze, input, move, adversary, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the event as a fixed-width log line.
//
//	[T=042] P2   move      blocked          (3,4) -> (3,5): wall
func (e EpisodeEvent) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// EpisodeLog collects structured events for one session. The windowed game
// folds it into the shareable report; the headless harness asserts on it.
// It is unbounded and machine-readable.
type EpisodeLog struct {
	events  []EpisodeEvent
	verbose bool
}

// NewEpisodeLog creates an EpisodeLog. If verbose is true, per-tick position
// entries are also recorded (useful for replaying a run step by step).
func NewEpisodeLog(verbose bool) *EpisodeLog {
	return &EpisodeLog{verbose: verbose}
}

// Add records a new event.
func (el *EpisodeLog) Add(tick int, actor, category, key, value string, numVal float64) {
	el.events = append(el.events, EpisodeEvent{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an event only when verbose mode is on.
func (el *EpisodeLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded events.
func (el *EpisodeLog) Entries() []EpisodeEvent {
	return el.events
}

// Filter returns events matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EpisodeLog) Filter(category, key string) []EpisodeEvent {
	var out []EpisodeEvent
	for _, e := range el.events {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns events for a specific actor label.
func (el *EpisodeLog) FilterActor(label string) []EpisodeEvent {
	var out []EpisodeEvent
	for _, e := range el.events {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many events match the given category and key.
func (el *EpisodeLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent event matching category+key, or false if none.
func (el *EpisodeLog) LastOf(category, key string) (EpisodeEvent, bool) {
	events := el.Filter(category, key)
	if len(events) == 0 {
		return EpisodeEvent{}, false
	}
	return events[len(events)-1], true
}

// HasEvent returns true if at least one event matches category, key, and
// value substring. Empty arguments match anything.
func (el *EpisodeLog) HasEvent(category, key, valueSubstr string) bool {
	for _, e := range el.events {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EpisodeLog) Format() string {
	var sb strings.Builder
	for _, e := range el.events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
