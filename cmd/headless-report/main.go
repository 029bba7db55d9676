package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Red1-Rahman/Quantum-Adventure/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome game.Phase
	endTick int

	accepted       int
	blockedWall    int
	blockedEdge    int
	adversarySteps int
	openCells      int

	firstBlockTick int
	firstStepTick  int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var gridSize int
	var adversaries int
	var delay int
	var policy string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless episodes")
	flag.IntVar(&ticks, "ticks", 600, "tick budget per episode")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&gridSize, "grid", game.DefaultGridSize, "maze side length")
	flag.IntVar(&adversaries, "adversaries", game.DefaultAdversaryCount, "number of adversaries")
	flag.IntVar(&delay, "delay", game.DefaultAdversaryDelay, "ticks between adversary steps")
	flag.StringVar(&policy, "policy", "random", "agent policy: random or still")
	flag.BoolVar(&verbose, "v", false, "record per-tick agent positions")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if policy != "random" && policy != "still" {
		fmt.Printf("error: unsupported policy %q (supported: random, still)\n", policy)
		return
	}
	cfg := game.Config{GridSize: gridSize, AdversaryCount: adversaries, AdversaryDelay: delay}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Episode Report ===\n")
	fmt.Printf("policy=%s runs=%d ticks=%d grid=%d adversaries=%d delay=%d seed_base=%d seed_step=%d\n\n",
		policy, runs, ticks, gridSize, adversaries, delay, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runEpisode(i+1, seed, ticks, cfg, policy, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runEpisode(runIndex int, seed int64, ticks int, cfg game.Config, policy string, verbose bool) runStats {
	agentPolicy := game.Policy(game.StandStill)
	if policy == "random" {
		agentPolicy = game.RandomWalk(seed)
	}
	ts := game.NewTestSim(
		game.WithGridSize(cfg.GridSize),
		game.WithAdversaryCount(cfg.AdversaryCount),
		game.WithAdversaryDelay(cfg.AdversaryDelay),
		game.WithSeed(seed),
		game.WithVerbose(verbose),
		game.WithPolicy(agentPolicy),
	)
	phase, endTick := ts.RunToOutcome(ticks)

	entries := ts.Events.Entries()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		outcome:        phase,
		endTick:        endTick,
		accepted:       ts.Events.CountCategory("move", "accepted"),
		blockedWall:    countBlocked(entries, "wall"),
		blockedEdge:    countBlocked(entries, "board edge"),
		adversarySteps: ts.Events.CountCategory("adversary", "step"),
		openCells:      ts.Session.Grid().OpenCount(),
		firstBlockTick: firstTick(entries, "move", "blocked", ""),
		firstStepTick:  firstTick(entries, "adversary", "step", ""),
	}
}

func countBlocked(entries []game.EpisodeEvent, reason string) int {
	n := 0
	for _, e := range entries {
		if e.Category == "move" && e.Key == "blocked" && strings.Contains(e.Value, reason) {
			n++
		}
	}
	return n
}

func firstTick(entries []game.EpisodeEvent, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s end_tick=%d open_cells=%d\n", outcomeLabel(rs.outcome), rs.endTick, rs.openCells)
	fmt.Printf("moves: accepted=%d blocked_wall=%d blocked_edge=%d\n", rs.accepted, rs.blockedWall, rs.blockedEdge)
	fmt.Printf("phase_markers: first_block=%d first_adversary_step=%d adversary_steps=%d\n",
		rs.firstBlockTick, rs.firstStepTick, rs.adversarySteps)
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins, losses, timeouts := tallyOutcomes(all)

	totalAccepted := 0
	totalBlocked := 0
	totalSteps := 0
	totalOpen := 0
	winTicks := make([]int, 0, len(all))
	lossTicks := make([]int, 0, len(all))
	for _, rs := range all {
		totalAccepted += rs.accepted
		totalBlocked += rs.blockedWall + rs.blockedEdge
		totalSteps += rs.adversarySteps
		totalOpen += rs.openCells
		switch rs.outcome {
		case game.PhaseWon:
			winTicks = append(winTicks, rs.endTick)
		case game.PhaseLost:
			lossTicks = append(lossTicks, rs.endTick)
		}
	}

	decided := append(append([]int(nil), winTicks...), lossTicks...)

	fmt.Println("=== Aggregate Episode Outcomes ===")
	fmt.Printf("runs=%d wins=%d losses=%d timeouts=%d\n", len(all), wins, losses, timeouts)
	fmt.Printf("avg_ticks_to_win=%s avg_ticks_to_loss=%s\n", avgTickString(winTicks), avgTickString(lossTicks))
	fmt.Printf("decided_episode_length: %s\n", game.Summarize(decided).Format())
	fmt.Printf("avg_moves_per_run: accepted=%.1f blocked=%.1f block_share=%.2f\n",
		avg(totalAccepted, len(all)), avg(totalBlocked, len(all)), blockShare(totalAccepted, totalBlocked))
	fmt.Printf("avg_adversary_steps_per_run=%.1f avg_open_cells=%.1f\n",
		avg(totalSteps, len(all)), avg(totalOpen, len(all)))
}

// outcomeLabel renders a final phase for report output. An episode still
// in the playing phase ran out of its tick budget.
func outcomeLabel(p game.Phase) string {
	switch p {
	case game.PhaseWon:
		return "won"
	case game.PhaseLost:
		return "lost"
	default:
		return "timeout"
	}
}

func tallyOutcomes(all []runStats) (wins, losses, timeouts int) {
	for _, rs := range all {
		switch rs.outcome {
		case game.PhaseWon:
			wins++
		case game.PhaseLost:
			losses++
		default:
			timeouts++
		}
	}
	return wins, losses, timeouts
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// blockShare is the fraction of move attempts the maze or board edge
// rejected. Zero attempts report a zero share.
func blockShare(accepted, blocked int) float64 {
	total := accepted + blocked
	if total == 0 {
		return 0
	}
	return float64(blocked) / float64(total)
}
