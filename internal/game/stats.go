package game

import (
	"fmt"
	"sort"
)

// Summary holds order statistics for one episode metric.
type Summary struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
}

// Summarize computes order statistics over the given samples. An empty
// sample set returns a zero Summary.
func Summarize(vals []int) Summary {
	if len(vals) == 0 {
		return Summary{}
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	s := Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  float64(sum) / float64(len(sorted)),
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		s.Median = float64(sorted[mid])
	} else {
		s.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return s
}

// Format renders the summary as a key=value fragment for report lines.
func (s Summary) Format() string {
	if s.Count == 0 {
		return "n=0"
	}
	return fmt.Sprintf("n=%d min=%d mean=%.1f median=%.1f max=%d",
		s.Count, s.Min, s.Mean, s.Median, s.Max)
}
