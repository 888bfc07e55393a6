package metrics

import (
	"strconv"
	"sync"
	"time"
)

// Generation is one generation attempt as seen by the metric sinks.
type Generation struct {
	TimeSignature string
	Bars          int
	Notes         int
	PartialBars   int
	Duration      time.Duration
	Failed        bool
}

func (g Generation) outcome() string {
	switch {
	case g.Failed:
		return "invalid"
	case g.PartialBars > 0:
		return "partial"
	default:
		return "complete"
	}
}

// statusClass buckets an HTTP status as "2xx", "4xx" and so on.
func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// Stats keeps process-lifetime counters for the metrics endpoint.
type Stats struct {
	mu              sync.Mutex
	requests        map[string]int64
	generations     int64
	failures        int64
	notes           int64
	partialBars     int64
	generationTime  time.Duration
	byTimeSignature map[string]int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Requests         map[string]int64 `json:"requests"`
	Generations      int64            `json:"generations"`
	Failures         int64            `json:"failures"`
	Notes            int64            `json:"notes"`
	PartialBars      int64            `json:"partial_bars"`
	MeanGenerationMs float64          `json:"mean_generation_ms"`
	ByTimeSignature  map[string]int64 `json:"by_time_signature"`
}

func NewStats() *Stats {
	return &Stats{
		requests:        make(map[string]int64),
		byTimeSignature: make(map[string]int64),
	}
}

func (s *Stats) addRequest(statusCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[statusClass(statusCode)]++
}

func (s *Stats) addGeneration(g Generation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.Failed {
		s.failures++
		return
	}
	s.generations++
	s.notes += int64(g.Notes)
	s.partialBars += int64(g.PartialBars)
	s.generationTime += g.Duration
	s.byTimeSignature[g.TimeSignature]++
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		Requests:        make(map[string]int64, len(s.requests)),
		Generations:     s.generations,
		Failures:        s.failures,
		Notes:           s.notes,
		PartialBars:     s.partialBars,
		ByTimeSignature: make(map[string]int64, len(s.byTimeSignature)),
	}
	for k, v := range s.requests {
		snap.Requests[k] = v
	}
	for k, v := range s.byTimeSignature {
		snap.ByTimeSignature[k] = v
	}
	if s.generations > 0 {
		snap.MeanGenerationMs = float64(s.generationTime.Microseconds()) / 1000 / float64(s.generations)
	}
	return snap
}
