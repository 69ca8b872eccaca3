package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the per-tick update.
const (
	PhaseMorph   = "morph"
	PhaseAmbient = "ambient"
	PhaseTwinkle = "twinkle"
	PhaseStats   = "stats"
)

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	// End final phase
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	sample := PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}

	p.samples[p.writeIndex] = sample
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseTotals := make(map[string]time.Duration)
	stats.MinTickDuration = time.Hour

	for i := 0; i < p.sampleCount; i++ {
		s := &p.samples[i]
		total += s.TickDuration
		if s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}
		for phase, d := range s.Phases {
			phaseTotals[phase] += d
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	for phase, d := range phaseTotals {
		stats.PhaseAvg[phase] = d / n
		if total > 0 {
			stats.PhasePct[phase] = float64(d) / float64(total) * 100
		}
	}
	return stats
}

// PerfCSV is the flattened perf record written to perf.csv.
type PerfCSV struct {
	WindowEnd int64   `csv:"window_end"`
	AvgTickUs int64   `csv:"avg_tick_us"`
	MinTickUs int64   `csv:"min_tick_us"`
	MaxTickUs int64   `csv:"max_tick_us"`
	MorphPct  float64 `csv:"morph_pct"`
	AmbntPct  float64 `csv:"ambient_pct"`
	TwnklPct  float64 `csv:"twinkle_pct"`
}

// ToCSV flattens the stats for CSV output.
func (s PerfStats) ToCSV(windowEnd int64) PerfCSV {
	return PerfCSV{
		WindowEnd: windowEnd,
		AvgTickUs: s.AvgTickDuration.Microseconds(),
		MinTickUs: s.MinTickDuration.Microseconds(),
		MaxTickUs: s.MaxTickDuration.Microseconds(),
		MorphPct:  s.PhasePct[PhaseMorph],
		AmbntPct:  s.PhasePct[PhaseAmbient],
		TwnklPct:  s.PhasePct[PhaseTwinkle],
	}
}

// Log emits the aggregated stats via slog.
func (s PerfStats) Log(tick int64) {
	slog.Info("perf window",
		"tick", tick,
		"avg_tick", s.AvgTickDuration.Round(time.Microsecond),
		"min_tick", s.MinTickDuration.Round(time.Microsecond),
		"max_tick", s.MaxTickDuration.Round(time.Microsecond),
		"morph_pct", s.PhasePct[PhaseMorph],
		"ambient_pct", s.PhasePct[PhaseAmbient],
	)
}
