package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated morph statistics for a time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Morph state at window end
	State       string  `csv:"state"`
	Locked      bool    `csv:"locked"`
	MeanDist    float64 `csv:"mean_dist"`    // mean particle distance to the active target
	DistStdDev  float64 `csv:"dist_stddev"`  // spread of those distances
	MaxDist     float64 `csv:"max_dist"`     // worst particle
	DistP90     float64 `csv:"dist_p90"`     // 90th percentile distance
	TwinkleLvl  float64 `csv:"twinkle"`      // smoothed light intensity
	SnowRecycle int     `csv:"snow_recycle"` // ground crossings during window

	// Gesture events during window
	Transitions  int `csv:"transitions"`
	Dropped      int `csv:"dropped"`
	LightEvents  int `csv:"fb_light"`
	MediumEvents int `csv:"fb_medium"`
	HeavyEvents  int `csv:"fb_heavy"`
}

// Log emits the window stats via slog.
func (w WindowStats) Log() {
	slog.Info("stats window",
		"tick", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"state", w.State,
		"locked", w.Locked,
		"mean_dist", w.MeanDist,
		"max_dist", w.MaxDist,
		"twinkle", w.TwinkleLvl,
		"snow_recycle", w.SnowRecycle,
		"transitions", w.Transitions,
		"dropped", w.Dropped,
	)
}

// SummarizeDistances computes mean, standard deviation, max and the
// 90th percentile of the per-particle distances to the active target.
func SummarizeDistances(dists []float64) (mean, stddev, max, p90 float64) {
	if len(dists) == 0 {
		return 0, 0, 0, 0
	}
	mean, stddev = stat.MeanStdDev(dists, nil)
	if len(dists) == 1 {
		stddev = 0
	}
	for _, d := range dists {
		if d > max {
			max = d
		}
	}

	// Sort a copy for the percentile; callers keep their order.
	sorted := make([]float64, len(dists))
	copy(sorted, dists)
	sort.Float64s(sorted)
	p90 = Percentile(sorted, 0.90)

	return mean, stddev, max, p90
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between adjacent ranks
	rank := p * float64(n-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
