package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarizeDistances(t *testing.T) {
	// Unsorted on purpose; the percentile sorts internally.
	dists := []float64{0.3, 0.1, 0.5, 0.2, 0.4}
	mean, stddev, max, p90 := SummarizeDistances(dists)

	if math.Abs(mean-0.3) > 0.001 {
		t.Errorf("mean = %v, want 0.3", mean)
	}
	if stddev <= 0 {
		t.Errorf("stddev = %v, want > 0", stddev)
	}
	if max != 0.5 {
		t.Errorf("max = %v, want 0.5", max)
	}
	if math.Abs(p90-0.46) > 0.001 {
		t.Errorf("p90 = %v, want 0.46", p90)
	}
	if dists[0] != 0.3 {
		t.Error("input slice order must be preserved")
	}
}

func TestSummarizeDistancesEmpty(t *testing.T) {
	mean, stddev, max, p90 := SummarizeDistances(nil)
	if mean != 0 || stddev != 0 || max != 0 || p90 != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestSummarizeDistancesSingle(t *testing.T) {
	mean, stddev, max, p90 := SummarizeDistances([]float64{0.7})
	if mean != 0.7 || max != 0.7 || p90 != 0.7 {
		t.Errorf("mean=%v max=%v p90=%v, want 0.7", mean, max, p90)
	}
	if stddev != 0 {
		t.Errorf("stddev = %v, want 0 for single sample", stddev)
	}
}
