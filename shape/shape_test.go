package shape

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestGenerateFormedEndpoints(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))
	pts := GenerateFormed(8000, p, rng)

	// Jitter is applied per axis, so radial tolerance is a bit wider
	tol := p.Jitter * 2.5

	first := pts[0]
	r0 := math.Hypot(float64(first.X), float64(first.Z))
	if math.Abs(r0-p.MaxRadius) > tol {
		t.Errorf("index 0 radius = %v, want ~%v", r0, p.MaxRadius)
	}
	if math.Abs(float64(first.Y)-(-p.Span/2)) > tol {
		t.Errorf("index 0 height = %v, want ~%v", first.Y, -p.Span/2)
	}

	last := pts[len(pts)-1]
	rn := math.Hypot(float64(last.X), float64(last.Z))
	if rn > tol {
		t.Errorf("index N-1 radius = %v, want ~0", rn)
	}
	if math.Abs(float64(last.Y)-p.Span/2) > tol {
		t.Errorf("index N-1 height = %v, want ~%v", last.Y, p.Span/2)
	}
}

func TestGenerateFormedHeightMonotonic(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(2))
	pts := GenerateFormed(1000, p, rng)

	// Heights climb with index; allow jitter-sized local inversions
	// by comparing samples far enough apart.
	for i := 100; i < len(pts); i += 100 {
		if pts[i].Y <= pts[i-100].Y {
			t.Errorf("height not increasing: pts[%d].Y=%v <= pts[%d].Y=%v", i, pts[i].Y, i-100, pts[i-100].Y)
		}
	}
}

func TestGenerateScatteredPolarUniformity(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(3))
	n := 20000
	pts := GenerateScattered(n, p, rng)

	// cos(phi) = y/r must be uniform in [-1, 1]. Uniform phi would pile
	// samples into the middle buckets and empty the polar ones.
	const buckets = 10
	var hist [buckets]int
	for _, pt := range pts {
		r := math.Sqrt(float64(pt.X*pt.X + pt.Y*pt.Y + pt.Z*pt.Z))
		u := float64(pt.Y) / r
		idx := int((u + 1) / 2 * buckets)
		if idx == buckets {
			idx = buckets - 1
		}
		hist[idx]++
	}

	expected := float64(n) / buckets
	for i, count := range hist {
		if math.Abs(float64(count)-expected) > expected*0.15 {
			t.Errorf("cos(phi) bucket %d has %d samples, want %v +- 15%%", i, count, expected)
		}
	}
}

func TestGenerateScatteredRadiusStats(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(4))
	pts := GenerateScattered(5000, p, rng)

	radii := make([]float64, len(pts))
	for i, pt := range pts {
		radii[i] = math.Sqrt(float64(pt.X*pt.X + pt.Y*pt.Y + pt.Z*pt.Z))
		if radii[i] < p.ShellRadiusMin-0.001 || radii[i] > p.ShellRadiusMax+0.001 {
			t.Fatalf("radius %v outside shell [%v, %v]", radii[i], p.ShellRadiusMin, p.ShellRadiusMax)
		}
	}

	mean := stat.Mean(radii, nil)
	want := (p.ShellRadiusMin + p.ShellRadiusMax) / 2
	if math.Abs(mean-want) > 0.1 {
		t.Errorf("mean radius = %v, want ~%v", mean, want)
	}
}

func TestGenerateZero(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(5))
	set := Generate(0, p, rng)

	if set.N != 0 || len(set.Formed) != 0 || len(set.Scattered) != 0 || len(set.Colors) != 0 {
		t.Errorf("n=0 should yield empty buffers, got N=%d formed=%d scattered=%d colors=%d",
			set.N, len(set.Formed), len(set.Scattered), len(set.Colors))
	}
}

func TestGenerateFinite(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(6))
	set := Generate(2000, p, rng)

	check := func(name string, pts []Vec3) {
		for i, pt := range pts {
			for _, v := range []float32{pt.X, pt.Y, pt.Z} {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("%s[%d] has non-finite coordinate %v", name, i, pt)
				}
			}
		}
	}
	check("formed", set.Formed)
	check("scattered", set.Scattered)
}

func TestGenerateColorsRatio(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	colors := GenerateColors(20000, p, rng)

	accent := 0
	for _, c := range colors {
		if IsAccent(c) {
			accent++
		}
	}

	ratio := float64(accent) / float64(len(colors))
	if math.Abs(ratio-p.AccentChance) > 0.02 {
		t.Errorf("accent ratio = %v, want ~%v", ratio, p.AccentChance)
	}
}
