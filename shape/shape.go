// Package shape generates the two target point distributions the
// morph animates between: a formed spiral cone and a scattered
// spherical shell.
package shape

import (
	"math"
	"math/rand"
)

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float32
}

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Primary palette and accent color for particle tinting.
// A particle's color class is rolled once at generation and never changes.
var (
	primaryPalette = []Color{
		{R: 0.10, G: 0.55, B: 0.24},
		{R: 0.06, G: 0.44, B: 0.19},
		{R: 0.16, G: 0.66, B: 0.30},
	}
	accentColor = Color{R: 1.0, G: 0.84, B: 0.35}
)

// Params holds the generator parameters for both distributions.
type Params struct {
	Revolutions    float64 // Full turns of the spiral from base to tip
	MaxRadius      float64 // Spiral radius at the base
	Span           float64 // Vertical extent, centered on 0
	Jitter         float64 // Uniform per-axis offset amplitude
	AccentChance   float64 // Probability of the accent color class
	ShellRadiusMin float64 // Inner radius of the scattered shell
	ShellRadiusMax float64 // Outer radius of the scattered shell
}

// DefaultParams returns the standard generator parameters.
func DefaultParams() Params {
	return Params{
		Revolutions:    20,
		MaxRadius:      2.5,
		Span:           7.0,
		Jitter:         0.15,
		AccentChance:   0.2,
		ShellRadiusMin: 4.0,
		ShellRadiusMax: 7.0,
	}
}

// ParticleSet holds the immutable morph targets and per-particle colors.
// Generated once; shared read-only with the integrator.
type ParticleSet struct {
	N         int
	Formed    []Vec3
	Scattered []Vec3
	Colors    []Color
}

// Generate builds a complete particle set of n points.
// n = 0 yields empty (non-nil) buffers.
func Generate(n int, p Params, rng *rand.Rand) *ParticleSet {
	return &ParticleSet{
		N:         n,
		Formed:    GenerateFormed(n, p, rng),
		Scattered: GenerateScattered(n, p, rng),
		Colors:    GenerateColors(n, p, rng),
	}
}

// GenerateFormed produces the spiral cone: index 0 sits at the wide
// base, the last index at the narrow tip, with small uniform jitter on
// every axis so the spiral reads as a volume rather than a wire.
func GenerateFormed(n int, p Params, rng *rand.Rand) []Vec3 {
	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		ratio := float64(i) / float64(n)
		angle := ratio * p.Revolutions * 2 * math.Pi
		radius := (1 - ratio) * p.MaxRadius
		height := ratio*p.Span - p.Span/2

		pts[i] = Vec3{
			X: float32(math.Cos(angle)*radius + uniform(rng, p.Jitter)),
			Y: float32(height + uniform(rng, p.Jitter)),
			Z: float32(math.Sin(angle)*radius + uniform(rng, p.Jitter)),
		}
	}
	return pts
}

// GenerateScattered produces a uniform spherical shell via
// inverse-transform sampling. The polar angle comes from acos of a
// uniform variate; sampling it uniformly instead would cluster points
// at the poles.
func GenerateScattered(n int, p Params, rng *rand.Rand) []Vec3 {
	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(rng.Float64()*2 - 1)
		r := p.ShellRadiusMin + rng.Float64()*(p.ShellRadiusMax-p.ShellRadiusMin)

		sinPhi := math.Sin(phi)
		pts[i] = Vec3{
			X: float32(r * sinPhi * math.Cos(theta)),
			Y: float32(r * math.Cos(phi)),
			Z: float32(r * sinPhi * math.Sin(theta)),
		}
	}
	return pts
}

// GenerateColors assigns each particle a color class: accent with
// probability AccentChance, otherwise a random pick from the primary
// palette. Rolled once here, never per frame.
func GenerateColors(n int, p Params, rng *rand.Rand) []Color {
	colors := make([]Color, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < p.AccentChance {
			colors[i] = accentColor
		} else {
			colors[i] = primaryPalette[rng.Intn(len(primaryPalette))]
		}
	}
	return colors
}

// IsAccent reports whether a color is the accent class.
func IsAccent(c Color) bool {
	return c == accentColor
}

// uniform returns a sample from U(-amp, amp).
func uniform(rng *rand.Rand, amp float64) float64 {
	return (rng.Float64()*2 - 1) * amp
}
