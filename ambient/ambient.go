// Package ambient generates and animates the background particle
// fields: drifting dust, a surrounding star shell, and falling snow.
// Their motion is independent of the gesture-driven morph state.
package ambient

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/wuuu-9/silver3/config"
	"github.com/wuuu-9/silver3/shape"
)

// DriftField is a set of particles that drift with a fixed velocity
// plus a small harmonic sway, wrapping inside a cubic volume. Used for
// both dust and stars; particles never recycle.
type DriftField struct {
	Pos   []shape.Vec3
	Vel   []shape.Vec3
	Phase []float64

	halfExtent float64
	swayAmp    float64
	swayFreq   float64
	elapsed    float64
}

// NewDust creates the dust field. Velocities are sampled from a smooth
// noise field at each mote's spawn position, so neighboring motes
// drift coherently instead of sparkling with independent directions.
func NewDust(cfg config.DustConfig, seed int64, rng *rand.Rand) *DriftField {
	noise := opensimplex.New(seed)
	f := newDriftField(cfg.Count, cfg.HalfExtent, cfg.SwayAmp, cfg.SwayFreq)

	for i := 0; i < cfg.Count; i++ {
		f.Pos[i] = shape.Vec3{
			X: float32(uniform(rng, cfg.HalfExtent)),
			Y: float32(uniform(rng, cfg.HalfExtent)),
			Z: float32(uniform(rng, cfg.HalfExtent)),
		}
		px := float64(f.Pos[i].X) * cfg.NoiseScale
		py := float64(f.Pos[i].Y) * cfg.NoiseScale
		pz := float64(f.Pos[i].Z) * cfg.NoiseScale
		f.Vel[i] = shape.Vec3{
			X: float32(noise.Eval3(px, py, pz) * cfg.DriftSpeed),
			Y: float32(noise.Eval3(px+31.7, py, pz) * cfg.DriftSpeed),
			Z: float32(noise.Eval3(px, py+47.3, pz) * cfg.DriftSpeed),
		}
		f.Phase[i] = float64(i) * 0.37
	}
	return f
}

// NewStars creates the star shell: points distributed on a thick
// spherical shell well outside the morph shapes, with a faint drift.
func NewStars(cfg config.StarsConfig, rng *rand.Rand) *DriftField {
	f := newDriftField(cfg.Count, cfg.RadiusMax*1.1, cfg.SwayAmp, cfg.SwayFreq)

	params := shape.Params{ShellRadiusMin: cfg.RadiusMin, ShellRadiusMax: cfg.RadiusMax}
	copy(f.Pos, shape.GenerateScattered(cfg.Count, params, rng))

	for i := 0; i < cfg.Count; i++ {
		f.Vel[i] = shape.Vec3{
			X: float32(uniform(rng, cfg.SwayAmp)),
			Y: float32(uniform(rng, cfg.SwayAmp)),
			Z: float32(uniform(rng, cfg.SwayAmp)),
		}
		f.Phase[i] = float64(i) * 0.61
	}
	return f
}

func newDriftField(n int, halfExtent, swayAmp, swayFreq float64) *DriftField {
	return &DriftField{
		Pos:        make([]shape.Vec3, n),
		Vel:        make([]shape.Vec3, n),
		Phase:      make([]float64, n),
		halfExtent: halfExtent,
		swayAmp:    swayAmp,
		swayFreq:   swayFreq,
	}
}

// Step advances the field by dt seconds. The harmonic terms are
// phase-shifted per particle so the field never moves in lockstep, and
// positions wrap at the bounding volume so slow drift can run forever
// without escaping.
func (f *DriftField) Step(dt float64) {
	f.elapsed += dt
	t := f.elapsed * f.swayFreq

	for i := range f.Pos {
		p := &f.Pos[i]
		ph := f.Phase[i]

		sx := f.swayAmp * math.Sin(t+ph)
		sy := f.swayAmp * math.Cos(t*1.3+ph)
		sz := f.swayAmp * math.Sin(t*0.8+ph+1.57)

		p.X = wrap(float64(p.X)+(float64(f.Vel[i].X)+sx)*dt, f.halfExtent)
		p.Y = wrap(float64(p.Y)+(float64(f.Vel[i].Y)+sy)*dt, f.halfExtent)
		p.Z = wrap(float64(p.Z)+(float64(f.Vel[i].Z)+sz)*dt, f.halfExtent)
	}
}

// SnowField is a set of falling particles that recycle to the spawn
// height when they cross the ground plane, keeping their horizontal
// position.
type SnowField struct {
	Pos      []shape.Vec3
	FallRate []float64
	Phase    []float64

	spawnHeight float64
	groundLevel float64
	swayAmp     float64
	swayFreq    float64
	elapsed     float64

	// Recycled counts ground crossings since the last telemetry drain.
	Recycled int
}

// NewSnow creates the snow field with randomized per-flake fall rates
// and initial heights spread across the full drop so the sky starts
// populated.
func NewSnow(cfg config.SnowConfig, rng *rand.Rand) *SnowField {
	f := &SnowField{
		Pos:         make([]shape.Vec3, cfg.Count),
		FallRate:    make([]float64, cfg.Count),
		Phase:       make([]float64, cfg.Count),
		spawnHeight: cfg.SpawnHeight,
		groundLevel: cfg.GroundLevel,
		swayAmp:     cfg.SwayAmp,
		swayFreq:    cfg.SwayFreq,
	}
	for i := 0; i < cfg.Count; i++ {
		f.Pos[i] = shape.Vec3{
			X: float32(uniform(rng, cfg.HalfExtent)),
			Y: float32(cfg.GroundLevel + rng.Float64()*(cfg.SpawnHeight-cfg.GroundLevel)),
			Z: float32(uniform(rng, cfg.HalfExtent)),
		}
		f.FallRate[i] = cfg.FallRateMin + rng.Float64()*(cfg.FallRateMax-cfg.FallRateMin)
		f.Phase[i] = float64(i) * 0.53
	}
	return f
}

// Step advances the snow by dt seconds.
func (f *SnowField) Step(dt float64) {
	f.elapsed += dt
	t := f.elapsed * f.swayFreq

	for i := range f.Pos {
		p := &f.Pos[i]
		ph := f.Phase[i]

		p.Y -= float32(f.FallRate[i] * dt)
		p.X += float32(f.swayAmp * math.Sin(t+ph) * dt)
		p.Z += float32(f.swayAmp * math.Cos(t*1.1+ph) * dt)

		// Recycle above the spawn plane; x/z carry over so the flake
		// reappears where it fell.
		if float64(p.Y) < f.groundLevel {
			p.Y = float32(f.spawnHeight)
			f.Recycled++
		}
	}
}

// DrainRecycled returns and resets the recycle counter.
func (f *SnowField) DrainRecycled() int {
	n := f.Recycled
	f.Recycled = 0
	return n
}

// wrap folds v into [-half, half).
func wrap(v, half float64) float32 {
	span := 2 * half
	v = math.Mod(v+half, span)
	if v < 0 {
		v += span
	}
	return float32(v - half)
}

// uniform returns a sample from U(-amp, amp).
func uniform(rng *rand.Rand, amp float64) float64 {
	return (rng.Float64()*2 - 1) * amp
}
