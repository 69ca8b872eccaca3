// Package engine owns the mutable animation state: the morph buffer
// pulled toward the active target shape each tick, the ambient fields,
// and the twinkle light level. All mutation happens inside Step,
// driven by the render loop (or a headless loop).
package engine

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/wuuu-9/silver3/ambient"
	"github.com/wuuu-9/silver3/config"
	"github.com/wuuu-9/silver3/gesture"
	"github.com/wuuu-9/silver3/shape"
	"github.com/wuuu-9/silver3/telemetry"
)

// Options holds scene construction options.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
}

// Scene holds the complete animation state. It is the only writer of
// the morph buffer; the renderer reads the exposed slices once per
// frame and never mutates them.
type Scene struct {
	cfg *config.Config
	rng *rand.Rand

	// Immutable targets, generated once
	set *shape.ParticleSet

	// The morph buffer; continues from wherever it is when the target
	// switches, which is what produces the visible morph
	current []shape.Vec3

	machine *gesture.Machine

	dust  *ambient.DriftField
	stars *ambient.DriftField
	snow  *ambient.SnowField

	// Twinkle light level, smoothed toward the state-gated waveform
	twinkle float64
	elapsed float64

	tick           int64
	paused         bool
	stepsPerUpdate int
	lastFeedback   gesture.Feedback

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool
	distBuf   []float64
}

// NewScene creates a scene from the global config and the given options.
func NewScene(opts Options) (*Scene, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	params := shape.Params{
		Revolutions:    cfg.Shape.Revolutions,
		MaxRadius:      cfg.Shape.MaxRadius,
		Span:           cfg.Shape.Span,
		Jitter:         cfg.Shape.Jitter,
		AccentChance:   cfg.Shape.AccentChance,
		ShellRadiusMin: cfg.Shape.ShellRadiusMin,
		ShellRadiusMax: cfg.Shape.ShellRadiusMax,
	}
	set := shape.Generate(cfg.Shape.Count, params, rng)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:            cfg,
		rng:            rng,
		set:            set,
		current:        make([]shape.Vec3, set.N),
		machine:        gesture.NewMachine(gesture.StateFormed, time.Duration(cfg.Gesture.LockMillis)*time.Millisecond),
		dust:           ambient.NewDust(cfg.Dust, seed, rng),
		stars:          ambient.NewStars(cfg.Stars, rng),
		snow:           ambient.NewSnow(cfg.Snow, rng),
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		output:         output,
		logStats:       opts.LogStats,
		distBuf:        make([]float64, set.N),
	}

	// The buffer starts on the target matching the initial state
	copy(s.current, set.Formed)

	slog.Info("scene created",
		"particles", set.N,
		"seed", seed,
		"dust", cfg.Dust.Count,
		"stars", cfg.Stars.Count,
		"snow", cfg.Snow.Count,
	)
	return s, nil
}

// Step advances the whole scene by dt seconds.
func (s *Scene) Step(dt float64) {
	s.perf.StartTick()
	s.elapsed += dt

	s.perf.StartPhase(telemetry.PhaseMorph)
	s.stepMorph(dt)

	s.perf.StartPhase(telemetry.PhaseAmbient)
	s.dust.Step(dt)
	s.stars.Step(dt)
	s.snow.Step(dt)

	s.perf.StartPhase(telemetry.PhaseTwinkle)
	s.stepTwinkle(dt)

	s.perf.StartPhase(telemetry.PhaseStats)
	s.tick++
	s.emitStats()

	s.perf.EndTick()
}

// stepMorph pulls every coordinate toward the active target, then adds
// a small uniform shimmer. The pull fraction is derived from dt so
// convergence speed does not depend on frame rate; because the pull
// dominates the shimmer in expectation, the buffer stays bounded.
func (s *Scene) stepMorph(dt float64) {
	target := s.target()
	alpha := float32(1 - math.Exp(-s.cfg.Morph.Stiffness*dt))
	j := s.cfg.Morph.Jitter

	for i := range s.current {
		c := &s.current[i]
		t := target[i]
		c.X += (t.X-c.X)*alpha + s.jitter(j)
		c.Y += (t.Y-c.Y)*alpha + s.jitter(j)
		c.Z += (t.Z-c.Z)*alpha + s.jitter(j)
	}
}

// stepTwinkle smooths the light level toward the state-gated waveform:
// non-zero only while formed, modulated by two summed sine frequencies
// so the shimmer never settles into a single beat.
func (s *Scene) stepTwinkle(dt float64) {
	target := 0.0
	if s.machine.State() == gesture.StateFormed {
		wa := math.Sin(2 * math.Pi * s.cfg.Twinkle.FreqA * s.elapsed)
		wb := math.Sin(2 * math.Pi * s.cfg.Twinkle.FreqB * s.elapsed)
		wave := 0.6 + 0.2*(wa+wb)
		target = s.cfg.Twinkle.Base * wave
	}

	alpha := 1 - math.Exp(-s.cfg.Twinkle.Stiffness*dt)
	s.twinkle += (target - s.twinkle) * alpha
}

// Gesture applies a gesture event immediately and returns the decided
// feedback level. Safe to call from outside the tick loop.
func (s *Scene) Gesture(ev gesture.Event) gesture.Feedback {
	fb, dropped := s.machine.Transition(ev)

	switch {
	case dropped:
		s.collector.RecordDropped()
	case fb == gesture.FeedbackMedium || fb == gesture.FeedbackHeavy:
		s.collector.RecordTransition()
	}
	if fb != gesture.FeedbackNone {
		s.lastFeedback = fb
		s.collector.RecordFeedback(fb.String())
	}
	return fb
}

// emitStats closes a telemetry window when due.
func (s *Scene) emitStats() {
	if !s.collector.ShouldEmit(s.tick) {
		return
	}

	target := s.target()
	for i := range s.current {
		dx := float64(s.current[i].X - target[i].X)
		dy := float64(s.current[i].Y - target[i].Y)
		dz := float64(s.current[i].Z - target[i].Z)
		s.distBuf[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	mean, stddev, maxDist, p90 := telemetry.SummarizeDistances(s.distBuf)
	s.collector.RecordSnowRecycled(s.snow.DrainRecycled())

	stats := s.collector.Emit(s.tick, telemetry.WindowStats{
		State:      s.machine.State().String(),
		Locked:     s.machine.Locked(),
		MeanDist:   mean,
		DistStdDev: stddev,
		MaxDist:    maxDist,
		DistP90:    p90,
		TwinkleLvl: s.twinkle,
	})

	if s.logStats {
		stats.Log()
		s.perf.Stats().Log(s.tick)
	}
	if err := s.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := s.output.WritePerf(s.perf.Stats(), s.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// target returns the active target buffer for the current state.
func (s *Scene) target() []shape.Vec3 {
	if s.machine.State() == gesture.StateScattered {
		return s.set.Scattered
	}
	return s.set.Formed
}

// jitter returns a sample from U(-amp, amp) as float32.
func (s *Scene) jitter(amp float64) float32 {
	return float32((s.rng.Float64()*2 - 1) * amp)
}

// UpdateHeadless runs the configured number of fixed-dt steps without
// any input handling. Used by headless runs and tests.
func (s *Scene) UpdateHeadless() {
	dt := s.cfg.Derived.DT
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step(dt)
	}
}

// Positions returns the morph buffer. Read-only for callers.
func (s *Scene) Positions() []shape.Vec3 { return s.current }

// Colors returns the per-particle colors assigned at generation.
func (s *Scene) Colors() []shape.Color { return s.set.Colors }

// Dust returns the dust field.
func (s *Scene) Dust() *ambient.DriftField { return s.dust }

// Stars returns the star field.
func (s *Scene) Stars() *ambient.DriftField { return s.stars }

// Snow returns the snow field.
func (s *Scene) Snow() *ambient.SnowField { return s.snow }

// Twinkle returns the smoothed light level.
func (s *Scene) Twinkle() float32 { return float32(s.twinkle) }

// State returns the authoritative visualization state.
func (s *Scene) State() gesture.State { return s.machine.State() }

// Locked reports whether the transition lock is active.
func (s *Scene) Locked() bool { return s.machine.Locked() }

// LastFeedback returns the most recent non-none feedback level.
func (s *Scene) LastFeedback() gesture.Feedback { return s.lastFeedback }

// Tick returns the current tick count.
func (s *Scene) Tick() int64 { return s.tick }

// Paused reports whether stepping is suspended.
func (s *Scene) Paused() bool { return s.paused }

// Close stops the lock timer and flushes telemetry output.
func (s *Scene) Close() error {
	s.machine.Stop()
	return s.output.Close()
}
