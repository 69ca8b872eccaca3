package engine

import (
	"math"
	"testing"
	"time"

	"github.com/wuuu-9/silver3/config"
	"github.com/wuuu-9/silver3/gesture"
	"github.com/wuuu-9/silver3/shape"
	"github.com/wuuu-9/silver3/telemetry"
)

const testDT = 1.0 / 60.0

// newTestScene builds a scene on embedded defaults with a smaller
// particle count and no gesture lock, so tests can switch states at
// will.
func newTestScene(t *testing.T, particles int) *Scene {
	t.Helper()
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Shape.Count = particles
	cfg.Dust.Count = 20
	cfg.Stars.Count = 20
	cfg.Snow.Count = 20
	cfg.Gesture.LockMillis = 0

	s, err := NewScene(Options{Seed: 42})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// maxAbsCoord returns the largest absolute coordinate in the buffer.
func maxAbsCoord(pts []shape.Vec3) float64 {
	var m float64
	for _, p := range pts {
		for _, v := range []float32{p.X, p.Y, p.Z} {
			if a := math.Abs(float64(v)); a > m {
				m = a
			}
		}
	}
	return m
}

func (s *Scene) meanDistTo(target []shape.Vec3) float64 {
	var sum float64
	for i, c := range s.current {
		dx := float64(c.X - target[i].X)
		dy := float64(c.Y - target[i].Y)
		dz := float64(c.Z - target[i].Z)
		sum += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return sum / float64(len(s.current))
}

func TestBoundedness(t *testing.T) {
	s := newTestScene(t, 500)

	// With a fixed target, 10k ticks of pull+shimmer must never push a
	// coordinate past the target range plus a small margin: the pull
	// dominates, so shimmer cannot accumulate.
	limit := maxAbsCoord(s.set.Formed) + 0.5

	for i := 0; i < 10000; i++ {
		s.stepMorph(testDT)
	}

	if got := maxAbsCoord(s.current); got > limit {
		t.Errorf("buffer escaped bounds: max coord %v, limit %v", got, limit)
	}
	for i, p := range s.current {
		for _, v := range []float32{p.X, p.Y, p.Z} {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("current[%d] has non-finite coordinate %+v", i, p)
			}
		}
	}
}

func TestConvergenceAfterSwitch(t *testing.T) {
	s := newTestScene(t, 500)

	if fb := s.Gesture(gesture.EventFistClench); fb != gesture.FeedbackHeavy {
		t.Fatalf("fist clench feedback = %v, want heavy", fb)
	}
	if s.State() != gesture.StateScattered {
		t.Fatalf("state = %v, want scattered", s.State())
	}

	// alpha ~= 0.049 per tick at 60fps, so 400 ticks shrink the
	// initial gap by e^-20; what remains is the shimmer floor.
	for i := 0; i < 400; i++ {
		s.Step(testDT)
	}

	if dist := s.meanDistTo(s.set.Scattered); dist > 0.1 {
		t.Errorf("mean distance to scattered target = %v after 400 ticks, want < 0.1", dist)
	}
}

func TestSwitchDoesNotSnap(t *testing.T) {
	s := newTestScene(t, 500)

	// Settle on formed first
	for i := 0; i < 100; i++ {
		s.Step(testDT)
	}

	s.Gesture(gesture.EventFistClench)
	before := s.meanDistTo(s.set.Scattered)
	s.Step(testDT)
	after := s.meanDistTo(s.set.Scattered)

	if after >= before {
		t.Errorf("buffer not moving toward new target: %v -> %v", before, after)
	}
	// One tick must close only a fraction of the gap - a jump to the
	// target would mean the buffer was reset instead of interpolated.
	if after < before*0.8 {
		t.Errorf("buffer snapped: distance fell %v -> %v in one tick", before, after)
	}
}

func TestConvergenceRateIndependentOfTickRate(t *testing.T) {
	a := newTestScene(t, 200)
	b := newTestScene(t, 200)
	a.Gesture(gesture.EventFistClench)
	b.Gesture(gesture.EventFistClench)

	// Same wall-clock time at 60Hz and 30Hz must land at the same
	// residual distance (up to the shimmer floor).
	for i := 0; i < 120; i++ {
		a.Step(1.0 / 60.0)
	}
	for i := 0; i < 60; i++ {
		b.Step(1.0 / 30.0)
	}

	da := a.meanDistTo(a.set.Scattered)
	db := b.meanDistTo(b.set.Scattered)
	if math.Abs(da-db) > 0.15 {
		t.Errorf("60Hz residual %v vs 30Hz residual %v, want matching convergence", da, db)
	}
}

func TestTwinkleGatedByState(t *testing.T) {
	s := newTestScene(t, 100)

	for i := 0; i < 300; i++ {
		s.Step(testDT)
	}
	if s.Twinkle() < 0.1 {
		t.Errorf("twinkle = %v while formed, want > 0.1", s.Twinkle())
	}

	s.Gesture(gesture.EventFistClench)
	for i := 0; i < 300; i++ {
		s.Step(testDT)
	}
	if s.Twinkle() > 0.02 {
		t.Errorf("twinkle = %v while scattered, want ~0", s.Twinkle())
	}
}

func TestZeroParticles(t *testing.T) {
	s := newTestScene(t, 0)

	// Degenerate scene still ticks without panicking.
	for i := 0; i < 10; i++ {
		s.Step(testDT)
	}
	if len(s.Positions()) != 0 || len(s.Colors()) != 0 {
		t.Error("zero-particle scene should expose empty buffers")
	}
}

func TestLockedGestureDropped(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Shape.Count = 50
	cfg.Dust.Count = 10
	cfg.Stars.Count = 10
	cfg.Snow.Count = 10
	cfg.Gesture.LockMillis = 60000 // effectively permanent for the test

	s, err := NewScene(Options{Seed: 7})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	defer s.Close()

	s.Gesture(gesture.EventFistClench)
	if fb := s.Gesture(gesture.EventOpenPalm); fb != gesture.FeedbackNone {
		t.Errorf("locked gesture feedback = %v, want none", fb)
	}
	if s.State() != gesture.StateScattered {
		t.Errorf("state = %v, want scattered", s.State())
	}
	if fb := s.Gesture(gesture.EventGrabbing); fb != gesture.FeedbackLight {
		t.Errorf("grabbing under lock = %v, want light", fb)
	}

	// One completed transition, one absorbed gesture; grabbing counts
	// toward neither.
	stats := s.collector.Emit(s.tick, telemetry.WindowStats{})
	if stats.Transitions != 1 {
		t.Errorf("transitions = %d, want 1", stats.Transitions)
	}
	if stats.Dropped != 1 {
		t.Errorf("dropped = %d, want 1", stats.Dropped)
	}
	if stats.LightEvents != 1 || stats.HeavyEvents != 1 {
		t.Errorf("feedback counts light=%d heavy=%d, want 1 and 1",
			stats.LightEvents, stats.HeavyEvents)
	}
}

func TestHeadlessUpdateAdvancesTicks(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Shape.Count = 50
	cfg.Dust.Count = 10
	cfg.Stars.Count = 10
	cfg.Snow.Count = 10

	s, err := NewScene(Options{Seed: 9, StepsPerUpdate: 4})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	defer s.Close()

	start := time.Now()
	s.UpdateHeadless()
	if s.Tick() != 4 {
		t.Errorf("tick = %d after one headless update with 4 steps, want 4", s.Tick())
	}
	if time.Since(start) > time.Second {
		t.Error("headless update unexpectedly slow")
	}
}
