package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/wuuu-9/silver3/gesture"
)

// Update handles input and advances the scene. Graphical mode only;
// headless runs use UpdateHeadless.
func (s *Scene) Update() {
	s.handleInput()

	if s.paused {
		return
	}

	dt := s.cfg.Derived.DT
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step(dt)
	}
}

// handleInput processes keyboard input. The three trigger keys map 1:1
// onto gesture events so the machine can be exercised without a sensor
// attached.
func (s *Scene) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}

	// Gesture trigger keys
	if rl.IsKeyPressed(rl.KeyO) {
		s.Gesture(gesture.EventOpenPalm)
	}
	if rl.IsKeyPressed(rl.KeyF) {
		s.Gesture(gesture.EventFistClench)
	}
	if rl.IsKeyPressed(rl.KeyG) {
		s.Gesture(gesture.EventGrabbing)
	}
}
