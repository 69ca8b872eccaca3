// Package renderer draws the scene buffers with raylib. It is a pure
// consumer: it reads positions and colors once per frame and never
// writes them.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/wuuu-9/silver3/camera"
	"github.com/wuuu-9/silver3/engine"
	"github.com/wuuu-9/silver3/shape"
	"github.com/wuuu-9/silver3/ui"
)

var (
	backgroundColor = rl.Color{R: 8, G: 10, B: 22, A: 255}
	dustColor       = rl.Color{R: 150, G: 160, B: 190, A: 120}
	snowColor       = rl.Color{R: 235, G: 240, B: 255, A: 220}
	starColor       = rl.Color{R: 255, G: 250, B: 230, A: 255}
)

// SceneRenderer owns the orbit camera and the HUD overlay.
type SceneRenderer struct {
	orbit *camera.Orbit
	hud   *ui.HUD

	// Cached raylib colors, converted once from the particle set
	colors []rl.Color
	accent []bool
}

// New creates a renderer with the camera at the given distance.
func New(distance float32) *SceneRenderer {
	return &SceneRenderer{
		orbit: camera.New(distance),
		hud:   ui.NewHUD(),
	}
}

// HandleInput processes camera controls.
func (r *SceneRenderer) HandleInput(dt float32) {
	const rotSpeed = 1.2

	if rl.IsKeyDown(rl.KeyRight) {
		r.orbit.Rotate(rotSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		r.orbit.Rotate(-rotSpeed*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		r.orbit.Rotate(0, rotSpeed*dt)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		r.orbit.Rotate(0, -rotSpeed*dt)
	}

	// Dolly with mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		r.orbit.Dolly(1.0 - wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		r.orbit.Dolly(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		r.orbit.Dolly(1.25)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		r.orbit.Reset()
	}

	r.orbit.Update(dt)
}

// Draw renders one frame from the scene buffers.
func (r *SceneRenderer) Draw(s *engine.Scene) {
	r.ensureColors(s.Colors())

	cx, cy, cz := r.orbit.Position()
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: cx, Y: cy, Z: cz},
		Target:     rl.Vector3{X: r.orbit.TargetX, Y: r.orbit.TargetY, Z: r.orbit.TargetZ},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(cam)
	r.drawField(s.Stars().Pos, starColor)
	r.drawField(s.Dust().Pos, dustColor)
	r.drawMorph(s)
	r.drawField(s.Snow().Pos, snowColor)
	rl.EndMode3D()

	r.hud.Draw(ui.HUDData{
		Title:        "Silver",
		State:        s.State().String(),
		Locked:       s.Locked(),
		LastFeedback: s.LastFeedback().String(),
		Twinkle:      s.Twinkle(),
		Particles:    len(s.Positions()),
		Tick:         s.Tick(),
		FPS:          rl.GetFPS(),
		Paused:       s.Paused(),
		ScreenHeight: int32(rl.GetScreenHeight()),
	})

	rl.EndDrawing()
}

// drawMorph draws the morph cloud. Accent particles glow with the
// twinkle level; primary particles keep their assigned color.
func (r *SceneRenderer) drawMorph(s *engine.Scene) {
	positions := s.Positions()
	twinkle := s.Twinkle()

	for i, p := range positions {
		c := r.colors[i]
		if r.accent[i] {
			// Dim accent particles down to embers when the light is off
			c = rl.Fade(c, 0.25+0.75*twinkle)
		}
		rl.DrawPoint3D(rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, c)
	}
}

// drawField draws an ambient field with a flat color.
func (r *SceneRenderer) drawField(positions []shape.Vec3, c rl.Color) {
	for _, p := range positions {
		rl.DrawPoint3D(rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, c)
	}
}

// ensureColors converts the particle colors to raylib colors once.
func (r *SceneRenderer) ensureColors(colors []shape.Color) {
	if len(r.colors) == len(colors) {
		return
	}
	r.colors = make([]rl.Color, len(colors))
	r.accent = make([]bool, len(colors))
	for i, c := range colors {
		r.colors[i] = rl.Color{
			R: uint8(c.R * 255),
			G: uint8(c.G * 255),
			B: uint8(c.B * 255),
			A: 255,
		}
		r.accent[i] = shape.IsAccent(c)
	}
}
