// Shape preview tool - interactive distribution tuning with sliders.
//
// Usage: go run ./cmd/shapepreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/wuuu-9/silver3/shape"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := shape.DefaultParams()
	count := 4000
	seed := int64(12345)
	showScattered := false

	set := regenerate(count, params, seed)
	needsRegen := false

	cam := rl.Camera3D{
		Position:   rl.Vector3{X: 9, Y: 5, Z: 9},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&cam, rl.CameraOrbital)

		if needsRegen {
			set = regenerate(count, params, seed)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 10, B: 22, A: 255})

		// Draw preview
		rl.BeginMode3D(cam)
		pts := set.Formed
		if showScattered {
			pts = set.Scattered
		}
		for i, p := range pts {
			c := set.Colors[i]
			rl.DrawPoint3D(rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, rl.Color{
				R: uint8(c.R * 255),
				G: uint8(c.G * 255),
				B: uint8(c.B * 255),
				A: 255,
			})
		}
		rl.EndMode3D()

		// Parameter panel
		panelX := float32(previewSize + 20)
		panelY := float32(15)

		rl.DrawText("Distribution Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		slider := func(label, fmtStr string, value float32, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newValue := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(fmtStr, newValue), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			panelY += 35
			return newValue
		}

		if v := slider("Revolutions (spiral turns)", "%.0f", float32(params.Revolutions), 1, 40); float64(v) != params.Revolutions {
			params.Revolutions = float64(v)
			needsRegen = true
		}
		if v := slider("Max radius (base width)", "%.2f", float32(params.MaxRadius), 0.5, 6); float64(v) != params.MaxRadius {
			params.MaxRadius = float64(v)
			needsRegen = true
		}
		if v := slider("Span (height)", "%.1f", float32(params.Span), 2, 14); float64(v) != params.Span {
			params.Span = float64(v)
			needsRegen = true
		}
		if v := slider("Jitter", "%.3f", float32(params.Jitter), 0, 0.5); float64(v) != params.Jitter {
			params.Jitter = float64(v)
			needsRegen = true
		}
		if v := slider("Accent chance", "%.2f", float32(params.AccentChance), 0, 1); float64(v) != params.AccentChance {
			params.AccentChance = float64(v)
			needsRegen = true
		}
		if v := slider("Shell radius min", "%.1f", float32(params.ShellRadiusMin), 2, 10); float64(v) != params.ShellRadiusMin {
			params.ShellRadiusMin = float64(v)
			needsRegen = true
		}
		if v := slider("Shell radius max", "%.1f", float32(params.ShellRadiusMax), 3, 14); float64(v) != params.ShellRadiusMax {
			params.ShellRadiusMax = float64(v)
			needsRegen = true
		}
		if v := slider("Particles", "%.0f", float32(count), 100, 16000); int(v) != count {
			count = int(v)
			needsRegen = true
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.DarkGray)
		panelY += 15

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(showScattered, "Show Formed", "Show Scattered")) {
			showScattered = !showScattered
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = shape.DefaultParams()
			count = 4000
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		yamlLines := []string{
			"shape:",
			fmt.Sprintf("  count: %d", count),
			fmt.Sprintf("  revolutions: %.0f", params.Revolutions),
			fmt.Sprintf("  max_radius: %.2f", params.MaxRadius),
			fmt.Sprintf("  span: %.1f", params.Span),
			fmt.Sprintf("  jitter: %.3f", params.Jitter),
			fmt.Sprintf("  accent_chance: %.2f", params.AccentChance),
			fmt.Sprintf("  shell_radius_min: %.1f", params.ShellRadiusMin),
			fmt.Sprintf("  shell_radius_max: %.1f", params.ShellRadiusMax),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.EndDrawing()
	}
}

func regenerate(count int, params shape.Params, seed int64) *shape.ParticleSet {
	rng := rand.New(rand.NewSource(seed))
	return shape.Generate(count, params, rng)
}

func toggleText(cond bool, onTrue, onFalse string) string {
	if cond {
		return onTrue
	}
	return onFalse
}
