// Package ui renders the heads-up display overlay.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title        string
	State        string
	Locked       bool
	LastFeedback string
	Twinkle      float32
	Particles    int
	Tick         int64
	FPS          int32
	Paused       bool
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Scene info
	rl.DrawText(
		fmt.Sprintf("State: %s | Particles: %d | Twinkle: %.2f", data.State, data.Particles, data.Twinkle),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Feedback: %s", data.Tick, data.FPS, data.LastFeedback),
		10, 55, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	statusColor := rl.Yellow
	switch {
	case data.Paused:
		statusText = "PAUSED"
	case data.Locked:
		statusText = "LOCKED"
		statusColor = rl.Orange
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)

	// Controls help at the bottom
	rl.DrawText(
		"O: open palm (form) | F: fist clench (scatter) | G: grab | Space: pause",
		10, data.ScreenHeight-45, 14, rl.Gray,
	)
	rl.DrawText(
		"Arrows: orbit | Wheel/+/-: dolly | Home: reset camera | F11: fullscreen",
		10, data.ScreenHeight-25, 14, rl.Gray,
	)
}
