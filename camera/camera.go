// Package camera provides an orbit camera for viewing the particle cloud.
package camera

import "math"

// Orbit tracks a camera circling a fixed look-at target. Position is
// derived from yaw, pitch and distance; the renderer converts it to
// its own camera type each frame.
type Orbit struct {
	// Target is the look-at point in world coordinates
	TargetX, TargetY, TargetZ float32

	// Yaw is the horizontal angle in radians; Pitch the elevation
	Yaw, Pitch float32

	// Distance from the target
	Distance float32

	// AutoSpin is the idle rotation speed in radians per second
	AutoSpin float32

	// Pitch and distance constraints
	MinPitch, MaxPitch       float32
	MinDistance, MaxDistance float32

	initialDistance float32
}

// New creates an orbit camera at the given distance, looking at the origin.
func New(distance float32) *Orbit {
	return &Orbit{
		Pitch:           0.35,
		Distance:        distance,
		AutoSpin:        0.15,
		MinPitch:        -1.3,
		MaxPitch:        1.3,
		MinDistance:     distance * 0.3,
		MaxDistance:     distance * 3.0,
		initialDistance: distance,
	}
}

// Update advances the idle auto-spin by dt seconds.
func (o *Orbit) Update(dt float32) {
	o.Rotate(o.AutoSpin*dt, 0)
}

// Rotate adjusts yaw and pitch, clamping pitch away from the poles.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw = normalizeAngle(o.Yaw + dYaw)
	o.Pitch = clamp(o.Pitch+dPitch, o.MinPitch, o.MaxPitch)
}

// Dolly scales the distance by the given factor, clamped to the
// configured range. Factors below 1 move closer.
func (o *Orbit) Dolly(factor float32) {
	o.Distance = clamp(o.Distance*factor, o.MinDistance, o.MaxDistance)
}

// Reset returns the camera to its initial orbit.
func (o *Orbit) Reset() {
	o.Yaw = 0
	o.Pitch = 0.35
	o.Distance = o.initialDistance
}

// Position returns the camera's world position for the current orbit.
func (o *Orbit) Position() (x, y, z float32) {
	cy := float32(math.Cos(float64(o.Pitch)))
	x = o.TargetX + o.Distance*cy*float32(math.Sin(float64(o.Yaw)))
	y = o.TargetY + o.Distance*float32(math.Sin(float64(o.Pitch)))
	z = o.TargetZ + o.Distance*cy*float32(math.Cos(float64(o.Yaw)))
	return x, y, z
}

// normalizeAngle wraps angle to [-pi, pi] with single-step correction.
// Safe when angle changes are bounded (yaw += small_delta per tick).
func normalizeAngle(a float32) float32 {
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
