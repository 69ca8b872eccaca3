package telemetry

// Collector accumulates gesture and morph events within tick windows
// and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for current window
	transitions  int
	dropped      int
	lightEvents  int
	mediumEvents int
	heavyEvents  int
	snowRecycled int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordTransition records a completed state change.
func (c *Collector) RecordTransition() {
	c.transitions++
}

// RecordDropped records a gesture absorbed by the transition lock.
func (c *Collector) RecordDropped() {
	c.dropped++
}

// RecordFeedback records an emitted feedback level by name.
func (c *Collector) RecordFeedback(level string) {
	switch level {
	case "light":
		c.lightEvents++
	case "medium":
		c.mediumEvents++
	case "heavy":
		c.heavyEvents++
	}
}

// RecordSnowRecycled adds recycled snow flake crossings.
func (c *Collector) RecordSnowRecycled(n int) {
	c.snowRecycled += n
}

// ShouldEmit reports whether the current window ends at this tick.
func (c *Collector) ShouldEmit(tick int64) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Emit closes the current window, filling the event counters into the
// partially populated stats record, and starts the next window.
func (c *Collector) Emit(tick int64, stats WindowStats) WindowStats {
	stats.WindowEndTick = tick
	stats.SimTimeSec = float64(tick) * c.dt
	stats.Transitions = c.transitions
	stats.Dropped = c.dropped
	stats.LightEvents = c.lightEvents
	stats.MediumEvents = c.mediumEvents
	stats.HeavyEvents = c.heavyEvents
	stats.SnowRecycle = c.snowRecycled

	c.windowStartTick = tick
	c.transitions = 0
	c.dropped = 0
	c.lightEvents = 0
	c.mediumEvents = 0
	c.heavyEvents = 0
	c.snowRecycled = 0

	return stats
}
