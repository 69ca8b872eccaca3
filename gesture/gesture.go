// Package gesture holds the two-state visualization machine driven by
// discrete hand gestures, with a timed debounce lock between mode
// changes.
package gesture

import (
	"log/slog"
	"sync"
	"time"
)

// Event is a discrete gesture arriving from an input adapter.
type Event uint8

const (
	EventNone Event = iota
	EventFistClench
	EventOpenPalm
	EventGrabbing
)

// String returns a readable event name.
func (e Event) String() string {
	switch e {
	case EventFistClench:
		return "fist_clench"
	case EventOpenPalm:
		return "open_palm"
	case EventGrabbing:
		return "grabbing"
	default:
		return "none"
	}
}

// State is the authoritative visualization mode.
type State uint8

const (
	StateFormed State = iota
	StateScattered
)

// String returns a readable state name.
func (s State) String() string {
	if s == StateScattered {
		return "scattered"
	}
	return "formed"
}

// Feedback is the haptic intensity decided for a processed event.
// Invoking an actual device is the caller's responsibility.
type Feedback uint8

const (
	FeedbackNone Feedback = iota
	FeedbackLight
	FeedbackMedium
	FeedbackHeavy
)

// String returns a readable feedback level name.
func (f Feedback) String() string {
	switch f {
	case FeedbackLight:
		return "light"
	case FeedbackMedium:
		return "medium"
	case FeedbackHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// Machine is the gesture-driven state machine. Events may arrive from
// any goroutine; state reads from the tick loop are cheap.
//
// While the transition lock is armed, mode-changing events are
// absorbed without effect. Grabbing is informational rather than a
// mode change, so it bypasses the lock and always reports light
// feedback.
type Machine struct {
	mu        sync.Mutex
	state     State
	locked    bool
	lockUntil time.Time
	lockDur   time.Duration
	timer     *time.Timer
	sink      func(Feedback)

	// now is the clock source; swapped out in tests.
	now func() time.Time
}

// NewMachine creates a machine in the given initial state with the
// given lock duration.
func NewMachine(initial State, lockDur time.Duration) *Machine {
	return &Machine{
		state:   initial,
		lockDur: lockDur,
		now:     time.Now,
	}
}

// SetFeedbackSink registers a callback invoked with every non-none
// feedback level. The callback runs on the goroutine delivering the
// event.
func (m *Machine) SetFeedbackSink(fn func(Feedback)) {
	m.mu.Lock()
	m.sink = fn
	m.mu.Unlock()
}

// State returns the current visualization state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Locked reports whether the transition lock is active.
func (m *Machine) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockedLocked()
}

// lockedLocked checks the lock under m.mu. The expiry timestamp guards
// against a delayed timer callback; the wall-clock timer keeps the
// lock clearing even when no ticks are running.
func (m *Machine) lockedLocked() bool {
	return m.locked && m.now().Before(m.lockUntil)
}

// Transition applies a gesture event and returns the feedback level to
// convey, plus whether the lock absorbed the event. Unrecognized events
// and absorbed events return FeedbackNone. State changes take effect
// immediately; their visual effect emerges over subsequent integrator
// ticks.
func (m *Machine) Transition(ev Event) (Feedback, bool) {
	m.mu.Lock()

	// Grabbing is feedback-only and bypasses the lock.
	if ev == EventGrabbing {
		sink := m.sink
		m.mu.Unlock()
		m.emit(sink, FeedbackLight)
		return FeedbackLight, false
	}

	if m.lockedLocked() {
		m.mu.Unlock()
		return FeedbackNone, ev == EventFistClench || ev == EventOpenPalm
	}

	var fb Feedback
	switch ev {
	case EventFistClench:
		if m.state != StateScattered {
			m.state = StateScattered
			fb = FeedbackHeavy
			m.armLockLocked()
		}
	case EventOpenPalm:
		if m.state != StateFormed {
			m.state = StateFormed
			fb = FeedbackMedium
			m.armLockLocked()
		}
	}

	state := m.state
	sink := m.sink
	m.mu.Unlock()

	if fb != FeedbackNone {
		slog.Debug("gesture transition", "event", ev.String(), "state", state.String(), "feedback", fb.String())
		m.emit(sink, fb)
	}
	return fb, false
}

// armLockLocked arms the transition lock under m.mu and schedules its
// clearing on the wall clock, independent of the tick loop.
func (m *Machine) armLockLocked() {
	if m.lockDur <= 0 {
		return
	}
	m.locked = true
	m.lockUntil = m.now().Add(m.lockDur)
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.lockDur, m.clearLock)
}

// clearLock releases the lock when the timer fires. A timer that loses
// the Stop race in armLockLocked still runs; the expiry timestamp keeps
// such a stale callback from releasing a freshly armed lock.
func (m *Machine) clearLock() {
	m.mu.Lock()
	if !m.now().Before(m.lockUntil) {
		m.locked = false
	}
	m.mu.Unlock()
}

// Stop cancels any pending lock timer.
func (m *Machine) Stop() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
}

func (m *Machine) emit(sink func(Feedback), fb Feedback) {
	if sink != nil {
		sink(fb)
	}
}
