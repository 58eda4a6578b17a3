// Package input normalizes heterogeneous devices (keyboard key state,
// joystick axes and buttons) into raw control records for the flight
// session.
package input

import (
	"time"

	"github.com/Faultbox/starflight/internal/flight"
)

// Binding is a semantic flight action a key can map to.
type Binding int

const (
	PitchUp Binding = iota
	PitchDown
	RollLeft
	RollRight
	YawLeft
	YawRight
	Boost
	Slow
	Hyperspace
	Fire
	bindingCount
)

// keyRepeatWindow keeps a binding active between terminal auto-repeat
// events, since terminals deliver no key-up.
const keyRepeatWindow = 150 * time.Millisecond

// Keyboard turns held keys into full-deflection control axes.
//
// Sources with real key-up events (SDL windows) drive SetHeld. Terminal
// sources only see repeats, so they call Press and the binding stays
// active for a short window after the last event.
type Keyboard struct {
	held      [bindingCount]bool
	lastPress [bindingCount]time.Time
	now       func() time.Time
}

// NewKeyboard creates a keyboard sampler.
func NewKeyboard() *Keyboard {
	return &Keyboard{now: time.Now}
}

// SetHeld records a key-down/key-up transition for a binding.
func (k *Keyboard) SetHeld(b Binding, down bool) {
	if b < 0 || b >= bindingCount {
		return
	}
	k.held[b] = down
}

// Press records a momentary key event for a binding (terminal sources).
func (k *Keyboard) Press(b Binding) {
	if b < 0 || b >= bindingCount {
		return
	}
	k.lastPress[b] = k.now()
}

func (k *Keyboard) active(b Binding) bool {
	if k.held[b] {
		return true
	}
	t := k.lastPress[b]
	return !t.IsZero() && k.now().Sub(t) < keyRepeatWindow
}

// Sample implements flight.Sampler. Keys deflect their axis fully;
// opposing keys cancel.
func (k *Keyboard) Sample() flight.RawControls {
	var raw flight.RawControls

	if k.active(PitchUp) {
		raw.Pitch += 1
	}
	if k.active(PitchDown) {
		raw.Pitch -= 1
	}
	if k.active(RollLeft) {
		raw.Roll -= 1
	}
	if k.active(RollRight) {
		raw.Roll += 1
	}
	if k.active(YawLeft) {
		raw.Yaw -= 1
	}
	if k.active(YawRight) {
		raw.Yaw += 1
	}
	raw.Boost = k.active(Boost)
	raw.Slow = k.active(Slow)
	raw.Hyperspace = k.active(Hyperspace)
	raw.Fire = k.active(Fire)

	return raw
}
