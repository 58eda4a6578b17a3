package flight

import "github.com/chewxy/math32"

// DefaultDeadzone is the axis magnitude below which input reads as zero.
const DefaultDeadzone = 0.1

// RawControls is the pre-deadzone state a sampler reads off a device.
type RawControls struct {
	Pitch, Roll, Yaw        float32
	Boost, Slow, Hyperspace bool
	Fire                    bool
}

// Merge combines two raw control sets: the larger magnitude wins per
// axis, booleans are ORed. Used when keyboard and gamepad are both live.
func Merge(a, b RawControls) RawControls {
	out := a
	if math32.Abs(b.Pitch) > math32.Abs(out.Pitch) {
		out.Pitch = b.Pitch
	}
	if math32.Abs(b.Roll) > math32.Abs(out.Roll) {
		out.Roll = b.Roll
	}
	if math32.Abs(b.Yaw) > math32.Abs(out.Yaw) {
		out.Yaw = b.Yaw
	}
	out.Boost = out.Boost || b.Boost
	out.Slow = out.Slow || b.Slow
	out.Hyperspace = out.Hyperspace || b.Hyperspace
	out.Fire = out.Fire || b.Fire
	return out
}

// ControlSignal is the per-tick immutable control snapshot. Axis values
// are in [-1, 1] with the deadzone already applied: anything below the
// threshold is exactly zero.
type ControlSignal struct {
	Pitch, Roll, Yaw        float32
	Boost, Slow, Hyperspace bool
	Fire                    bool
}

// NewControlSignal clamps raw device state into a canonical signal.
func NewControlSignal(raw RawControls, deadzone float32) ControlSignal {
	return ControlSignal{
		Pitch:      applyDeadzone(raw.Pitch, deadzone),
		Roll:       applyDeadzone(raw.Roll, deadzone),
		Yaw:        applyDeadzone(raw.Yaw, deadzone),
		Boost:      raw.Boost,
		Slow:       raw.Slow,
		Hyperspace: raw.Hyperspace,
		Fire:       raw.Fire,
	}
}

func applyDeadzone(v, deadzone float32) float32 {
	if math32.Abs(v) < deadzone {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// SpeedMode is the craft's travel regime for a tick. It is derived from
// the current ControlSignal and never stored as independent state.
type SpeedMode int

const (
	ModeNormal SpeedMode = iota
	ModeSlow
	ModeBoost
	ModeHyperspace
)

// String returns the mode name for logs and the HUD.
func (m SpeedMode) String() string {
	switch m {
	case ModeSlow:
		return "slow"
	case ModeBoost:
		return "boost"
	case ModeHyperspace:
		return "hyperspace"
	default:
		return "normal"
	}
}

// ModeFor derives the speed mode from a signal. Precedence when several
// flags are held at once: Hyperspace > Boost > Slow > Normal.
func ModeFor(sig ControlSignal) SpeedMode {
	switch {
	case sig.Hyperspace:
		return ModeHyperspace
	case sig.Boost:
		return ModeBoost
	case sig.Slow:
		return ModeSlow
	default:
		return ModeNormal
	}
}

// SpeedTable maps modes to forward-speed multipliers.
type SpeedTable struct {
	Boost      float32
	Slow       float32
	Hyperspace float32
}

// DefaultSpeedTable returns the standard multiplier table.
func DefaultSpeedTable() SpeedTable {
	return SpeedTable{Boost: 5, Slow: 0.5, Hyperspace: 20}
}

// Multiplier returns the forward-speed multiplier for a mode.
func (t SpeedTable) Multiplier(m SpeedMode) float32 {
	switch m {
	case ModeBoost:
		return t.Boost
	case ModeSlow:
		return t.Slow
	case ModeHyperspace:
		return t.Hyperspace
	default:
		return 1
	}
}

// EffectIntensity returns the visual-effect strength cosmetic consumers
// scale their trails and shakes by.
func (m SpeedMode) EffectIntensity() float32 {
	switch m {
	case ModeSlow:
		return 0.25
	case ModeBoost:
		return 1
	case ModeHyperspace:
		return 2
	default:
		return 0
	}
}
