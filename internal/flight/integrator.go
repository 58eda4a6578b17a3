package flight

import (
	"go.uber.org/zap"

	"github.com/Faultbox/starflight/pkg/math"
)

// Tuning holds the movement constants for one mode preset.
type Tuning struct {
	BaseSpeed     float32 // forward units per second at multiplier 1
	RotationSpeed float32 // radians per second at full stick deflection
	MaxDeltaTime  float32 // dt clamp, seconds
}

// DefaultTuning returns the standard desktop tuning.
func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:     1000,
		RotationSpeed: 1.5,
		MaxDeltaTime:  0.1,
	}
}

// Integrator advances the craft pose once per tick: rotation delta in
// the local frame, then forward translation. It owns the craft pose.
type Integrator struct {
	tuning   Tuning
	pose     Pose
	lastGood Pose
	started  bool
	log      *zap.Logger
}

// NewIntegrator creates an integrator at the given starting pose.
func NewIntegrator(tuning Tuning, start Pose, log *zap.Logger) *Integrator {
	if log == nil {
		log = zap.NewNop()
	}
	if tuning.MaxDeltaTime <= 0 {
		tuning.MaxDeltaTime = 0.1
	}
	return &Integrator{
		tuning:   tuning,
		pose:     start,
		lastGood: start,
		log:      log,
	}
}

// Pose returns a copy of the current craft pose.
func (in *Integrator) Pose() Pose {
	return in.pose
}

// SetPosition overwrites the craft position. The collision resolver uses
// this to apply push-out and rollback corrections.
func (in *Integrator) SetPosition(p math.Vec3) {
	if !p.IsFinite() {
		in.log.Warn("rejecting non-finite position correction")
		return
	}
	in.pose.Position = p
	in.lastGood = in.pose
}

// Step advances the pose by one tick. The rotation delta is composed
// roll, then pitch, then yaw and applied in the craft's local frame, so
// stick input always acts relative to the nose. Translation follows the
// freshly rotated forward axis.
//
// The very first tick after activation moves nothing: there is no valid
// previous timestamp, so dt cannot be trusted.
func (in *Integrator) Step(sig ControlSignal, dt float32, speedMultiplier float32) {
	if !in.started {
		in.started = true
		return
	}
	if dt <= 0 {
		return
	}
	if dt > in.tuning.MaxDeltaTime {
		dt = in.tuning.MaxDeltaTime
	}

	step := in.tuning.RotationSpeed * dt
	delta := math.RotationDelta(sig.Pitch*step, sig.Roll*step, sig.Yaw*step)
	in.pose.Orientation = in.pose.Orientation.Mul(delta).Normalize()

	forward := in.pose.Forward()
	in.pose.Position = in.pose.Position.Add(
		forward.Scale(in.tuning.BaseSpeed * speedMultiplier * dt))

	// Degenerate input can poison the pose with NaN/Inf. Keep the last
	// finite pose and fall back to it instead of propagating corruption.
	if !in.pose.IsFinite() {
		in.log.Warn("non-finite pose after integration, reverting",
			zap.Float32("dt", dt),
			zap.Float32("multiplier", speedMultiplier))
		in.pose = in.lastGood
		return
	}
	in.lastGood = in.pose
}
