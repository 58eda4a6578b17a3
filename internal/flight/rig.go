package flight

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/starflight/pkg/math"
)

// RigVariant selects how the camera follows the craft.
type RigVariant int

const (
	// ChaseRig places the camera at a per-state offset behind the craft
	// and lets the look direction lag the stick. Desktop and terrain
	// modes use this.
	ChaseRig RigVariant = iota
	// HeadsetRig holds only the travel pose; an externally tracked head
	// pose composes on top. Flight code never writes the camera here.
	HeadsetRig
)

// ChaseOffsets are the camera's local offsets per craft state.
type ChaseOffsets struct {
	Normal    math.Vec3
	Boost     math.Vec3
	Slow      math.Vec3
	Collision math.Vec3
}

// DefaultChaseOffsets returns the standard chase-camera placement.
func DefaultChaseOffsets() ChaseOffsets {
	return ChaseOffsets{
		Normal:    math.Vec3{Y: 12, Z: -40},
		Boost:     math.Vec3{Y: 14, Z: -60},
		Slow:      math.Vec3{Y: 10, Z: -28},
		Collision: math.Vec3{Y: 16, Z: -50},
	}
}

// RigConfig tunes a camera rig.
type RigConfig struct {
	Variant RigVariant
	Offsets ChaseOffsets

	// OffsetLerp blends the current offset toward the target each tick.
	// Fixed factor, not frame-rate compensated; at very low frame rates
	// the chase camera converges slower than intended.
	OffsetLerp float32

	// LookLerp is the slower blend for the look lead/lag bias.
	LookLerp float32

	// LookBias scales how far (radians) the look direction leads the
	// stick at full deflection.
	LookBias float32

	// FlipForward applies a 180 degree yaw correction for craft models
	// whose visual nose points down -Z.
	FlipForward bool
}

// DefaultRigConfig returns the standard chase rig configuration.
func DefaultRigConfig() RigConfig {
	return RigConfig{
		Variant:    ChaseRig,
		Offsets:    DefaultChaseOffsets(),
		OffsetLerp: 0.1,
		LookLerp:   0.05,
		LookBias:   0.15,
	}
}

// Rig owns camera placement for one session. It separates "where the
// craft is and faces" from "where the viewer looks": nothing else may
// write the camera transform.
type Rig struct {
	cfg     RigConfig
	vehicle Pose

	// chase state
	offset    math.Vec3
	lookPitch float32
	lookYaw   float32

	// headset state
	head Pose
}

// NewRig creates a rig. Rigs are created per mode activation and never
// reused across modes.
func NewRig(cfg RigConfig) *Rig {
	if cfg.OffsetLerp <= 0 {
		cfg.OffsetLerp = 0.1
	}
	if cfg.LookLerp <= 0 {
		cfg.LookLerp = 0.05
	}
	return &Rig{
		cfg:     cfg,
		vehicle: IdentityPose(),
		offset:  cfg.Offsets.Normal,
		head:    IdentityPose(),
	}
}

// Variant returns the rig variant.
func (r *Rig) Variant() RigVariant {
	return r.cfg.Variant
}

// Update feeds the rig the craft's post-collision pose for this tick.
func (r *Rig) Update(vehicle Pose, sig ControlSignal, mode SpeedMode, colliding bool) {
	r.vehicle = vehicle

	if r.cfg.Variant != ChaseRig {
		return
	}

	target := r.cfg.Offsets.Normal
	switch {
	case colliding:
		target = r.cfg.Offsets.Collision
	case mode == ModeBoost || mode == ModeHyperspace:
		target = r.cfg.Offsets.Boost
	case mode == ModeSlow:
		target = r.cfg.Offsets.Slow
	}
	r.offset = r.offset.Lerp(target, r.cfg.OffsetLerp)

	// Look bias lags the stick so the view leads into turns.
	r.lookPitch += (sig.Pitch*r.cfg.LookBias - r.lookPitch) * r.cfg.LookLerp
	r.lookYaw += (sig.Yaw*r.cfg.LookBias - r.lookYaw) * r.cfg.LookLerp
}

// SetHeadPose supplies the externally tracked head pose. Headset rigs
// only; chase rigs ignore it.
func (r *Rig) SetHeadPose(head Pose) {
	r.head = head
}

// ViewPose returns the camera pose for rendering. Read-only: callers
// get a copy.
func (r *Rig) ViewPose() Pose {
	if r.cfg.Variant == HeadsetRig {
		// Head tracking composes additively with the travel pose.
		return r.vehicle.Transform(r.head)
	}

	orient := r.vehicle.Orientation
	if r.cfg.FlipForward {
		orient = orient.Mul(math.QuatFromAxisAngle(LocalUp, math32.Pi)).Normalize()
	}
	orient = orient.
		Mul(math.QuatFromAxisAngle(math.Vec3{X: 1}, r.lookPitch)).
		Mul(math.QuatFromAxisAngle(math.Vec3{Y: 1}, r.lookYaw)).
		Normalize()

	return Pose{
		Position:    r.vehicle.Position.Add(r.vehicle.Orientation.RotateVec3(r.offset)),
		Orientation: orient,
	}
}

// ViewMatrix returns the view matrix for the current view pose.
func (r *Rig) ViewMatrix() math.Mat4 {
	view := r.ViewPose()
	eye := view.Position
	center := eye.Add(view.Orientation.RotateVec3(LocalForward))
	up := view.Orientation.RotateVec3(LocalUp)
	return math.LookAt(eye, center, up)
}
