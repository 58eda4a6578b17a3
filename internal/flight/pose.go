// Package flight implements the craft movement core: control signals,
// speed modes, pose integration, camera rigs and the per-mode session.
package flight

import (
	"github.com/Faultbox/starflight/pkg/math"
)

// LocalForward is the craft's forward axis in its local frame. Every
// mode uses this one convention; the chase rig compensates for camera
// conventions that look down -Z.
var LocalForward = math.Vec3{Z: 1}

// LocalUp is the craft's up axis in its local frame.
var LocalUp = math.Vec3{Y: 1}

// Pose is a position plus a unit orientation quaternion. Each pose is
// owned by exactly one entity (craft or rig) and is copied, never
// aliased, when handed out.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: math.QuatIdentity()}
}

// Forward returns the craft's forward axis in world space.
func (p Pose) Forward() math.Vec3 {
	return p.Orientation.RotateVec3(LocalForward)
}

// Up returns the craft's up axis in world space.
func (p Pose) Up() math.Vec3 {
	return p.Orientation.RotateVec3(LocalUp)
}

// IsFinite reports whether both position and orientation are finite.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Orientation.IsFinite()
}

// Transform applies the pose to a local-space child pose, returning the
// child in world space. Used for attachment points and headset heads.
func (p Pose) Transform(local Pose) Pose {
	return Pose{
		Position:    p.Position.Add(p.Orientation.RotateVec3(local.Position)),
		Orientation: p.Orientation.Mul(local.Orientation).Normalize(),
	}
}
