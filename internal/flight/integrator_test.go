package flight

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/starflight/pkg/math"
)

// scenarioTuning allows a full one-second tick so the canonical flight
// scenarios come out in round numbers.
func scenarioTuning() Tuning {
	return Tuning{BaseSpeed: 1000, RotationSpeed: 1.5, MaxDeltaTime: 1}
}

// arm consumes the integrator's first (zero-movement) tick.
func arm(in *Integrator) {
	in.Step(ControlSignal{}, 0.016, 1)
}

func TestStraightFlight(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)
	arm(in)

	in.Step(ControlSignal{}, 1.0, 1)

	want := math.Vec3{Z: 1000}
	if in.Pose().Position != want {
		t.Errorf("position after one tick = %+v, want %+v", in.Pose().Position, want)
	}
	if in.Pose().Orientation != math.QuatIdentity() {
		t.Errorf("orientation drifted without input: %+v", in.Pose().Orientation)
	}
}

func TestBoostMultiplier(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)
	arm(in)

	in.Step(ControlSignal{Boost: true}, 1.0, 5)

	want := math.Vec3{Z: 5000}
	if in.Pose().Position != want {
		t.Errorf("boost position = %+v, want %+v", in.Pose().Position, want)
	}
}

func TestZeroInputIdempotence(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)
	arm(in)

	for i := 0; i < 100; i++ {
		in.Step(ControlSignal{}, 0.016, 1)
	}

	pose := in.Pose()
	if pose.Orientation != math.QuatIdentity() {
		t.Errorf("orientation changed under zero input: %+v", pose.Orientation)
	}
	// Travel stays on the straight forward line.
	if pose.Position.X != 0 || pose.Position.Y != 0 {
		t.Errorf("position strayed off the forward axis: %+v", pose.Position)
	}
	if pose.Position.Z <= 0 {
		t.Errorf("craft should travel forward, got Z = %v", pose.Position.Z)
	}
}

func TestFirstTickMovesNothing(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)

	// A bogus huge dt on the very first tick must not teleport the craft.
	in.Step(ControlSignal{}, 3600, 1)

	if in.Pose().Position != (math.Vec3{}) {
		t.Errorf("first tick moved the craft: %+v", in.Pose().Position)
	}
}

func TestDeltaTimeClamp(t *testing.T) {
	tuning := Tuning{BaseSpeed: 1000, RotationSpeed: 1.5, MaxDeltaTime: 0.1}
	in := NewIntegrator(tuning, IdentityPose(), nil)
	arm(in)

	// A stalled tab hands us 10 seconds; the clamp caps it at 0.1.
	in.Step(ControlSignal{}, 10, 1)

	got := in.Pose().Position.Z
	if got < 99.99 || got > 100.01 {
		t.Errorf("clamped travel = %v, want 100", got)
	}
}

func TestUnitNormAfterManySteps(t *testing.T) {
	in := NewIntegrator(DefaultTuning(), IdentityPose(), nil)
	arm(in)

	sig := ControlSignal{Pitch: 0.7, Roll: -0.4, Yaw: 0.2}
	for i := 0; i < 5000; i++ {
		in.Step(sig, 0.016, 1)
		l := in.Pose().Orientation.Length()
		if gomath.Abs(float64(l-1)) > 0.001 {
			t.Fatalf("orientation off unit length at step %d: %v", i, l)
		}
	}
}

func TestRotationIsLocalFrame(t *testing.T) {
	in := NewIntegrator(Tuning{BaseSpeed: 0.0001, RotationSpeed: 1, MaxDeltaTime: 1}, IdentityPose(), nil)
	arm(in)

	// Yaw 90 degrees, then pitch: the pitch must act around the craft's
	// new local X axis, not the world X axis.
	in.Step(ControlSignal{Yaw: 1}, float32(gomath.Pi/2), 1)
	in.Step(ControlSignal{Pitch: 1}, float32(gomath.Pi/2), 1)

	// After yawing +Z onto +X, a local-frame pitch tilts the nose into
	// world Y. A global-frame pitch would leave it on the X axis.
	forward := in.Pose().Forward()
	if gomath.Abs(float64(forward.Y)) < 0.9 {
		t.Errorf("local-frame pitch should point the nose along world Y, forward = %+v", forward)
	}
}

func TestNonFinitePoseReverts(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)
	arm(in)

	in.Step(ControlSignal{}, 1.0, 1)
	good := in.Pose()

	nan := float32(gomath.NaN())
	in.Step(ControlSignal{Pitch: nan}, 1.0, 1)

	if in.Pose() != good {
		t.Errorf("pose after NaN input = %+v, want last good %+v", in.Pose(), good)
	}

	// The integrator keeps working afterwards.
	in.Step(ControlSignal{}, 1.0, 1)
	if in.Pose().Position.Z != 2000 {
		t.Errorf("recovery tick Z = %v, want 2000", in.Pose().Position.Z)
	}
}

func TestSetPositionRejectsNonFinite(t *testing.T) {
	in := NewIntegrator(scenarioTuning(), IdentityPose(), nil)
	in.SetPosition(math.Vec3{X: float32(gomath.Inf(1))})
	if in.Pose().Position != (math.Vec3{}) {
		t.Errorf("non-finite correction accepted: %+v", in.Pose().Position)
	}
}
