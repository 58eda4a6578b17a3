package terrain

import (
	"testing"

	smath "github.com/Faultbox/starflight/pkg/math"
)

func testConfig() Config {
	return Config{
		Radius:      20,
		PushFactor:  1.2,
		ProbeRange:  400,
		HoverHeight: 0, // most tests disable hover
		MaxSlopeDeg: 55,
	}
}

// wallAhead is a vertical plane perpendicular to +Z at the given z.
func wallAhead(t *testing.T, z float32) *TriMesh {
	return quad(t, "wall",
		smath.Vec3{X: -100, Y: -100, Z: z},
		smath.Vec3{X: 100, Y: -100, Z: z},
		smath.Vec3{X: 100, Y: 100, Z: z},
		smath.Vec3{X: -100, Y: 100, Z: z},
	)
}

// ground is a horizontal plane at the given y.
func ground(t *testing.T, y float32) *TriMesh {
	return quad(t, "ground",
		smath.Vec3{X: -200, Y: y, Z: -200},
		smath.Vec3{X: 200, Y: y, Z: -200},
		smath.Vec3{X: 200, Y: y, Z: 200},
		smath.Vec3{X: -200, Y: y, Z: 200},
	)
}

func TestResolveEmptyIndexIsNoOp(t *testing.T) {
	r := NewResolver(NewMeshIndex(), testConfig(), nil)

	pos := smath.Vec3{X: 1, Y: 2, Z: 3}
	result := r.Resolve(smath.Vec3{}, pos, smath.QuatIdentity())

	if result.Position != pos {
		t.Errorf("empty index moved the craft: %+v", result.Position)
	}
	if result.Collided || result.RolledBack {
		t.Error("empty index should report no collision")
	}
	if result.GroundDistance != -1 {
		t.Errorf("ground distance = %v, want -1", result.GroundDistance)
	}
}

func TestResolveOutOfRangeIsNoOp(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(wallAhead(t, 10000))
	r := NewResolver(idx, testConfig(), nil)

	pos := smath.Vec3{}
	result := r.Resolve(smath.Vec3{Z: -10}, pos, smath.QuatIdentity())
	if result.Position != pos || result.Collided {
		t.Errorf("distant terrain affected the craft: %+v", result)
	}
}

func TestResolveNonPenetration(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(wallAhead(t, 10))
	r := NewResolver(idx, testConfig(), nil)

	// Head-on approach: the forward probe sees the wall at 10, inside
	// the collision radius of 20.
	result := r.Resolve(smath.Vec3{Z: -30}, smath.Vec3{}, smath.QuatIdentity())

	if !result.Collided {
		t.Fatal("expected a collision")
	}
	if result.RolledBack {
		t.Fatal("push-out should have resolved without rollback")
	}
	distToWall := 10 - result.Position.Z
	if distToWall < 20-0.01 {
		t.Errorf("craft still inside collision radius: distance %v", distToWall)
	}
	// Push = (radius - dist) * pushFactor = 10 * 1.2 along -Z.
	if result.Position.Z < -12.01 || result.Position.Z > -11.99 {
		t.Errorf("pushed position Z = %v, want -12", result.Position.Z)
	}
}

func TestResolveRollbackInCorner(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(wallAhead(t, 5))
	// Second wall perpendicular to +X, boxing the craft in.
	idx.Add(quad(t, "side",
		smath.Vec3{X: 5, Y: -100, Z: -100},
		smath.Vec3{X: 5, Y: 100, Z: -100},
		smath.Vec3{X: 5, Y: 100, Z: 100},
		smath.Vec3{X: 5, Y: -100, Z: 100},
	))
	r := NewResolver(idx, testConfig(), nil)

	prev := smath.Vec3{X: -1, Y: 2, Z: -50}
	result := r.Resolve(prev, smath.Vec3{}, smath.QuatIdentity())

	if !result.RolledBack {
		t.Fatal("wedge should be unresolvable and roll back")
	}
	if result.Position != prev {
		t.Errorf("rollback position = %+v, want exactly %+v", result.Position, prev)
	}
}

func TestResolveHoverSeekUp(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(ground(t, -20))

	cfg := testConfig()
	cfg.Radius = 2
	cfg.HoverHeight = 40
	r := NewResolver(idx, cfg, nil)

	// Ground probe reads 20 with target 40: nudge up by (40-20)*0.1.
	result := r.Resolve(smath.Vec3{Z: -10}, smath.Vec3{}, smath.QuatIdentity())

	if result.GroundDistance < 19.99 || result.GroundDistance > 20.01 {
		t.Fatalf("ground distance = %v, want 20", result.GroundDistance)
	}
	if result.Position.Y < 1.999 || result.Position.Y > 2.001 {
		t.Errorf("hover nudge = %v, want +2.0", result.Position.Y)
	}
}

func TestResolveHoverSeekDown(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(ground(t, -20))

	cfg := testConfig()
	cfg.Radius = 2
	cfg.HoverHeight = 40
	r := NewResolver(idx, cfg, nil)

	// 120 above ground, past twice the hover height: nudge down by
	// (120-80)*0.1.
	pos := smath.Vec3{Y: 100}
	result := r.Resolve(smath.Vec3{Y: 100, Z: -10}, pos, smath.QuatIdentity())

	want := float32(96)
	if result.Position.Y < want-0.01 || result.Position.Y > want+0.01 {
		t.Errorf("hover nudge down: Y = %v, want %v", result.Position.Y, want)
	}
}

func TestResolveHoverDeadBand(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(ground(t, -20))

	cfg := testConfig()
	cfg.Radius = 2
	cfg.HoverHeight = 40
	r := NewResolver(idx, cfg, nil)

	// 60 above ground sits between hover height and twice hover
	// height: no correction either way.
	pos := smath.Vec3{Y: 40}
	result := r.Resolve(smath.Vec3{Y: 40, Z: -10}, pos, smath.QuatIdentity())

	if result.Position.Y != 40 {
		t.Errorf("dead band moved the craft: Y = %v, want 40", result.Position.Y)
	}
}

func TestResolveSlopeBlend(t *testing.T) {
	idx := NewMeshIndex()
	// 45 degree ramp rising toward +Z (the plane y = z).
	idx.Add(quad(t, "ramp",
		smath.Vec3{X: -100, Y: -100, Z: -100},
		smath.Vec3{X: 100, Y: -100, Z: -100},
		smath.Vec3{X: 100, Y: 100, Z: 100},
		smath.Vec3{X: -100, Y: 100, Z: 100},
	))

	cfg := testConfig()
	cfg.Radius = 1
	cfg.MaxSlopeDeg = 10
	r := NewResolver(idx, cfg, nil)

	// Forward travel of 10 units into the ramp. The 45 degree slope
	// exceeds the 10 degree limit, so travel blends halfway toward the
	// slope plane: (0,0,10) -> (0,2.5,7.5).
	prev := smath.Vec3{Y: 30}
	result := r.Resolve(prev, smath.Vec3{Y: 30, Z: 10}, smath.QuatIdentity())

	if result.Position.Y < 32.49 || result.Position.Y > 32.51 {
		t.Errorf("slope-adjusted Y = %v, want 32.5", result.Position.Y)
	}
	if result.Position.Z < 7.49 || result.Position.Z > 7.51 {
		t.Errorf("slope-adjusted Z = %v, want 7.5", result.Position.Z)
	}
}

func TestResolveGentleSlopeUntouched(t *testing.T) {
	idx := NewMeshIndex()
	idx.Add(ground(t, -50))

	cfg := testConfig()
	cfg.Radius = 1
	r := NewResolver(idx, cfg, nil)

	// Flat ground is well under the slope limit: travel unchanged.
	pos := smath.Vec3{Z: 10}
	result := r.Resolve(smath.Vec3{}, pos, smath.QuatIdentity())
	if result.Position != pos {
		t.Errorf("flat ground altered travel: %+v", result.Position)
	}
}
