package terrain

import (
	"testing"

	"github.com/Faultbox/starflight/pkg/math"
)

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: 1}}

	d, ok := r.IntersectSphere(math.Vec3{Z: 10}, 2)
	if !ok {
		t.Fatal("expected sphere hit")
	}
	if d < 7.99 || d > 8.01 {
		t.Errorf("sphere hit distance = %v, want 8", d)
	}

	if _, ok := r.IntersectSphere(math.Vec3{Z: -10}, 2); ok {
		t.Error("sphere behind the ray should miss")
	}
	if _, ok := r.IntersectSphere(math.Vec3{X: 10, Z: 10}, 2); ok {
		t.Error("sphere off to the side should miss")
	}

	// Origin inside the sphere clamps to distance 0.
	d, ok = r.IntersectSphere(math.Vec3{Z: 1}, 5)
	if !ok || d != 0 {
		t.Errorf("inside sphere: got (%v, %v), want (0, true)", d, ok)
	}
}

func TestIntersectAABB(t *testing.T) {
	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: 1}}

	d, ok := r.IntersectAABB(math.Vec3{X: -1, Y: -1, Z: 5}, math.Vec3{X: 1, Y: 1, Z: 7})
	if !ok {
		t.Fatal("expected box hit")
	}
	if d < 4.99 || d > 5.01 {
		t.Errorf("box entry distance = %v, want 5", d)
	}

	if _, ok := r.IntersectAABB(math.Vec3{X: 5, Y: 5, Z: 5}, math.Vec3{X: 6, Y: 6, Z: 6}); ok {
		t.Error("box off axis should miss")
	}

	// Origin inside returns the exit distance.
	d, ok = r.IntersectAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 3})
	if !ok || d < 2.99 || d > 3.01 {
		t.Errorf("inside box: got (%v, %v), want (3, true)", d, ok)
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1, Z: 5}
	b := math.Vec3{X: 1, Y: -1, Z: 5}
	c := math.Vec3{X: 0, Y: 1, Z: 5}

	r := Ray{Origin: math.Vec3{}, Direction: math.Vec3{Z: 1}}
	hit, ok := r.IntersectTriangle(a, b, c)
	if !ok {
		t.Fatal("expected triangle hit")
	}
	if hit.Distance < 4.99 || hit.Distance > 5.01 {
		t.Errorf("hit distance = %v, want 5", hit.Distance)
	}
	// Normal faces the ray origin.
	if hit.Normal.Z > -0.99 {
		t.Errorf("normal should face the origin, got %+v", hit.Normal)
	}

	// Outside the triangle bounds.
	miss := Ray{Origin: math.Vec3{X: 5}, Direction: math.Vec3{Z: 1}}
	if _, ok := miss.IntersectTriangle(a, b, c); ok {
		t.Error("ray outside the triangle should miss")
	}

	// Triangle behind the origin.
	behind := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: 1}}
	if _, ok := behind.IntersectTriangle(a, b, c); ok {
		t.Error("triangle behind the ray should miss")
	}

	// Ray parallel to the triangle plane.
	parallel := Ray{Origin: math.Vec3{Y: -5}, Direction: math.Vec3{X: 1}}
	if _, ok := parallel.IntersectTriangle(a, b, c); ok {
		t.Error("parallel ray should miss")
	}
}
