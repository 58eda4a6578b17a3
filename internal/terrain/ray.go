// Package terrain provides the streamed terrain mesh index and the
// multi-probe collision resolver that keeps the craft out of it.
package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/starflight/pkg/math"
)

// Ray is a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// Hit is the result of a successful ray intersection.
type Hit struct {
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3 // unit surface normal, facing the ray origin
}

// IntersectSphere tests the ray against a sphere. Used by the broad
// phase and as a cheap pre-test before triangle intersection.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius

	// Ray starts outside and points away.
	if c > 0 && b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 {
		t = 0 // started inside
	}
	return t, true
}

// IntersectAABB tests the ray against an axis-aligned box using the
// slab method. Returns the entry distance, or the exit distance when
// the origin is inside the box.
func (r Ray) IntersectAABB(min, max math.Vec3) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if d[i] != 0 {
			t1 := (lo[i] - o[i]) / d[i]
			t2 := (hi[i] - o[i]) / d[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if o[i] < lo[i] || o[i] > hi[i] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle runs the Moller-Trumbore test against one triangle.
// The returned normal faces the ray origin.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (Hit, bool) {
	const epsilon = 1e-7

	e1 := b.Sub(a)
	e2 := c.Sub(a)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return Hit{}, false // parallel
	}
	invDet := 1 / det

	tv := r.Origin.Sub(a)
	u := tv.Dot(p) * invDet
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := tv.Cross(e1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := e2.Dot(q) * invDet
	if t < 0 {
		return Hit{}, false
	}

	normal := e1.Cross(e2).Normalize()
	if normal.Dot(r.Direction) > 0 {
		normal = normal.Neg()
	}

	return Hit{
		Distance: t,
		Point:    r.Origin.Add(r.Direction.Scale(t)),
		Normal:   normal,
	}, true
}
