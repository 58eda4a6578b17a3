package terrain

import (
	"fmt"
	"sync"

	"github.com/Faultbox/starflight/pkg/math"
)

// TriMesh is one intersectable terrain patch. The streaming collaborator
// constructs meshes and publishes them into a MeshIndex; the flight core
// only ever raycasts into them.
type TriMesh struct {
	Name     string
	Vertices []math.Vec3
	Indices  []uint32

	center math.Vec3
	radius float32
	valid  bool
}

// NewTriMesh validates geometry and computes the world bounding sphere.
// Malformed input (too few vertices, out-of-range indices, non-finite
// coordinates) yields an error; such meshes never enter the index.
func NewTriMesh(name string, vertices []math.Vec3, indices []uint32) (*TriMesh, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("mesh %s: need at least 3 vertices, have %d", name, len(vertices))
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("mesh %s: index count %d is not a positive multiple of 3", name, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("mesh %s: index %d out of range", name, idx)
		}
	}

	var center math.Vec3
	for _, v := range vertices {
		if !v.IsFinite() {
			return nil, fmt.Errorf("mesh %s: non-finite vertex", name)
		}
		center = center.Add(v)
	}
	center = center.Scale(1 / float32(len(vertices)))

	var radius float32
	for _, v := range vertices {
		if d := v.Distance(center); d > radius {
			radius = d
		}
	}

	return &TriMesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		center:   center,
		radius:   radius,
		valid:    true,
	}, nil
}

// Bounds returns the world bounding sphere.
func (m *TriMesh) Bounds() (math.Vec3, float32) {
	return m.center, m.radius
}

// intersect finds the nearest triangle hit within maxDist, if any.
func (m *TriMesh) intersect(r Ray, maxDist float32) (Hit, bool) {
	if !m.valid {
		return Hit{}, false
	}
	// Cheap reject before walking triangles.
	if _, ok := r.IntersectSphere(m.center, m.radius); !ok {
		return Hit{}, false
	}

	best := Hit{Distance: maxDist}
	found := false
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		if hit, ok := r.IntersectTriangle(a, b, c); ok && hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// MeshIndex is the queryable set of terrain meshes. The streaming
// pipeline adds and removes meshes between ticks; the resolver takes a
// fresh snapshot every tick and never caches candidates across ticks.
type MeshIndex struct {
	mu     sync.RWMutex
	meshes []*TriMesh
}

// NewMeshIndex returns an empty index.
func NewMeshIndex() *MeshIndex {
	return &MeshIndex{}
}

// Add publishes a mesh into the index.
func (x *MeshIndex) Add(m *TriMesh) {
	if m == nil || !m.valid {
		return
	}
	x.mu.Lock()
	x.meshes = append(x.meshes, m)
	x.mu.Unlock()
}

// Remove drops a mesh by name, for tiles streaming out.
func (x *MeshIndex) Remove(name string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i, m := range x.meshes {
		if m.Name == name {
			x.meshes = append(x.meshes[:i], x.meshes[i+1:]...)
			return
		}
	}
}

// Len returns the number of published meshes.
func (x *MeshIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.meshes)
}

// QuerySphere returns the meshes whose bounding sphere intersects the
// given sphere. The returned slice is a per-call snapshot.
func (x *MeshIndex) QuerySphere(center math.Vec3, radius float32) []*TriMesh {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var out []*TriMesh
	for _, m := range x.meshes {
		if m.center.Distance(center) <= m.radius+radius {
			out = append(out, m)
		}
	}
	return out
}
