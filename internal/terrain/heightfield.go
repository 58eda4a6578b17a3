package terrain

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/starflight/pkg/math"
)

// GenerateHeightfield builds a test terrain patch: a grid of cells
// across size x size world units, displaced by layered sine noise.
// The demo binary loads one of these in place of a streamed tileset.
func GenerateHeightfield(name string, size float32, cells int, amplitude float32, seed int64) (*TriMesh, error) {
	if cells < 1 {
		return nil, fmt.Errorf("heightfield %s: need at least 1 cell, have %d", name, cells)
	}
	if size <= 0 {
		return nil, fmt.Errorf("heightfield %s: size must be positive", name)
	}

	rng := rand.New(rand.NewSource(seed))
	phaseA := rng.Float32() * 2 * math32.Pi
	phaseB := rng.Float32() * 2 * math32.Pi
	freqA := 2 + rng.Float32()*2
	freqB := 5 + rng.Float32()*3

	n := cells + 1
	vertices := make([]math.Vec3, 0, n*n)
	half := size / 2
	step := size / float32(cells)

	for zi := 0; zi < n; zi++ {
		for xi := 0; xi < n; xi++ {
			x := -half + float32(xi)*step
			z := -half + float32(zi)*step
			u := x / size
			v := z / size
			h := amplitude * (0.6*math32.Sin(freqA*u+phaseA)*math32.Cos(freqA*v+phaseA) +
				0.4*math32.Sin(freqB*v+phaseB)*math32.Cos(freqB*u+phaseB))
			vertices = append(vertices, math.Vec3{X: x, Y: h, Z: z})
		}
	}

	indices := make([]uint32, 0, cells*cells*6)
	for zi := 0; zi < cells; zi++ {
		for xi := 0; xi < cells; xi++ {
			i := uint32(zi*n + xi)
			indices = append(indices,
				i, i+uint32(n), i+1,
				i+1, i+uint32(n), i+uint32(n)+1,
			)
		}
	}

	return NewTriMesh(name, vertices, indices)
}
