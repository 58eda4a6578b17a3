package terrain

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/starflight/pkg/math"
)

// hoverGain is the fraction of the height gap closed per tick, giving
// smooth hover-seeking instead of a hard clamp.
const hoverGain = 0.1

// slopeBlend is how far the travel vector bends toward the slope plane
// when the ground is steeper than the configured maximum.
const slopeBlend = 0.5

// probeDirs are the five probe directions in the craft's local frame:
// down, forward (+Z, matching flight.LocalForward), left, right, back.
var probeDirs = [5]math.Vec3{
	{Y: -1},
	{Z: 1},
	{X: -1},
	{X: 1},
	{Z: -1},
}

var worldUp = math.Vec3{Y: 1}
var worldDown = math.Vec3{Y: -1}

// Config tunes the collision resolver.
type Config struct {
	Radius      float32 // craft collision radius
	PushFactor  float32 // >1, scales the penetration correction
	ProbeRange  float32 // max probe distance
	HoverHeight float32 // target ground clearance; 0 disables hover
	MaxSlopeDeg float32 // ground steeper than this bends the travel vector
}

// DefaultConfig returns the standard resolver tuning.
func DefaultConfig() Config {
	return Config{
		Radius:      20,
		PushFactor:  1.2,
		ProbeRange:  400,
		HoverHeight: 40,
		MaxSlopeDeg: 55,
	}
}

// Result reports what the resolver did to the craft position this tick.
type Result struct {
	Position       math.Vec3
	Collided       bool
	RolledBack     bool
	GroundDistance float32 // -1 when no ground was found in range
}

// Resolver corrects the craft position against the terrain index after
// each integration step. It owns no terrain: candidates are re-queried
// every tick because tiles stream in and out.
type Resolver struct {
	index *MeshIndex
	cfg   Config
	log   *zap.Logger
}

// NewResolver creates a resolver over the given index.
func NewResolver(index *MeshIndex, cfg Config, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PushFactor <= 1 {
		cfg.PushFactor = 1.2
	}
	if cfg.ProbeRange <= 0 {
		cfg.ProbeRange = 400
	}
	return &Resolver{index: index, cfg: cfg, log: log}
}

// Resolve corrects the post-integration position pos. prevPos is the
// pre-integration position and is the rollback target when a push-out
// cannot clear the craft. orient is the craft's current orientation.
//
// Terrain data errors must never take down the flight loop: any panic
// out of the geometry queries is caught and the tick is treated as
// having no collision data.
func (r *Resolver) Resolve(prevPos, pos math.Vec3, orient math.Quat) (result Result) {
	result = Result{Position: pos, GroundDistance: -1}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("terrain query panicked, ignoring collision this tick",
				zap.Any("panic", rec))
			result = Result{Position: pos, GroundDistance: -1}
		}
	}()

	if r.index == nil || r.index.Len() == 0 {
		return result
	}

	// Broad phase: bounding-sphere overlap against the craft sphere,
	// widened to probe range so the ground probe sees distant terrain.
	candidates := r.index.QuerySphere(pos, r.cfg.ProbeRange)
	if len(candidates) == 0 {
		return result
	}

	travel := pos.Sub(prevPos)

	ground, hasGround := r.nearestHit(Ray{Origin: pos, Direction: worldDown}, candidates)
	if hasGround {
		result.GroundDistance = ground.Distance

		// Steep ground ahead: bend the travel vector into the slope
		// plane so the craft skims instead of ramming it.
		if r.cfg.MaxSlopeDeg > 0 && travel.LengthSq() > 0 {
			slopeAngle := math32.Acos(clamp(ground.Normal.Dot(worldUp), -1, 1))
			if slopeAngle > r.cfg.MaxSlopeDeg*math32.Pi/180 {
				onSlope := travel.Sub(ground.Normal.Scale(travel.Dot(ground.Normal)))
				travel = travel.Lerp(onSlope, slopeBlend)
				pos = prevPos.Add(travel)
				result.Position = pos
			}
		}
	}

	// Five-probe narrow phase from the (possibly slope-adjusted)
	// position, directions rotated into the craft frame.
	if hit, dir, ok := r.closestProbe(pos, orient, candidates); ok && hit.Distance < r.cfg.Radius {
		push := hit.Normal
		if push.LengthSq() == 0 {
			push = dir.Neg()
		}
		pos = pos.Add(push.Scale((r.cfg.Radius - hit.Distance) * r.cfg.PushFactor))
		result.Collided = true
		result.Position = pos

		// Still colliding after the push means a corner or wedge this
		// tick cannot escape: revert fully to the pre-tick position.
		if again, _, ok := r.closestProbe(pos, orient, candidates); ok && again.Distance < r.cfg.Radius {
			r.log.Debug("collision unresolvable, rolling back",
				zap.Float32("penetration", r.cfg.Radius-again.Distance))
			result.Position = prevPos
			result.RolledBack = true
			return result
		}
	}

	// Hover seek: small per-tick nudges toward the target clearance.
	if r.cfg.HoverHeight > 0 && hasGround {
		h := r.cfg.HoverHeight
		d := result.GroundDistance
		if d < h {
			result.Position.Y += (h - d) * hoverGain
		} else if d > 2*h {
			result.Position.Y -= (d - 2*h) * hoverGain
		}
	}

	return result
}

// closestProbe casts the five probes and returns the nearest hit along
// with the world-space direction of the probe that produced it.
func (r *Resolver) closestProbe(pos math.Vec3, orient math.Quat, candidates []*TriMesh) (Hit, math.Vec3, bool) {
	best := Hit{Distance: r.cfg.ProbeRange}
	var bestDir math.Vec3
	found := false

	for _, local := range probeDirs {
		dir := orient.RotateVec3(local)
		if hit, ok := r.nearestHit(Ray{Origin: pos, Direction: dir}, candidates); ok {
			if hit.Distance < best.Distance {
				best = hit
				bestDir = dir
				found = true
			}
		}
	}
	return best, bestDir, found
}

// nearestHit returns the closest intersection among the candidates.
func (r *Resolver) nearestHit(ray Ray, candidates []*TriMesh) (Hit, bool) {
	best := Hit{Distance: r.cfg.ProbeRange}
	found := false
	for _, m := range candidates {
		if hit, ok := m.intersect(ray, best.Distance); ok {
			best = hit
			found = true
		}
	}
	return best, found
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
