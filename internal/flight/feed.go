package flight

import (
	"github.com/Faultbox/starflight/pkg/math"
)

// Snapshot is the read-only pose feed cosmetic riders consume: HUD
// reticle, cockpit mesh, engine trails. It is sampled once per tick
// after collision resolution completes.
type Snapshot struct {
	Position    math.Vec3
	Orientation math.Quat

	Mode       SpeedMode
	Multiplier float32
	Intensity  float32

	Colliding      bool
	GroundDistance float32 // -1 when no ground in probe range
}

// Snapshot returns the feed for the latest completed tick.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot
}

// Standard attachment slot names the asset collaborator fills in.
const (
	AttachCockpit      = "cockpit"
	AttachReticle      = "reticle"
	AttachWingtipLeft  = "wingtip-left"
	AttachWingtipRight = "wingtip-right"
	AttachEngine       = "engine"
)

// SetAttachment registers a named attachment point as a craft-local
// pose. The asset collaborator supplies these explicitly; flight code
// never walks a scene graph looking for parts by name.
func (s *Session) SetAttachment(name string, local Pose) {
	s.attachments[name] = local
}

// Attachment returns the world pose of a named attachment point,
// derived from the craft's post-collision pose.
func (s *Session) Attachment(name string) (Pose, bool) {
	local, ok := s.attachments[name]
	if !ok {
		return Pose{}, false
	}
	craft := Pose{Position: s.snapshot.Position, Orientation: s.snapshot.Orientation}
	return craft.Transform(local), true
}
