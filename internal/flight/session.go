package flight

import (
	"go.uber.org/zap"

	"github.com/Faultbox/starflight/internal/terrain"
	"github.com/Faultbox/starflight/pkg/math"
)

// Mode selects the session preset: rig variant plus tuning.
type Mode int

const (
	// ModeDesktop is chase-camera free flight.
	ModeDesktop Mode = iota
	// ModeHeadset is rig-based flight with externally tracked head pose.
	ModeHeadset
	// ModeTerrain is chase-camera flight over a collidable tileset with
	// hover-seeking enabled.
	ModeTerrain
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeHeadset:
		return "headset"
	case ModeTerrain:
		return "terrain"
	default:
		return "desktop"
	}
}

// Sampler supplies raw device state once per tick. Keyboard and gamepad
// samplers live in internal/input; tests supply stubs.
type Sampler interface {
	Sample() RawControls
}

// SessionConfig assembles a session. Zero values fall back to defaults.
type SessionConfig struct {
	Mode     Mode
	Tuning   Tuning
	Speeds   SpeedTable
	Rig      RigConfig
	Deadzone float32
	Start    Pose

	// Resolver is optional; without one the craft flies through
	// everything (space modes).
	Resolver *terrain.Resolver

	Log *zap.Logger
}

// Session owns one activation of a flight mode: samplers, integrator,
// resolver and rig, threaded explicitly instead of module-level state.
// Switching modes tears the session down and builds a fresh one; there
// is no cross-mode resume state.
type Session struct {
	mode     Mode
	samplers []Sampler
	deadzone float32
	speeds   SpeedTable

	integrator *Integrator
	resolver   *terrain.Resolver
	rig        *Rig

	prevMode    SpeedMode
	snapshot    Snapshot
	attachments map[string]Pose

	log *zap.Logger
}

// NewSession builds a session from the config.
func NewSession(cfg SessionConfig, samplers ...Sampler) *Session {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Deadzone <= 0 {
		cfg.Deadzone = DefaultDeadzone
	}
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}
	if cfg.Speeds == (SpeedTable{}) {
		cfg.Speeds = DefaultSpeedTable()
	}
	if cfg.Rig == (RigConfig{}) {
		cfg.Rig = DefaultRigConfig()
	}
	if cfg.Mode == ModeHeadset {
		cfg.Rig.Variant = HeadsetRig
	}
	if cfg.Start.Orientation == (math.Quat{}) {
		cfg.Start.Orientation = math.QuatIdentity()
	}

	s := &Session{
		mode:        cfg.Mode,
		samplers:    samplers,
		deadzone:    cfg.Deadzone,
		speeds:      cfg.Speeds,
		integrator:  NewIntegrator(cfg.Tuning, cfg.Start, log.Named("integrator")),
		resolver:    cfg.Resolver,
		rig:         NewRig(cfg.Rig),
		prevMode:    ModeNormal,
		attachments: make(map[string]Pose),
		log:         log,
	}
	s.snapshot = s.buildSnapshot(ModeNormal, terrain.Result{Position: cfg.Start.Position, GroundDistance: -1})

	log.Info("flight session created",
		zap.Stringer("mode", cfg.Mode),
		zap.Float32("base_speed", cfg.Tuning.BaseSpeed))
	return s
}

// Tick runs one simulation step: sample input, derive the speed mode,
// integrate, resolve collisions, update the rig, publish the snapshot.
func (s *Session) Tick(dt float32) {
	var raw RawControls
	for _, sampler := range s.samplers {
		raw = Merge(raw, sampler.Sample())
	}
	sig := NewControlSignal(raw, s.deadzone)

	mode := ModeFor(sig)
	if mode != s.prevMode {
		s.log.Debug("speed mode changed",
			zap.Stringer("from", s.prevMode),
			zap.Stringer("to", mode))
		s.prevMode = mode
	}
	mult := s.speeds.Multiplier(mode)

	before := s.integrator.Pose()
	s.integrator.Step(sig, dt, mult)

	result := terrain.Result{Position: s.integrator.Pose().Position, GroundDistance: -1}
	if s.resolver != nil {
		result = s.resolver.Resolve(before.Position, s.integrator.Pose().Position, s.integrator.Pose().Orientation)
		s.integrator.SetPosition(result.Position)
		if result.RolledBack {
			s.log.Debug("position rolled back to pre-tick value")
		}
	}

	s.rig.Update(s.integrator.Pose(), sig, mode, result.Collided)

	// Riders sample after collision resolution, never a pre-correction pose.
	s.snapshot = s.buildSnapshot(mode, result)
}

func (s *Session) buildSnapshot(mode SpeedMode, result terrain.Result) Snapshot {
	pose := s.integrator.Pose()
	return Snapshot{
		Position:       pose.Position,
		Orientation:    pose.Orientation,
		Mode:           mode,
		Multiplier:     s.speeds.Multiplier(mode),
		Intensity:      mode.EffectIntensity(),
		Colliding:      result.Collided,
		GroundDistance: result.GroundDistance,
	}
}

// Mode returns the session's flight mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Pose returns a copy of the craft pose after the latest tick.
func (s *Session) Pose() Pose {
	return s.integrator.Pose()
}

// Rig returns the session's camera rig.
func (s *Session) Rig() *Rig {
	return s.rig
}
