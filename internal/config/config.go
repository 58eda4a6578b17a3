// Package config handles simulator configuration loading and management.
package config

// Config holds all simulator settings.
type Config struct {
	Flight    FlightConfig    `yaml:"flight"`
	Camera    CameraConfig    `yaml:"camera"`
	Collision CollisionConfig `yaml:"collision"`
	Input     InputConfig     `yaml:"input"`
	HUD       HUDConfig       `yaml:"hud"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FlightConfig holds craft movement tuning.
type FlightConfig struct {
	BaseSpeed     float32 `yaml:"base_speed"`     // units per second at Normal
	RotationSpeed float32 `yaml:"rotation_speed"` // radians per second at full stick
	MaxDeltaTime  float32 `yaml:"max_delta_time"` // clamp for stalled frames, seconds

	BoostMultiplier      float32 `yaml:"boost_multiplier"`
	SlowMultiplier       float32 `yaml:"slow_multiplier"`
	HyperspaceMultiplier float32 `yaml:"hyperspace_multiplier"`
}

// CameraConfig holds chase-camera tuning.
type CameraConfig struct {
	OffsetLerp  float32 `yaml:"offset_lerp"` // per-tick blend toward target offset
	LookLerp    float32 `yaml:"look_lerp"`   // slower blend for look lead/lag
	FlipForward bool    `yaml:"flip_forward"`
}

// CollisionConfig holds terrain collision tuning.
type CollisionConfig struct {
	Radius     float32 `yaml:"radius"`      // craft collision radius
	PushFactor float32 `yaml:"push_factor"` // >1, scales penetration correction
	ProbeRange float32 `yaml:"probe_range"` // max raycast distance
	HoverHeight float32 `yaml:"hover_height"`
	MaxSlopeDeg float32 `yaml:"max_slope_deg"`
}

// InputConfig holds device settings.
type InputConfig struct {
	Deadzone      float32 `yaml:"deadzone"`
	GamepadLayout string  `yaml:"gamepad_layout"` // force a layout, empty = auto
}

// HUDConfig holds terminal HUD settings.
type HUDConfig struct {
	RefreshHz int `yaml:"refresh_hz"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Flight: FlightConfig{
			BaseSpeed:            1000,
			RotationSpeed:        1.5,
			MaxDeltaTime:         0.1,
			BoostMultiplier:      5,
			SlowMultiplier:       0.5,
			HyperspaceMultiplier: 20,
		},
		Camera: CameraConfig{
			OffsetLerp:  0.1,
			LookLerp:    0.05,
			FlipForward: false,
		},
		Collision: CollisionConfig{
			Radius:      20,
			PushFactor:  1.2,
			ProbeRange:  400,
			HoverHeight: 40,
			MaxSlopeDeg: 55,
		},
		Input: InputConfig{
			Deadzone:      0.1,
			GamepadLayout: "",
		},
		HUD: HUDConfig{
			RefreshHz: 60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
