package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("logfile", "", "Write logs to file")
	flagSpeed    = flag.Float64("speed", 0, "Base forward speed override")
	flagHover    = flag.Float64("hover", 0, "Hover height override")
	flagDeadzone = flag.Float64("deadzone", 0, "Gamepad axis deadzone override")
	flagLayout   = flag.String("layout", "", "Force a gamepad button layout")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSpeed > 0 {
		cfg.Flight.BaseSpeed = float32(*flagSpeed)
	}
	if *flagHover > 0 {
		cfg.Collision.HoverHeight = float32(*flagHover)
	}
	if *flagDeadzone > 0 {
		cfg.Input.Deadzone = float32(*flagDeadzone)
	}
	if *flagLayout != "" {
		cfg.Input.GamepadLayout = *flagLayout
	}
}
