// Package main is the terminal flight demo: a tcell HUD over a live
// flight session, with keyboard and optional gamepad input.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/starflight/internal/config"
	"github.com/Faultbox/starflight/internal/flight"
	"github.com/Faultbox/starflight/internal/input"
	"github.com/Faultbox/starflight/internal/logger"
	"github.com/Faultbox/starflight/internal/terrain"
	smath "github.com/Faultbox/starflight/pkg/math"
)

var (
	flagGamepad = flag.Bool("gamepad", false, "Sample the first connected gamepad")
	flagTerrain = flag.Bool("terrain", false, "Fly over a generated heightfield with collision")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The HUD owns the terminal, so logs go to the file only.
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, false); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Starflight ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("flightsim error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("flightsim closed normally")
}

func run(cfg *config.Config) error {
	kb := input.NewKeyboard()
	samplers := []flight.Sampler{kb}

	if *flagGamepad {
		pad, err := input.OpenGamepad(0, cfg.Input.GamepadLayout, logger.Named("gamepad"))
		if err != nil {
			return fmt.Errorf("opening gamepad: %w", err)
		}
		defer pad.Close()
		samplers = append(samplers, pad)
	}

	mode := flight.ModeDesktop
	start := flight.IdentityPose()
	var resolver *terrain.Resolver

	if *flagTerrain {
		mode = flight.ModeTerrain
		mesh, err := terrain.GenerateHeightfield("demo", 8000, 64, 120, 1)
		if err != nil {
			return fmt.Errorf("generating terrain: %w", err)
		}
		idx := terrain.NewMeshIndex()
		idx.Add(mesh)
		resolver = terrain.NewResolver(idx, terrain.Config{
			Radius:      cfg.Collision.Radius,
			PushFactor:  cfg.Collision.PushFactor,
			ProbeRange:  cfg.Collision.ProbeRange,
			HoverHeight: cfg.Collision.HoverHeight,
			MaxSlopeDeg: cfg.Collision.MaxSlopeDeg,
		}, logger.Named("terrain"))
		start.Position = smath.Vec3{Y: 200}
	}

	session := flight.NewSession(flight.SessionConfig{
		Mode: mode,
		Tuning: flight.Tuning{
			BaseSpeed:     cfg.Flight.BaseSpeed,
			RotationSpeed: cfg.Flight.RotationSpeed,
			MaxDeltaTime:  cfg.Flight.MaxDeltaTime,
		},
		Speeds: flight.SpeedTable{
			Boost:      cfg.Flight.BoostMultiplier,
			Slow:       cfg.Flight.SlowMultiplier,
			Hyperspace: cfg.Flight.HyperspaceMultiplier,
		},
		Rig: flight.RigConfig{
			Offsets:     flight.DefaultChaseOffsets(),
			OffsetLerp:  cfg.Camera.OffsetLerp,
			LookLerp:    cfg.Camera.LookLerp,
			LookBias:    0.15,
			FlipForward: cfg.Camera.FlipForward,
		},
		Deadzone: cfg.Input.Deadzone,
		Start:    start,
		Resolver: resolver,
		Log:      logger.Named("flight"),
	}, samplers...)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	// Dedicated input goroutine; the main loop stays the only writer of
	// simulation state.
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	refresh := cfg.HUD.RefreshHz
	if refresh <= 0 {
		refresh = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(refresh))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					close(quit)
					return nil
				}
				handleKey(kb, ev)
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			session.Tick(dt)
			drawHUD(screen, session)
		}
	}
}

// handleKey maps terminal key events onto keyboard bindings. Terminals
// deliver no key-up, so every event is a momentary press.
func handleKey(kb *input.Keyboard, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		kb.Press(input.PitchDown) // stick forward, nose down
	case tcell.KeyDown:
		kb.Press(input.PitchUp)
	case tcell.KeyLeft:
		kb.Press(input.YawLeft)
	case tcell.KeyRight:
		kb.Press(input.YawRight)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			kb.Press(input.RollLeft)
		case 'd':
			kb.Press(input.RollRight)
		case 'w':
			kb.Press(input.PitchDown)
		case 's':
			kb.Press(input.PitchUp)
		case 'b':
			kb.Press(input.Boost)
		case 'v':
			kb.Press(input.Slow)
		case 'h':
			kb.Press(input.Hyperspace)
		case ' ':
			kb.Press(input.Fire)
		}
	}
}

type hudLine struct {
	text  string
	style tcell.Style
}

func drawHUD(screen tcell.Screen, session *flight.Session) {
	snap := session.Snapshot()
	style := tcell.StyleDefault
	accent := style.Foreground(tcell.ColorAqua)
	warn := style.Foreground(tcell.ColorYellow)

	screen.Clear()

	fwd := session.Pose().Forward()
	lines := []hudLine{
		{fmt.Sprintf("starflight  [%s]", session.Mode()), accent},
		{fmt.Sprintf("pos      %9.1f %9.1f %9.1f", snap.Position.X, snap.Position.Y, snap.Position.Z), style},
		{fmt.Sprintf("forward  %9.3f %9.3f %9.3f", fwd.X, fwd.Y, fwd.Z), style},
		{fmt.Sprintf("mode     %s  x%.1f", snap.Mode, snap.Multiplier), style},
	}
	if snap.GroundDistance >= 0 {
		lines = append(lines, hudLine{fmt.Sprintf("ground   %.1f", snap.GroundDistance), style})
	}
	if snap.Colliding {
		lines = append(lines, hudLine{"COLLISION", warn})
	}
	lines = append(lines, hudLine{"arrows/wasd fly  b boost  v slow  h hyperspace  q quit", style.Foreground(tcell.ColorGray)})

	for row, l := range lines {
		for col, r := range l.text {
			screen.SetContent(col+2, row+1, r, nil, l.style)
		}
	}
	screen.Show()
}
