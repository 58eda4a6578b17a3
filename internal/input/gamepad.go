package input

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/starflight/internal/flight"
)

// AxisLayout maps semantic axes to device axis indexes.
type AxisLayout struct {
	Pitch, Roll, Yaw int
	InvertPitch      bool
}

// ButtonLayout maps semantic buttons to device button indexes.
type ButtonLayout struct {
	Boost, Slow, Hyperspace, Fire int
}

// Layout is one device's axis/button index map.
type Layout struct {
	Name    string
	match   []string
	Axes    AxisLayout
	Buttons ButtonLayout
}

// Known layouts, resolved by substring match on the device name.
// The generic layout is the fallback for unrecognized devices.
var layouts = []Layout{
	{
		Name:    "xbox",
		match:   []string{"xbox", "x-box", "xinput"},
		Axes:    AxisLayout{Pitch: 1, Roll: 0, Yaw: 2, InvertPitch: true},
		Buttons: ButtonLayout{Boost: 0, Slow: 1, Hyperspace: 3, Fire: 5},
	},
	{
		Name:    "dualshock",
		match:   []string{"dualshock", "dualsense", "sony", "ps4", "ps5", "wireless controller"},
		Axes:    AxisLayout{Pitch: 1, Roll: 0, Yaw: 2, InvertPitch: true},
		Buttons: ButtonLayout{Boost: 1, Slow: 0, Hyperspace: 2, Fire: 7},
	},
	{
		Name:    "generic",
		Axes:    AxisLayout{Pitch: 1, Roll: 0, Yaw: 3},
		Buttons: ButtonLayout{Boost: 0, Slow: 1, Hyperspace: 2, Fire: 4},
	},
}

// LayoutFor resolves a device layout from its reported name. Unknown
// devices get the generic layout; resolution never fails.
func LayoutFor(deviceName string) Layout {
	name := strings.ToLower(deviceName)
	for _, l := range layouts {
		for _, m := range l.match {
			if strings.Contains(name, m) {
				return l
			}
		}
	}
	return layouts[len(layouts)-1]
}

// LayoutByName returns a layout by its exact name, for config overrides.
func LayoutByName(name string) (Layout, bool) {
	for _, l := range layouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// joystickDevice is the slice of the SDL joystick API the sampler needs.
// Tests substitute a fake.
type joystickDevice interface {
	Name() string
	NumAxes() int
	NumButtons() int
	Axis(axis int) int16
	Button(button int) byte
}

// Gamepad samples a joystick through a resolved layout. Hyperspace is a
// toggle: it flips on the press edge, never on sustained hold.
type Gamepad struct {
	joy    *sdl.Joystick
	dev    joystickDevice
	layout Layout

	prevHyperBtn bool
	hyperOn      bool

	log *zap.Logger
}

// OpenGamepad opens the joystick at index. forceLayout overrides the
// name-based layout resolution when non-empty.
func OpenGamepad(index int, forceLayout string, log *zap.Logger) (*Gamepad, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := sdl.InitSubSystem(sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("initializing joystick subsystem: %w", err)
	}
	if sdl.NumJoysticks() <= index {
		return nil, fmt.Errorf("no joystick at index %d", index)
	}
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		return nil, fmt.Errorf("opening joystick %d: %s", index, sdl.GetError())
	}

	g := newGamepad(joy, joy, forceLayout, log)
	log.Info("gamepad connected",
		zap.String("device", joy.Name()),
		zap.String("layout", g.layout.Name))
	return g, nil
}

func newGamepad(joy *sdl.Joystick, dev joystickDevice, forceLayout string, log *zap.Logger) *Gamepad {
	if log == nil {
		log = zap.NewNop()
	}
	layout := LayoutFor(dev.Name())
	if forceLayout != "" {
		if forced, ok := LayoutByName(forceLayout); ok {
			layout = forced
		} else {
			log.Warn("unknown gamepad layout, using auto-detected",
				zap.String("requested", forceLayout))
		}
	}
	return &Gamepad{joy: joy, dev: dev, layout: layout, log: log}
}

// Sample implements flight.Sampler.
func (g *Gamepad) Sample() flight.RawControls {
	var raw flight.RawControls

	raw.Pitch = g.axis(g.layout.Axes.Pitch)
	if g.layout.Axes.InvertPitch {
		raw.Pitch = -raw.Pitch
	}
	raw.Roll = g.axis(g.layout.Axes.Roll)
	raw.Yaw = g.axis(g.layout.Axes.Yaw)

	raw.Boost = g.button(g.layout.Buttons.Boost)
	raw.Slow = g.button(g.layout.Buttons.Slow)
	raw.Fire = g.button(g.layout.Buttons.Fire)

	hyperBtn := g.button(g.layout.Buttons.Hyperspace)
	if risingEdge(g.prevHyperBtn, hyperBtn) {
		g.hyperOn = !g.hyperOn
	}
	g.prevHyperBtn = hyperBtn
	raw.Hyperspace = g.hyperOn

	return raw
}

// axis reads a device axis normalized to [-1, 1]. Missing indexes read
// as zero; an unrecognized device must never panic the sampler.
func (g *Gamepad) axis(index int) float32 {
	if index < 0 || index >= g.dev.NumAxes() {
		return 0
	}
	return normAxis(g.dev.Axis(index))
}

func (g *Gamepad) button(index int) bool {
	if index < 0 || index >= g.dev.NumButtons() {
		return false
	}
	return g.dev.Button(index) != 0
}

// Close releases the joystick.
func (g *Gamepad) Close() {
	if g.joy != nil {
		g.joy.Close()
		g.joy = nil
	}
}

// normAxis maps a raw int16 axis to [-1, 1].
func normAxis(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}
	return float32(v) / 32767
}

// risingEdge reports a false-to-true transition between ticks.
func risingEdge(prev, cur bool) bool {
	return cur && !prev
}
