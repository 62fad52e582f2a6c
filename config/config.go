// Package config loads and validates the compositor's TOML config
// file. Grounded on noisetorch-NoiseTorch's config struct/defaults/
// validate shape, using github.com/BurntSushi/toml for parsing.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GeneticxCln/Axiom-sub000/internal/input"
	"github.com/GeneticxCln/Axiom-sub000/internal/scene"
	"github.com/GeneticxCln/Axiom-sub000/internal/tiling"
	"github.com/GeneticxCln/Axiom-sub000/internal/window"
	"github.com/GeneticxCln/Axiom-sub000/internal/workspace"
)

// Input holds keyboard/pointer tuning.
type Input struct {
	RepeatRate  int  `toml:"repeat_rate"`
	RepeatDelay int  `toml:"repeat_delay_ms"`
	AutoFocus   bool `toml:"auto_focus"`
}

// Tiling holds the default per-workspace tiling parameters (§4.2);
// individual workspaces may diverge from these at runtime, but every
// new workspace starts here.
type Tiling struct {
	Algorithm   string  `toml:"algorithm"` // "master-stack", "grid", "spiral", "binary-tree"
	MasterRatio float64 `toml:"master_ratio"`
	MasterCount int     `toml:"master_count"`
	Gap         uint32  `toml:"gap"`
	Border      uint32  `toml:"border"`
}

// Params converts the Tiling section into a workspace.Params, the
// value every newly-created workspace starts from (see
// workspace.Manager.SetDefaults). An unrecognized Algorithm string
// falls back to master-stack rather than failing startup.
func (t Tiling) Params() workspace.Params {
	p := workspace.DefaultParams()
	switch t.Algorithm {
	case "master-stack":
		p.Algorithm = tiling.MasterStack
	case "grid":
		p.Algorithm = tiling.Grid
	case "spiral":
		p.Algorithm = tiling.Spiral
	case "binary-tree":
		p.Algorithm = tiling.BinaryTree
	}
	if t.MasterRatio > 0 {
		p.MasterRatio = t.MasterRatio
	}
	if t.MasterCount > 0 {
		p.MasterCount = t.MasterCount
	}
	p.Gap = t.Gap
	p.Border = t.Border
	return p
}

// Appearance holds decoration color/size defaults.
type Appearance struct {
	TitleBarHeight  uint32 `toml:"title_bar_height"`
	BorderWidth     uint32 `toml:"border_width"`
	FocusedColor    string `toml:"focused_color"`
	UnfocusedColor  string `toml:"unfocused_color"`
	TitleBarColor   string `toml:"title_bar_color"`
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex string into a
// scene.Color, defaulting alpha to fully opaque when omitted.
func ParseColor(hex string) (scene.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return scene.Color{}, fmt.Errorf("config: invalid color %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return scene.Color{}, fmt.Errorf("config: invalid color %q: %w", hex, err)
	}
	c := scene.Color{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	v >>= 8
	c.G = uint8(v)
	v >>= 8
	c.R = uint8(v)
	return c, nil
}

// Theme converts the Appearance section into a window.Theme. A field
// that fails to parse (or is zero) falls back to window.DefaultTheme's
// value rather than failing startup over a malformed color string.
func (a Appearance) Theme() window.Theme {
	th := window.DefaultTheme()
	if a.TitleBarHeight > 0 {
		th.TitleBarHeight = a.TitleBarHeight
	}
	if a.BorderWidth > 0 {
		th.BorderWidth = a.BorderWidth
	}
	if c, err := ParseColor(a.FocusedColor); err == nil {
		th.Focused = c
	}
	if c, err := ParseColor(a.UnfocusedColor); err == nil {
		th.Unfocused = c
	}
	if c, err := ParseColor(a.TitleBarColor); err == nil {
		th.TitleBarColor = c
	}
	return th
}

// Snapping holds the window-snapping engine's thresholds and
// magnetism strength (§4.5). Magnetism is the interpolation weight of
// each pull toward a snap target: 1.0 snaps flush immediately, lower
// values glide.
type Snapping struct {
	Threshold        int32   `toml:"threshold"`
	ReleaseThreshold int32   `toml:"release_threshold"`
	Magnetism        float64 `toml:"magnetism"`
}

// Workspaces holds the count of addressable tags/workspaces (§4.4);
// bounded to tags.Count by Validate, since the bitmask cannot grow
// past it. PersistentLayout makes workspaces keep their runtime layout
// changes across tag switches.
type Workspaces struct {
	Count            int  `toml:"count"`
	PersistentLayout bool `toml:"persistent_layout"`
}

// MacroStep is one entry of a macro keybinding's inline step list.
type MacroStep struct {
	Action  string `toml:"action"`
	Param   int    `toml:"param"`
	Command string `toml:"command"`
}

// Keybinding is one [[keybindings]] table entry, converted into an
// input.Binding at startup.
type Keybinding struct {
	Mods     string      `toml:"mods"` // "+"-joined: "super+shift"
	Key      string      `toml:"key"`  // a single character or a named key
	Action   string      `toml:"action"`
	Param    int         `toml:"param"`
	Command  string      `toml:"command"`
	Macro    []MacroStep `toml:"macro"`
	Disabled bool        `toml:"disabled"`
}

// ParseModifiers turns a "+"-joined modifier string into the input
// package's bitmask.
func ParseModifiers(spec string) (input.Modifier, error) {
	var mods input.Modifier
	if spec == "" {
		return 0, nil
	}
	for _, part := range strings.Split(spec, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "shift":
			mods |= input.ModShift
		case "ctrl", "control":
			mods |= input.ModControl
		case "alt", "mod1":
			mods |= input.ModAlt
		case "super", "mod4", "logo":
			mods |= input.ModSuper
		default:
			return 0, fmt.Errorf("config: unknown modifier %q", part)
		}
	}
	return mods, nil
}

// namedKeys maps the handful of non-printable key names a keybinding
// file may use onto their xkbcommon keysym values; single-character
// keys are their own keysym.
var namedKeys = map[string]input.KeySym{
	"tab":       0xff09,
	"return":    0xff0d,
	"enter":     0xff0d,
	"escape":    0xff1b,
	"space":     ' ',
	"backspace": 0xff08,
	"delete":    0xffff,
	"up":        0xff52,
	"down":      0xff54,
	"left":      0xff51,
	"right":     0xff53,
}

// ParseKeySym resolves a config key name into a keysym.
func ParseKeySym(name string) (input.KeySym, error) {
	name = strings.TrimSpace(name)
	if sym, ok := namedKeys[strings.ToLower(name)]; ok {
		return sym, nil
	}
	runes := []rune(strings.ToLower(name))
	if len(runes) == 1 {
		return input.KeySym(runes[0]), nil
	}
	return 0, fmt.Errorf("config: unknown key %q", name)
}

// Binding converts the entry into an input.Binding.
func (k Keybinding) Binding() (input.Binding, error) {
	mods, err := ParseModifiers(k.Mods)
	if err != nil {
		return input.Binding{}, err
	}
	key, err := ParseKeySym(k.Key)
	if err != nil {
		return input.Binding{}, err
	}
	if k.Action == "" {
		return input.Binding{}, fmt.Errorf("config: keybinding %q has no action", k.Key)
	}
	b := input.Binding{
		Mods:    mods,
		Key:     key,
		Action:  input.Action(k.Action),
		Param:   k.Param,
		Command: k.Command,
		Enabled: !k.Disabled,
	}
	for _, step := range k.Macro {
		b.Macro = append(b.Macro, input.MacroStep{
			Action:  input.Action(step.Action),
			Param:   step.Param,
			Command: step.Command,
		})
	}
	return b, nil
}

// Config is the top-level, fully-populated configuration.
type Config struct {
	Input       Input        `toml:"input"`
	Tiling      Tiling       `toml:"tiling"`
	Appearance  Appearance   `toml:"appearance"`
	Snapping    Snapping     `toml:"snapping"`
	Workspaces  Workspaces   `toml:"workspaces"`
	Keybindings []Keybinding `toml:"keybindings"`
}

// Default returns the built-in configuration used when no config file
// is present or a file omits a section.
func Default() Config {
	return Config{
		Input: Input{RepeatRate: 25, RepeatDelay: 600, AutoFocus: true},
		Tiling: Tiling{
			Algorithm:   "master-stack",
			MasterRatio: 0.6,
			MasterCount: 1,
			Gap:         0,
			Border:      1,
		},
		Appearance: Appearance{
			TitleBarHeight: 30,
			BorderWidth:    2,
			FocusedColor:   "#5e81ac",
			UnfocusedColor: "#3b4252",
			TitleBarColor:  "#2e3440",
		},
		Snapping: Snapping{Threshold: 12, ReleaseThreshold: 24, Magnetism: 1.0},
		Workspaces: Workspaces{Count: 9},
	}
}

// Load reads and parses path, overlaying it onto Default() so an
// incomplete file still produces a fully valid Config. A missing file
// is not an error: Default() alone is returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate clamps out-of-range values to sane bounds rather than
// rejecting the whole file over one bad field, matching noisetorch's
// config.go tolerance for partial/older config files — except for
// genuinely unusable values (e.g. a workspace count of zero), which
// are reported as errors.
func (c *Config) Validate() error {
	if c.Workspaces.Count <= 0 {
		return fmt.Errorf("config: workspaces.count must be positive, got %d", c.Workspaces.Count)
	}
	if c.Workspaces.Count > 9 {
		c.Workspaces.Count = 9
	}
	if c.Tiling.MasterRatio < 0.1 {
		c.Tiling.MasterRatio = 0.1
	}
	if c.Tiling.MasterRatio > 0.9 {
		c.Tiling.MasterRatio = 0.9
	}
	if c.Tiling.MasterCount < 1 {
		c.Tiling.MasterCount = 1
	}
	if c.Tiling.MasterCount > 10 {
		c.Tiling.MasterCount = 10
	}
	switch c.Tiling.Algorithm {
	case "master-stack", "grid", "spiral", "binary-tree":
	default:
		c.Tiling.Algorithm = "master-stack"
	}
	if c.Input.RepeatRate <= 0 {
		c.Input.RepeatRate = 25
	}
	if c.Input.RepeatDelay <= 0 {
		c.Input.RepeatDelay = 600
	}
	if c.Snapping.Magnetism <= 0 || c.Snapping.Magnetism > 1 {
		c.Snapping.Magnetism = 1.0
	}
	if len(c.Keybindings) > input.MaxBindings {
		return fmt.Errorf("config: %d keybindings, max is %d", len(c.Keybindings), input.MaxBindings)
	}
	return nil
}
