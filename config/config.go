// Package config loads sandbox settings from an INI file layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/lixenwraith/pf-sandbox/audio"
	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/constants"
	"github.com/lixenwraith/pf-sandbox/input"
)

//go:embed default.ini
var defaultConfig []byte

// Config is the full settings tree
type Config struct {
	Match  MatchConfig  `ini:"Match"`
	Debug  DebugConfig  `ini:"Debug"`
	Audio  AudioConfig  `ini:"Audio"`
	Script ScriptConfig `ini:"Script"`

	// Path is the user file that was layered over the defaults, empty if none
	Path string `ini:"-"`
}

// MatchConfig selects rules and participants
type MatchConfig struct {
	TickIntervalMs int      `ini:"TickIntervalMs"`
	TicksPerSecond uint64   `ini:"TicksPerSecond"`
	StockCount     int      `ini:"StockCount"`
	TimeLimit      uint64   `ini:"TimeLimit"`
	LocalPlay      bool     `ini:"LocalPlay"`
	Players        int      `ini:"Players"`
	Stage          string   `ini:"Stage"`
	Fighters       []string `ini:"Fighters" delim:","`
	MaxFrames      uint64   `ini:"MaxFrames"`
}

// DebugConfig holds pause controller key names
type DebugConfig struct {
	FrameAdvance string `ini:"FrameAdvance"`
	Focus1       string `ini:"Focus1"`
	Focus2       string `ini:"Focus2"`
	Focus3       string `ini:"Focus3"`
	Focus4       string `ini:"Focus4"`
	Physics      string `ini:"Physics"`
	Input        string `ini:"Input"`
	Action       string `ini:"Action"`
	Frame        string `ini:"Frame"`
	Clear        string `ini:"Clear"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled bool    `ini:"Enabled"`
	Volume  float64 `ini:"Volume"`
}

// ScriptConfig selects the Lua rule set
type ScriptConfig struct {
	Enabled    bool   `ini:"Enabled"`
	RuleScript string `ini:"RuleScript"`
	Params     string `ini:"Params"`
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     false,
		// Params may be wrapped in double quotes
		UnescapeValueDoubleQuotes: true,
	}
}

// Load reads defaults and layers path over them; a missing path is not an error
func Load(path string) (*Config, error) {
	sources := []any{}
	used := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
			used = path
		} else if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[CONFIG] %s not found, using defaults", path)
		} else {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}
	return load(used, sources...)
}

// Parse layers raw INI data over the defaults
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return load("")
	}
	return load("", data)
}

func load(path string, others ...any) (*Config, error) {
	f, err := ini.LoadSources(loadOptions(), defaultConfig, others...)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	var c Config
	if err := f.MapTo(&c); err != nil {
		return nil, fmt.Errorf("config: map: %w", err)
	}
	c.Path = path
	fighters := c.Match.Fighters[:0]
	for _, name := range c.Match.Fighters {
		if name = strings.TrimSpace(name); name != "" {
			fighters = append(fighters, name)
		}
	}
	c.Match.Fighters = fighters
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	m := c.Match
	switch {
	case m.TickIntervalMs < 0:
		return fmt.Errorf("config: Match.TickIntervalMs must not be negative")
	case m.StockCount < 0:
		return fmt.Errorf("config: Match.StockCount must not be negative")
	case m.Players < 1 || m.Players > constants.MaxPlayers:
		return fmt.Errorf("config: Match.Players must be 1..%d, got %d", constants.MaxPlayers, m.Players)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("config: Audio.Volume must be 0..1, got %g", c.Audio.Volume)
	}
	return nil
}

// TickInterval returns the sleep between ticks
func (c *Config) TickInterval() time.Duration {
	if c.Match.TickIntervalMs == 0 {
		return constants.TickInterval
	}
	return time.Duration(c.Match.TickIntervalMs) * time.Millisecond
}

// Rules overlays non-zero match settings onto a package's rules
func (c *Config) Rules(base catalog.Rules) catalog.Rules {
	if c.Match.StockCount > 0 {
		base.StockCount = c.Match.StockCount
	}
	if c.Match.TimeLimit > 0 {
		base.TimeLimit = c.Match.TimeLimit
	}
	if c.Match.TicksPerSecond > 0 {
		base.TicksPerSecond = c.Match.TicksPerSecond
	}
	return base
}

// Bindings resolves debug key names over the default layout
func (c *Config) Bindings() (input.DebugBindings, error) {
	b := input.DefaultDebugBindings()
	d := c.Debug
	err := b.Override(map[string]string{
		"frame_advance": d.FrameAdvance,
		"focus1":        d.Focus1,
		"focus2":        d.Focus2,
		"focus3":        d.Focus3,
		"focus4":        d.Focus4,
		"physics":       d.Physics,
		"input":         d.Input,
		"action":        d.Action,
		"frame":         d.Frame,
		"clear":         d.Clear,
	})
	if err != nil {
		return b, fmt.Errorf("config: [Debug] %w", err)
	}
	return b, nil
}

// AudioCues converts the audio section for the cue player
func (c *Config) AudioCues() audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Enabled = c.Audio.Enabled
	cfg.Volume = c.Audio.Volume
	return cfg
}

// Selection resolves the stage and per-player fighters against pkg
// Players beyond the configured fighter list reuse the fighters in rotation
func (c *Config) Selection(pkg *catalog.Package) (fighters []int, stage int, err error) {
	stage, err = pkg.StageIndex(c.Match.Stage)
	if err != nil {
		return nil, 0, fmt.Errorf("config: Match.Stage: %w", err)
	}
	names := c.Match.Fighters
	if len(names) == 0 {
		fighterNames, _ := pkg.Names()
		if len(fighterNames) == 0 {
			return nil, 0, fmt.Errorf("config: package %q has no fighters", pkg.Name)
		}
		names = fighterNames[:1]
	}
	resolved := make([]int, len(names))
	for i, name := range names {
		if resolved[i], err = pkg.FighterIndex(name); err != nil {
			return nil, 0, fmt.Errorf("config: Match.Fighters: %w", err)
		}
	}
	fighters = make([]int, c.Match.Players)
	for i := range fighters {
		fighters[i] = resolved[i%len(resolved)]
	}
	return fighters, stage, nil
}
