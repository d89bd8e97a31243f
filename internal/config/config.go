// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig describes the simulated arena.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Grid   float64 `yaml:"grid"`
	Ground string  `yaml:"ground"`
}

// TraceConfig controls the drawn trail of one robot.
type TraceConfig struct {
	Enabled   bool `yaml:"enabled"`
	MaxLength int  `yaml:"max_length"`
}

// DriveConfig gives a robot a scripted differential drive.
type DriveConfig struct {
	Forward float64 `yaml:"forward"` // units per second
	Turn    float64 `yaml:"turn"`    // radians per second
}

// RobotConfig defines one robot's starting pose and appearance.
type RobotConfig struct {
	Name   string      `yaml:"name"`
	Color  string      `yaml:"color"`
	X      float64     `yaml:"x"`
	Y      float64     `yaml:"y"`
	A      float64     `yaml:"a"`
	Radius float64     `yaml:"radius"`
	Trace  TraceConfig `yaml:"trace"`
	Drive  DriveConfig `yaml:"drive"`
}

// RecordConfig controls the recording session.
type RecordConfig struct {
	Step     float64 `yaml:"step"`     // simulated seconds per tick
	Duration float64 `yaml:"duration"` // total simulated seconds
}

// PlaybackConfig controls auto-advance playback.
type PlaybackConfig struct {
	RateS float64 `yaml:"rate_s"` // wall-clock seconds between frames
}

// ExportConfig holds animated-image defaults.
type ExportConfig struct {
	Loop    int `yaml:"loop"`
	FrameMS int `yaml:"frame_ms"`
}

// Config is the root configuration for the world, robots, and recorder.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Robots   []RobotConfig  `yaml:"robots"`
	Record   RecordConfig   `yaml:"record"`
	Playback PlaybackConfig `yaml:"playback"`
	Export   ExportConfig   `yaml:"export"`
}

// Load reads a YAML config, validates it against a CUE schema when
// schemaPath is non-empty, and fills in defaults.
func Load(configPath, schemaPath string) (*Config, error) {
	if schemaPath != "" {
		if err := ValidateWithCue(configPath, schemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if len(cfg.Robots) == 0 {
		return nil, fmt.Errorf("config %s: no robots defined", configPath)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.World.Width <= 0 {
		c.World.Width = 400
	}
	if c.World.Height <= 0 {
		c.World.Height = 300
	}
	if c.World.Grid < 0 {
		c.World.Grid = 0
	}
	if c.World.Ground == "" {
		c.World.Ground = "#f8f8f0"
	}
	if c.Record.Step <= 0 {
		c.Record.Step = 0.1
	}
	if c.Record.Duration <= 0 {
		c.Record.Duration = 10
	}
	if c.Playback.RateS <= 0 {
		c.Playback.RateS = 0.5
	}
	if c.Export.FrameMS <= 0 {
		c.Export.FrameMS = 100
	}
	for i := range c.Robots {
		r := &c.Robots[i]
		if r.Radius <= 0 {
			r.Radius = 8
		}
		if r.Color == "" {
			r.Color = "#cc3333"
		}
		if r.Trace.Enabled && r.Trace.MaxLength <= 0 {
			r.Trace.MaxLength = 20
		}
	}
}
