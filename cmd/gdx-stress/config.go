package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/interpolation"
	"gopkg.in/yaml.v3"
)

var errInvalidConfig = errors.New("invalid stress config")

// Config describes one stress run. Flags override values read from a file.
type Config struct {
	Duration time.Duration `yaml:"duration"`
	Seed     int64         `yaml:"seed"`

	// Roots is the number of hierarchy roots, each carrying Depth levels of
	// Fanout children.
	Roots  int `yaml:"roots"`
	Depth  int `yaml:"depth"`
	Fanout int `yaml:"fanout"`

	// Every root tweens its translation with Easing over TweenDuration.
	Easing        string  `yaml:"easing"`
	TweenDuration float32 `yaml:"tween_duration"`
	PingPong      bool    `yaml:"pingpong"`

	// One root in AnimatedEvery also plays a skeletal animation.
	AnimatedEvery int `yaml:"animated_every"`
	Joints        int `yaml:"joints"`

	// Moves is the number of one-shot Moveables started per tick.
	Moves int `yaml:"moves"`

	// Simulations per tick; each one is rolled back.
	Simulations int `yaml:"simulations"`

	GCPauseMetrics bool `yaml:"gc_pause_metrics"`
}

func DefaultConfig() Config {
	return Config{
		Duration:      10 * time.Second,
		Seed:          1,
		Roots:         1000,
		Depth:         3,
		Fanout:        2,
		Easing:        "sine",
		TweenDuration: 2,
		PingPong:      true,
		AnimatedEvery: 10,
		Joints:        8,
		Moves:         16,
		Simulations:   16,
	}
}

// LoadConfig decodes the YAML file at path over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Interpolation resolves Easing.
func (c Config) Interpolation() (interpolation.Interpolation, error) {
	return interpolation.ByName(c.Easing)
}

// Entities is the number of entities the hierarchy will hold.
func (c Config) Entities() int {
	perRoot, level := 1, 1
	for range c.Depth {
		level *= c.Fanout
		perRoot += level
	}
	return c.Roots * perRoot
}

func (c Config) Validate() error {
	switch {
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", errInvalidConfig)
	case c.Roots <= 0:
		return fmt.Errorf("%w: roots must be positive", errInvalidConfig)
	case c.Depth < 0 || c.Fanout < 0:
		return fmt.Errorf("%w: depth and fanout must not be negative", errInvalidConfig)
	case c.Depth >= ecs.MaxHierarchyDepth:
		return fmt.Errorf("%w: depth must stay below %d", errInvalidConfig, ecs.MaxHierarchyDepth)
	case c.Depth > 0 && c.Fanout == 0:
		return fmt.Errorf("%w: depth needs a fanout", errInvalidConfig)
	case c.AnimatedEvery < 0 || c.Moves < 0 || c.Simulations < 0:
		return fmt.Errorf("%w: counts must not be negative", errInvalidConfig)
	case c.AnimatedEvery > 0 && c.Joints <= 0:
		return fmt.Errorf("%w: animated roots need joints", errInvalidConfig)
	}
	if _, err := c.Interpolation(); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	return nil
}
