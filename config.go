package textscale

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNilAnchor is returned by Mount when a required anchor node is missing.
	ErrNilAnchor = errors.New("textscale: anchor node is nil")

	// ErrInvalidScaleRange is returned when ScaleRange is not a positive number.
	ErrInvalidScaleRange = errors.New("textscale: scale range must be positive")
)

// Config is supplied by the host when mounting a controller.
type Config struct {
	// ScaleRange is the nominal scale span in pixels. It bounds the
	// accumulator and sets the ceiling ScaleRange + root font size.
	ScaleRange float64 `yaml:"scale_range"`

	// StickSize is the width of the widget's track in pixels.
	StickSize float64 `yaml:"stick_size"`

	// ClassName is copied onto the widget root's Class.
	ClassName string `yaml:"class_name"`

	// Debug turns on scene debug logging in the example program.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the configuration used when the host supplies none.
func DefaultConfig() Config {
	return Config{
		ScaleRange: 30,
		StickSize:  60,
	}
}

// Validate checks the values the engine depends on.
func (c Config) Validate() error {
	if c.ScaleRange <= 0 || math.IsNaN(c.ScaleRange) || math.IsInf(c.ScaleRange, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidScaleRange, c.ScaleRange)
	}
	if c.StickSize < 0 {
		return fmt.Errorf("textscale: stick size must not be negative: got %v", c.StickSize)
	}
	return nil
}

// LoadConfig parses YAML over DefaultConfig and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("textscale: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("textscale: read config: %w", err)
	}
	return LoadConfig(data)
}
