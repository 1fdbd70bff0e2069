// Package config loads sampler run configuration from YAML.
//
// The file is decoded into a generic map first and then mapped onto Config
// with mapstructure, so unknown keys are reported instead of silently
// ignored. Values absent from the file keep their defaults. The merged
// result is checked with validator struct tags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cftp/backend"
	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/draws"
)

// ErrInvalid indicates a configuration that failed decoding or validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds every knob of a sampling run.
type Config struct {
	Lattice       int     `mapstructure:"lattice" yaml:"lattice" validate:"gte=1"`
	Beta          float64 `mapstructure:"beta" yaml:"beta" validate:"gte=0"`
	Samples       int     `mapstructure:"samples" yaml:"samples" validate:"gte=1"`
	MaxTime       int     `mapstructure:"max_time" yaml:"max_time" validate:"gte=1"`
	BurnIn        int     `mapstructure:"burn_in" yaml:"burn_in" validate:"gte=0"`
	Seed          uint64  `mapstructure:"seed" yaml:"seed"`
	Source        string  `mapstructure:"source" yaml:"source" validate:"oneof=chacha20 blake2b"`
	Backend       string  `mapstructure:"backend" yaml:"backend" validate:"required"`
	Workers       int     `mapstructure:"workers" yaml:"workers" validate:"gte=0"`
	CheckMonotone bool    `mapstructure:"check_monotone" yaml:"check_monotone"`
	LogLevel      string  `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Store         string  `mapstructure:"store" yaml:"store"`
	MetricsOut    string  `mapstructure:"metrics_out" yaml:"metrics_out"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Lattice:  8,
		Beta:     0.3,
		Samples:  100,
		MaxTime:  10000,
		BurnIn:   1000,
		Seed:     cftp.DefaultSeed,
		Source:   draws.DefaultKind,
		Backend:  backend.NameSerial,
		LogLevel: "info",
	}
}

var validate = validator.New()

// Load reads path over the defaults. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w: %w", path, ErrInvalid, err)
	}
	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Decode maps raw onto cfg, keeping fields raw does not mention.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Request converts the configuration into an exact-sampling request.
func (c Config) Request() cftp.Request {
	return cftp.Request{K: c.Lattice, Beta: c.Beta, N: c.Samples, MaxTime: c.MaxTime}
}

// ForwardRequest converts the configuration into a forward-chain request.
func (c Config) ForwardRequest() cftp.ForwardRequest {
	return cftp.ForwardRequest{K: c.Lattice, Beta: c.Beta, N: c.Samples, BurnIn: c.BurnIn}
}
