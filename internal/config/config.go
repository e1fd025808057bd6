package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/mmrzaf/ddlgen/internal/registry"
	"github.com/mmrzaf/ddlgen/internal/timeutil"
)

// Config is read from environment variables, optionally layered over a YAML
// file. Command-line flags override both.
type Config struct {
	LogLevel  string `yaml:"log_level" env:"DDLGEN_LOG_LEVEL" env-default:"info"`
	Rows      string `yaml:"rows" env:"DDLGEN_ROWS" env-default:"10"`
	Workers   int    `yaml:"workers" env:"DDLGEN_WORKERS" env-default:"1"`
	BatchSize int    `yaml:"batch_size" env:"DDLGEN_BATCH_SIZE" env-default:"1000"`

	Generation GenerationConfig `yaml:"generation"`
	Target     TargetConfig     `yaml:"target"`
}

// GenerationConfig overrides the parameters of rules that take no width
// from the type clause.
type GenerationConfig struct {
	TextMinLen    int     `yaml:"text_min_len" env:"DDLGEN_TEXT_MIN_LEN" env-default:"1"`
	TextMaxLen    int     `yaml:"text_max_len" env:"DDLGEN_TEXT_MAX_LEN" env-default:"10"`
	DoubleMin     float64 `yaml:"double_min" env:"DDLGEN_DOUBLE_MIN" env-default:"1.0"`
	DoubleMax     float64 `yaml:"double_max" env:"DDLGEN_DOUBLE_MAX" env-default:"1000.0"`
	DateTimeStart string  `yaml:"datetime_start" env:"DDLGEN_DATETIME_START" env-default:"2024-01-01T00:00:00"`
	DateTimeEnd   string  `yaml:"datetime_end" env:"DDLGEN_DATETIME_END" env-default:"2026-01-01T00:00:00"`
}

type TargetConfig struct {
	Kind string `yaml:"kind" env:"DDLGEN_TARGET_KIND"`
	DSN  string `yaml:"dsn" env:"DDLGEN_TARGET_DSN"`
}

// Load reads the environment, or path with environment overrides when path
// is set.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// RegistryDefaults converts the generation settings into resolver defaults.
func (c *Config) RegistryDefaults(now time.Time) (registry.Defaults, error) {
	g := c.Generation
	start, err := timeutil.ParseBound(g.DateTimeStart, now)
	if err != nil {
		return registry.Defaults{}, fmt.Errorf("datetime_start: %w", err)
	}
	end, err := timeutil.ParseBound(g.DateTimeEnd, now)
	if err != nil {
		return registry.Defaults{}, fmt.Errorf("datetime_end: %w", err)
	}
	if end.Before(start) {
		return registry.Defaults{}, fmt.Errorf("datetime_end (%s) is before datetime_start (%s)", g.DateTimeEnd, g.DateTimeStart)
	}
	if g.TextMinLen < 0 || g.TextMaxLen < g.TextMinLen {
		return registry.Defaults{}, fmt.Errorf("invalid text length bounds %d..%d", g.TextMinLen, g.TextMaxLen)
	}
	if g.DoubleMax < g.DoubleMin {
		return registry.Defaults{}, fmt.Errorf("invalid double bounds %v..%v", g.DoubleMin, g.DoubleMax)
	}
	return registry.Defaults{
		TextMinLen:    g.TextMinLen,
		TextMaxLen:    g.TextMaxLen,
		DateTimeStart: start,
		DateTimeEnd:   end,
		DoubleMin:     g.DoubleMin,
		DoubleMax:     g.DoubleMax,
	}, nil
}
