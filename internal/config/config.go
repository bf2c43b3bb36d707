// Package config loads service settings from built-in defaults, an optional
// YAML file, an optional .env file and the process environment, in that
// order of increasing precedence.
package config

import (
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v6"
	"github.com/ghodss/yaml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// ConfigEnvVar may hold the whole YAML document instead of a file.
const ConfigEnvVar = "STATEMENT_CONFIG"

type Config struct {
	Server   ServerConfig   `json:"server"`
	Analysis AnalysisConfig `json:"analysis"`
	Log      LogConfig      `json:"log"`
}

type ServerConfig struct {
	Addr        string `json:"addr" env:"STATEMENT_ADDR"`
	BodyLimitMB int    `json:"bodyLimitMB" env:"STATEMENT_BODY_LIMIT_MB"`
	StaticDir   string `json:"staticDir" env:"STATEMENT_STATIC_DIR"`
}

type AnalysisConfig struct {
	MinYear        int `json:"minYear" env:"STATEMENT_MIN_YEAR"`
	TopMerchants   int `json:"topMerchants" env:"STATEMENT_TOP_MERCHANTS"`
	WeeklySpanDays int `json:"weeklySpanDays" env:"STATEMENT_WEEKLY_SPAN_DAYS"`
	// YearlySpanDays switches to yearly buckets above this span. 0 keeps
	// monthly buckets for any span.
	YearlySpanDays int `json:"yearlySpanDays" env:"STATEMENT_YEARLY_SPAN_DAYS"`
	// Categories adds keywords per category name, e.g. {"Bills": ["jio"]}.
	Categories map[string][]string `json:"categories"`
}

type LogConfig struct {
	Level  string `json:"level" env:"STATEMENT_LOG_LEVEL"`
	Format string `json:"format" env:"STATEMENT_LOG_FORMAT"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8000",
			BodyLimitMB: 32,
		},
		Analysis: AnalysisConfig{
			MinYear:        2010,
			TopMerchants:   5,
			WeeklySpanDays: 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env file is
// not an error, a missing YAML file named explicitly is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	fileCfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	envCfg := Config{}
	if err := env.Parse(&envCfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := mergo.Merge(&envCfg, *fileCfg); err != nil {
		return nil, errors.Wrap(err, "failed to merge config file")
	}
	if err := mergo.Merge(&envCfg, Defaults()); err != nil {
		return nil, errors.Wrap(err, "failed to merge defaults")
	}
	return &envCfg, nil
}

func readFile(path string) (*Config, error) {
	cfg := &Config{}

	var raw []byte
	if rawEnv := os.Getenv(ConfigEnvVar); rawEnv != "" {
		raw = []byte(rawEnv)
	} else if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		raw = b
	}
	if len(raw) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return cfg, nil
}

// BodyLimitBytes is the upload limit in bytes.
func (c *Config) BodyLimitBytes() int {
	return c.Server.BodyLimitMB * 1024 * 1024
}
