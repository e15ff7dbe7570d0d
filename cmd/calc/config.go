package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/calcengine/calc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const configEnvVar = "CALC_CONFIG"

// Config is the on-disk configuration for the calc binary.
type Config struct {
	Mode        string    `yaml:"mode"` // strict, lenient
	MaxTokens   int       `yaml:"max_tokens"`
	Precision   int       `yaml:"precision"` // -1 for shortest representation
	HistoryFile string    `yaml:"history_file"`
	Log         LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console, json
	Output     string `yaml:"output"` // stderr, file, both
	FilePath   string `yaml:"file_path"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

func defaultConfig() *Config {
	return &Config{
		Mode:      calc.ModeStrict.String(),
		MaxTokens: 4096,
		Precision: -1,
		Log: LogConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calc", "config.yaml")
}

// loadConfig reads path, falling back to $CALC_CONFIG and then the user
// config directory. Only an explicitly requested file has to exist.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(configEnvVar)
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := calc.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d", c.MaxTokens)
	}
	if c.Precision < -1 || c.Precision > calc.MaxPrecision {
		return fmt.Errorf("precision must be between -1 and %d, got %d", calc.MaxPrecision, c.Precision)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Output) {
	case "", "stderr", "both":
	case "file":
		if c.Log.FilePath == "" {
			return errors.New("log output \"file\" requires file_path")
		}
	default:
		return fmt.Errorf("unknown log output %q", c.Log.Output)
	}
	return nil
}

func (c *Config) engineConfig(log *zap.Logger) (calc.Config, error) {
	mode, err := calc.ParseMode(c.Mode)
	if err != nil {
		return calc.Config{}, err
	}
	return calc.Config{Mode: mode, MaxTokens: c.MaxTokens, Logger: log}, nil
}

func (c *Config) format(v float64) string {
	return calc.FormatNumberPrecision(v, c.Precision)
}
