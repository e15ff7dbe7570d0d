package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/mgomes/calcengine/calc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type commonFlags struct {
	configPath *string
	mode       *string
	precision  *int
	maxTokens  *int
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: fs.String("config", "", "path to a YAML config file"),
		mode:       fs.String("mode", "", "input policy: strict or lenient"),
		precision:  fs.Int("precision", -1, "decimal places in printed results (-1 for shortest)"),
		maxTokens:  fs.Int("max-tokens", 0, "maximum tokens per expression"),
	}
}

// resolve loads the config file and applies flags that were set explicitly.
func (c *commonFlags) resolve(fs *flag.FlagSet) (*Config, error) {
	cfg, err := loadConfig(*c.configPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *c.mode
		case "precision":
			cfg.Precision = *c.precision
		case "max-tokens":
			cfg.MaxTokens = *c.maxTokens
		}
	})
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type session struct {
	cfg     *Config
	log     *zap.Logger
	logFile io.Closer
	engine  *calc.Engine
}

func newSession(cfg *Config, console zapcore.WriteSyncer) (*session, error) {
	log, logFile, err := newLogger(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	sess := &session{cfg: cfg, log: log, logFile: logFile}

	engineCfg, err := cfg.engineConfig(log)
	if err != nil {
		_ = sess.close()
		return nil, err
	}
	engine, err := calc.NewEngine(engineCfg)
	if err != nil {
		_ = sess.close()
		return nil, err
	}
	sess.engine = engine
	return sess, nil
}

func (c *commonFlags) session(fs *flag.FlagSet) (*session, error) {
	cfg, err := c.resolve(fs)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, stderrSyncer())
}

// close flushes the logger and releases the log file. Sync errors are
// ignored.
func (s *session) close() error {
	_ = s.log.Sync()
	if s.logFile != nil {
		return s.logFile.Close()
	}
	return nil
}
