// Copyright 2024-2026 Aiku AI

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	up "go.mau.fi/util/configupgrade"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/vinceyyy/puppet-padlocal/pkg/connector"
)

const loggingExample = `
logging:
    # trace, debug, info, warn or error
    level: info
    # json or console
    format: json
    # Log file path. Empty logs to stderr.
    file: ""
    # Rotation settings for file, in megabytes and days.
    max_size: 100
    max_backups: 3
    max_age: 28
    compress: false
`

// Config is the connector config plus a logging block.
type Config struct {
	Connector connector.Config `yaml:"-"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// LoggingConfig controls where and how the CLI writes its logs.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func upgradeLogging(helper up.Helper) {
	helper.Copy(up.Str, "logging", "level")
	helper.Copy(up.Str, "logging", "format")
	helper.Copy(up.Str, "logging", "file")
	helper.Copy(up.Int, "logging", "max_size")
	helper.Copy(up.Int, "logging", "max_backups")
	helper.Copy(up.Int, "logging", "max_age")
	helper.Copy(up.Bool, "logging", "compress")
}

// loadConfig reads the config at path merged onto the built-in defaults. An
// empty path uses the defaults alone.
func loadConfig(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var base yaml.Node
	if err := yaml.Unmarshal([]byte(connector.ExampleConfig+loggingExample), &base); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}
	if len(data) > 0 {
		var user yaml.Node
		if err := yaml.Unmarshal(data, &user); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if len(user.Content) > 0 {
			helper := up.NewHelper(&base, &user)
			connector.ConfigUpgrader().DoUpgrade(helper)
			upgradeLogging(helper)
		}
	}

	var cfg Config
	if err := base.Decode(&cfg.Connector); err != nil {
		return nil, fmt.Errorf("failed to decode connector config: %w", err)
	}
	if err := base.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode logging config: %w", err)
	}
	if err := cfg.Connector.PostProcess(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// newLogger builds the CLI logger. Without a file the logger writes to
// fallback. The returned func closes the log file, if any.
func (c LoggingConfig) newLogger(fallback io.Writer) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := fallback
	closeFn := func() {}
	if c.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		out = rotator
		closeFn = func() { _ = rotator.Close() }
	}

	switch c.Format {
	case "", "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		closeFn()
		return zerolog.Nop(), nil, fmt.Errorf("unknown log format %q", c.Format)
	}

	log := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return log, closeFn, nil
}
