// Copyright 2024-2026 Aiku AI

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinceyyy/puppet-padlocal/pkg/connector"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "announcement@all", cfg.Connector.MentionAll)
	assert.True(t, cfg.Connector.ExpandMentionAll)
	assert.Equal(t, connector.RoomCacheMemory, cfg.Connector.RoomCache.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 100, cfg.Logging.MaxSize)
}

func TestParseConfig_Overrides(t *testing.T) {
	t.Parallel()
	cfg, err := parseConfig([]byte(`
mention_all: "@all"
expand_mention_all: false
logging:
  level: debug
  format: console
`))
	require.NoError(t, err)
	assert.Equal(t, "@all", cfg.Connector.MentionAll)
	assert.False(t, cfg.Connector.ExpandMentionAll)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Logging.MaxBackups, "unset keys keep their defaults")
}

func TestParseConfig_Invalid(t *testing.T) {
	t.Parallel()
	_, err := parseConfig([]byte("room_cache:\n  backend: redis\n  redis_addr: \"\"\n"))
	assert.Error(t, err)

	_, err = parseConfig([]byte("{not yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("avatar_timeout: 3\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Connector.AvatarTimeout)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, closeLog, err := LoggingConfig{Level: "warn"}.newLogger(&buf)
	require.NoError(t, err)
	defer closeLog()

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	_, _, err = LoggingConfig{Level: "loud"}.newLogger(&buf)
	assert.Error(t, err)
	_, _, err = LoggingConfig{Format: "xml"}.newLogger(&buf)
	assert.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mapper.log")
	log, closeLog, err := LoggingConfig{File: path, MaxSize: 1}.newLogger(nil)
	require.NoError(t, err)
	log.Info().Msg("to file")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
