package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "mwt", configBaseName)
	assert.Equal(t, "mwt.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "output", outputFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", parallelFlagName)
	assert.Equal(t, "expand.parallel", parallelConfigKey)
	assert.Equal(t, "expand.mode", modeConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "presets", presetsConfigKey)
	assert.Equal(t, "mwt.patch", defaultDiffFile)
	assert.Equal(t, "MWT", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestDebounceInterval(t *testing.T) {
	t.Cleanup(func() { viper.Set(debounceConfigKey, defaultDebounce.String()) })

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", defaultDebounce},
		{"50ms", 50 * time.Millisecond},
		{"1s", time.Second},
		{"75", 75 * time.Millisecond},
		{"-1s", defaultDebounce},
		{"soon", defaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			viper.Set(debounceConfigKey, tt.value)
			assert.Equal(t, tt.want, debounceInterval())
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	configureLogger(t.TempDir()+"/mwt.log", true)

	assert.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}
