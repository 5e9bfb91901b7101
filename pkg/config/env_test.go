package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	env, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "io.github.borgmon.alarmist", env.AppID)
	assert.Equal(t, "info", env.LogLevel)
	assert.Equal(t, StoragePreferences, env.Storage)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ALARMIST_LOG_LEVEL", "debug")
	t.Setenv("ALARMIST_STORAGE", StorageMemory)

	env, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", env.LogLevel)
	assert.Equal(t, StorageMemory, env.Storage)
}

func TestLoad_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("ALARMIST_STORAGE", "redis")

	_, err := Load()
	assert.Error(t, err)
}
