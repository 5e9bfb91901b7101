// Package config loads process-level settings from the environment.
// User-facing settings live in Fyne preferences, see store.ConfigStore.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePreferences = "preferences"
	StorageMemory      = "memory"
)

// Env holds settings read from ALARMIST_* variables
type Env struct {
	AppID    string `envconfig:"APP_ID" default:"io.github.borgmon.alarmist"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Storage  string `envconfig:"STORAGE" default:"preferences"`
}

// Load reads an optional .env file and then the environment
func Load() (Env, error) {
	_ = godotenv.Load(".env")

	var env Env
	if err := envconfig.Process("alarmist", &env); err != nil {
		return Env{}, err
	}

	switch env.Storage {
	case StoragePreferences, StorageMemory:
	default:
		return Env{}, fmt.Errorf("unsupported storage %q", env.Storage)
	}

	return env, nil
}
