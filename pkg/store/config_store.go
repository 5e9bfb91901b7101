package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/alarmist/pkg/models"
)

// ConfigStore handles settings persistence using Fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(prefs fyne.Preferences) *ConfigStore {
	return &ConfigStore{prefs: prefs}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	def := models.DefaultConfig()

	config := &models.Config{
		AutoStart:        cs.prefs.BoolWithFallback("auto_start", def.AutoStart),
		HoldTimeSeconds:  cs.prefs.IntWithFallback("hold_time_seconds", def.HoldTimeSeconds),
		AlarmSound:       cs.prefs.StringWithFallback("alarm_sound", def.AlarmSound),
		RearmOnStart:     cs.prefs.BoolWithFallback("rearm_on_start", def.RearmOnStart),
		ImportWindowDays: cs.prefs.IntWithFallback("import_window_days", def.ImportWindowDays),
	}
	config.Normalize()

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	cs.prefs.SetBool("auto_start", config.AutoStart)
	cs.prefs.SetInt("hold_time_seconds", config.HoldTimeSeconds)
	cs.prefs.SetString("alarm_sound", config.AlarmSound)
	cs.prefs.SetBool("rearm_on_start", config.RearmOnStart)
	cs.prefs.SetInt("import_window_days", config.ImportWindowDays)
}
