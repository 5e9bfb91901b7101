package models

// Config holds user-facing application settings
type Config struct {
	AutoStart        bool   `json:"auto_start"`
	HoldTimeSeconds  int    `json:"hold_time_seconds"`  // dismiss button hold time
	AlarmSound       string `json:"alarm_sound"`        // WAV path, empty for the built-in beep
	RearmOnStart     bool   `json:"rearm_on_start"`     // arm future alarms when the dashboard opens
	ImportWindowDays int    `json:"import_window_days"` // how far ahead iCal import looks
}

// DefaultConfig returns the settings used before anything is saved
func DefaultConfig() *Config {
	return &Config{
		AutoStart:        false,
		HoldTimeSeconds:  2,
		AlarmSound:       "",
		RearmOnStart:     false,
		ImportWindowDays: 7,
	}
}

// Normalize clamps values edited by hand in the preferences file
func (c *Config) Normalize() {
	if c.HoldTimeSeconds < 1 {
		c.HoldTimeSeconds = 1
	}
	if c.HoldTimeSeconds > 10 {
		c.HoldTimeSeconds = 10
	}
	if c.ImportWindowDays < 1 {
		c.ImportWindowDays = 1
	}
	if c.ImportWindowDays > 90 {
		c.ImportWindowDays = 90
	}
}
