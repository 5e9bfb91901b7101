// Package storage defines the key-value capability user records are persisted in.
package storage

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Storage is a string key-value store. Get reports whether the key exists.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Memory is an in-process Storage, used by tests and the "memory" backend
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty Memory storage
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Memory) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Preferences adapts Fyne preferences, which are persisted to the app's storage root.
// An empty string is treated as absent since preferences cannot tell the two apart.
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps the given preferences
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

func (p *Preferences) Get(key string) (string, bool) {
	v := p.prefs.String(key)
	return v, v != ""
}

func (p *Preferences) Set(key, value string) {
	p.prefs.SetString(key, value)
}

func (p *Preferences) Remove(key string) {
	p.prefs.RemoveValue(key)
}
