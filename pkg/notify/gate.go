package notify

import (
	"errors"
	"sync"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/storage"
)

// ErrPermissionUnavailable is reported when native notifications may not be shown
var ErrPermissionUnavailable = errors.New("notification permission not granted")

// Permission is the notification permission state
type Permission string

const (
	PermissionUnknown Permission = ""
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// PermissionKey is the storage key the decision is persisted under
const PermissionKey = "notification_permission"

// Prompter asks the user once. answer must be called exactly once, possibly later.
type Prompter interface {
	AskPermission(answer func(granted bool))
}

// Gate tracks whether system notifications may be shown.
// The state moves from unknown to granted or denied once and stays there.
type Gate struct {
	mu    sync.RWMutex
	kv    storage.Storage
	state Permission
}

// NewGate restores a previously persisted decision from kv
func NewGate(kv storage.Storage) *Gate {
	g := &Gate{kv: kv}
	if v, ok := kv.Get(PermissionKey); ok {
		switch Permission(v) {
		case PermissionGranted, PermissionDenied:
			g.state = Permission(v)
		}
	}
	return g
}

// State returns the current permission state
func (g *Gate) State() Permission {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// IsGranted reports whether native notifications may be shown
func (g *Gate) IsGranted() bool {
	return g.State() == PermissionGranted
}

// Check returns ErrPermissionUnavailable unless permission is granted
func (g *Gate) Check() error {
	if !g.IsGranted() {
		return ErrPermissionUnavailable
	}
	return nil
}

// Request prompts the user if no decision has been made yet. done, if set,
// receives the resulting state, immediately when the prompt is skipped.
func (g *Gate) Request(p Prompter, done func(Permission)) {
	if state := g.State(); state != PermissionUnknown {
		if done != nil {
			done(state)
		}
		return
	}

	p.AskPermission(func(granted bool) {
		state := g.decide(granted)
		if done != nil {
			done(state)
		}
	})
}

func (g *Gate) decide(granted bool) Permission {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != PermissionUnknown {
		return g.state
	}

	g.state = PermissionDenied
	if granted {
		g.state = PermissionGranted
	}
	g.kv.Set(PermissionKey, string(g.state))
	logger.Log.Infow("notification permission decided", "state", g.state)

	return g.state
}
