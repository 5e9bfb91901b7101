// Package scheduler arms one-shot alarm timers for the current session.
//
// Nothing about an armed timer is persisted: quitting the app loses it and only
// the stored alarm label survives. Removing an alarm from the user store does
// not stop a timer that is already armed.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/google/uuid"
)

// DismissAfter is how long a native notification stays up
const DismissAfter = 10 * time.Second

const noticeTitle = "ALARM !!!!"

var (
	ErrInvalidTimestamp = errors.New("invalid alarm timestamp")
	ErrShutdown         = errors.New("scheduler is shut down")
)

// Notice is what gets shown when an alarm fires
type Notice struct {
	Title  string
	Body   string
	Label  string
	FireAt time.Time
}

// Dismisser ends a shown notification once DismissAfter has passed.
// Native desktop notifications cannot be retracted, so an implementation may
// only stop what it controls (such as the alarm sound) and leave hiding to the OS.
type Dismisser interface {
	Dismiss()
}

// Notifier shows a native notification
type Notifier interface {
	Notify(n Notice) (Dismisser, error)
}

// Alerter shows the in-app fallback alert
type Alerter interface {
	Alert(n Notice)
}

// Granter reports notification permission at fire time
type Granter interface {
	IsGranted() bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock replaces the wall clock, used by tests
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithDismissAfter overrides DismissAfter
func WithDismissAfter(d time.Duration) Option {
	return func(s *Scheduler) { s.dismissAfter = d }
}

type armedTimer struct {
	alarm models.ArmedAlarm
	timer *clock.Timer
}

// Scheduler arms alarms independently of each other
type Scheduler struct {
	clock        clock.Clock
	gate         Granter
	notifier     Notifier
	alerter      Alerter
	dismissAfter time.Duration

	mu      sync.Mutex
	armed   map[string]*armedTimer
	shown   map[string]Dismisser
	stopped bool

	fired atomic.Int64
}

// New creates a Scheduler
func New(gate Granter, notifier Notifier, alerter Alerter, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:        clock.New(),
		gate:         gate,
		notifier:     notifier,
		alerter:      alerter,
		dismissAfter: DismissAfter,
		armed:        make(map[string]*armedTimer),
		shown:        make(map[string]Dismisser),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Arm schedules exactly one fire for label. Targets in the past fire immediately.
func (s *Scheduler) Arm(label string) (models.ArmedAlarm, error) {
	target, err := timefmt.ParseAlarm(label)
	if err != nil {
		return models.ArmedAlarm{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, label)
	}

	now := s.clock.Now()
	delay := target.Sub(now)
	if delay < 0 {
		delay = 0
	}

	alarm := models.ArmedAlarm{
		ID:     uuid.New().String(),
		Label:  label,
		FireAt: now.Add(delay),
		Delay:  delay,
		Status: models.AlarmStatusArmed,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return models.ArmedAlarm{}, ErrShutdown
	}

	id := alarm.ID
	s.armed[id] = &armedTimer{
		alarm: alarm,
		timer: s.clock.AfterFunc(delay, func() { s.fire(id) }),
	}

	logger.Log.Infow("alarm armed", "id", id, "label", label, "delay", delay.String())
	return alarm, nil
}

// Pending returns the alarms that have not fired yet, soonest first
func (s *Scheduler) Pending() []models.ArmedAlarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.ArmedAlarm, 0, len(s.armed))
	for _, at := range s.armed {
		result = append(result, at.alarm)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FireAt.Before(result[j].FireAt)
	})
	return result
}

// Fired returns how many alarms have fired in this session
func (s *Scheduler) Fired() int {
	return int(s.fired.Load())
}

// Shutdown stops all armed timers and closes notifications still on screen.
// It returns the alarms that never fired.
func (s *Scheduler) Shutdown() []models.ArmedAlarm {
	s.mu.Lock()
	s.stopped = true
	armed := s.armed
	shown := s.shown
	s.armed = make(map[string]*armedTimer)
	s.shown = make(map[string]Dismisser)
	s.mu.Unlock()

	stopped := make([]models.ArmedAlarm, 0, len(armed))
	for id, at := range armed {
		at.timer.Stop()
		alarm := at.alarm
		alarm.Status = models.AlarmStatusStopped
		stopped = append(stopped, alarm)
		logger.Log.Debugw("alarm stopped", "id", id, "label", alarm.Label)
	}
	for _, d := range shown {
		d.Dismiss()
	}
	return stopped
}

func (s *Scheduler) fire(id string) {
	s.mu.Lock()
	at, ok := s.armed[id]
	if ok {
		delete(s.armed, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	notice := Notice{
		Title:  noticeTitle,
		Body:   at.alarm.Label,
		Label:  at.alarm.Label,
		FireAt: at.alarm.FireAt,
	}

	if s.gate.IsGranted() {
		d, err := s.notifier.Notify(notice)
		if err == nil {
			s.scheduleDismiss(id, d)
			logger.Log.Infow("alarm fired", "id", id, "label", notice.Label, "surface", "notification")
			s.fired.Add(1)
			return
		}
		logger.Log.Warnw("notification failed, falling back to alert", "id", id, "error", err)
	}

	s.alerter.Alert(notice)
	logger.Log.Infow("alarm fired", "id", id, "label", notice.Label, "surface", "alert")
	s.fired.Add(1)
}

func (s *Scheduler) scheduleDismiss(id string, d Dismisser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shown[id] = d
	s.clock.AfterFunc(s.dismissAfter, func() {
		s.mu.Lock()
		_, open := s.shown[id]
		delete(s.shown, id)
		s.mu.Unlock()

		if open {
			d.Dismiss()
			logger.Log.Debugw("notification dismissed", "id", id)
		}
	})
}
