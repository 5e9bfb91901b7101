package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = time.Second
const tick = 5 * time.Millisecond

type gateStub struct {
	mu      sync.Mutex
	granted bool
}

func (g *gateStub) IsGranted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.granted
}

func (g *gateStub) set(granted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.granted = granted
}

type noticeStub struct {
	mu        sync.Mutex
	dismissed int
}

func (n *noticeStub) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dismissed++
}

func (n *noticeStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dismissed
}

type notifierStub struct {
	mu      sync.Mutex
	err     error
	notices []Notice
	shown   []*noticeStub
}

func (n *notifierStub) Notify(notice Notice) (Dismisser, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return nil, n.err
	}
	n.notices = append(n.notices, notice)
	d := &noticeStub{}
	n.shown = append(n.shown, d)
	return d, nil
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

type alerterStub struct {
	mu      sync.Mutex
	notices []Notice
}

func (a *alerterStub) Alert(n Notice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notices = append(a.notices, n)
}

func (a *alerterStub) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.notices)
}

type fixture struct {
	clock    *clock.Mock
	gate     *gateStub
	notifier *notifierStub
	alerter  *alerterStub
	s        *Scheduler
}

func newFixture(t *testing.T, granted bool) *fixture {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local))

	f := &fixture{
		clock:    mock,
		gate:     &gateStub{granted: granted},
		notifier: &notifierStub{},
		alerter:  &alerterStub{},
	}
	f.s = New(f.gate, f.notifier, f.alerter, WithClock(mock))
	return f
}

func (f *fixture) label(d time.Duration) string {
	return timefmt.FormatAlarm(f.clock.Now().Add(d))
}

func TestArm_FiresOnceAndAutoDismisses(t *testing.T) {
	f := newFixture(t, true)
	label := f.label(5 * time.Minute)

	alarm, err := f.s.Arm(label)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, alarm.Delay)
	assert.Equal(t, models.AlarmStatusArmed, alarm.Status)
	assert.Len(t, f.s.Pending(), 1)

	f.clock.Add(5*time.Minute - time.Second)
	assert.Equal(t, 0, f.notifier.count(), "must not fire early")

	f.clock.Add(time.Second)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)
	assert.Equal(t, 1, f.notifier.count())
	assert.Equal(t, 0, f.alerter.count())
	assert.Equal(t, label, f.notifier.notices[0].Label)
	assert.Empty(t, f.s.Pending())

	f.clock.Add(DismissAfter - time.Second)
	assert.Equal(t, 0, f.notifier.shown[0].count(), "still on screen before 10s")

	f.clock.Add(time.Second)
	require.Eventually(t, func() bool { return f.notifier.shown[0].count() == 1 }, waitFor, tick)

	f.clock.Add(time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, f.notifier.count(), "fires exactly once")
}

func TestArm_FiveSecondsAhead(t *testing.T) {
	f := newFixture(t, true)
	f.clock.Set(time.Date(2024, time.January, 1, 9, 29, 55, 0, time.Local))

	alarm, err := f.s.Arm("Mon Jan 01 2024 09:30")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, alarm.Delay)

	f.clock.Add(5 * time.Second)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)

	f.clock.Add(10 * time.Second)
	require.Eventually(t, func() bool { return f.notifier.shown[0].count() == 1 }, waitFor, tick)
}

func TestArm_PastTargetFiresImmediately(t *testing.T) {
	f := newFixture(t, true)

	alarm, err := f.s.Arm(f.label(-2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), alarm.Delay)

	f.clock.Add(0)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)
	assert.Equal(t, 1, f.notifier.count())
}

func TestArm_InvalidLabel(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.s.Arm("tomorrow-ish")

	assert.ErrorIs(t, err, ErrInvalidTimestamp)
	assert.Empty(t, f.s.Pending())
}

func TestFire_FallsBackWhenNotGranted(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.s.Arm(f.label(time.Minute))
	require.NoError(t, err)

	f.clock.Add(time.Minute)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)

	assert.Equal(t, 0, f.notifier.count())
	assert.Equal(t, 1, f.alerter.count())
}

func TestFire_ReadsPermissionAtFireTime(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.s.Arm(f.label(time.Minute))
	require.NoError(t, err)

	f.gate.set(true)
	f.clock.Add(time.Minute)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)

	assert.Equal(t, 1, f.notifier.count())
	assert.Equal(t, 0, f.alerter.count())
}

func TestFire_NotifierErrorFallsBack(t *testing.T) {
	f := newFixture(t, true)
	f.notifier.err = errors.New("no notification daemon")
	_, err := f.s.Arm(f.label(time.Minute))
	require.NoError(t, err)

	f.clock.Add(time.Minute)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)

	assert.Equal(t, 1, f.alerter.count())
}

func TestArm_AlarmsAreIndependent(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.s.Arm(f.label(2 * time.Minute))
	require.NoError(t, err)
	_, err = f.s.Arm(f.label(time.Minute))
	require.NoError(t, err)

	pending := f.s.Pending()
	require.Len(t, pending, 2)
	assert.True(t, pending[0].FireAt.Before(pending[1].FireAt))

	f.clock.Add(time.Minute)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)
	assert.Len(t, f.s.Pending(), 1)

	f.clock.Add(time.Minute)
	require.Eventually(t, func() bool { return f.s.Fired() == 2 }, waitFor, tick)
}

func TestArm_SameLabelTwiceArmsTwice(t *testing.T) {
	f := newFixture(t, true)
	label := f.label(time.Minute)

	a, err := f.s.Arm(label)
	require.NoError(t, err)
	b, err := f.s.Arm(label)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, f.s.Pending(), 2)
}

func TestShutdown_StopsTimersAndDismisses(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.s.Arm(f.label(0))
	require.NoError(t, err)
	_, err = f.s.Arm(f.label(time.Hour))
	require.NoError(t, err)

	f.clock.Add(0)
	require.Eventually(t, func() bool { return f.s.Fired() == 1 }, waitFor, tick)

	stopped := f.s.Shutdown()
	require.Len(t, stopped, 1)
	assert.Equal(t, models.AlarmStatusStopped, stopped[0].Status)
	assert.Empty(t, f.s.Pending())
	assert.Equal(t, 1, f.notifier.shown[0].count())

	f.clock.Add(2 * time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, f.s.Fired())
	assert.Equal(t, 1, f.notifier.shown[0].count(), "dismissed only once")

	_, err = f.s.Arm(f.label(time.Hour))
	assert.ErrorIs(t, err, ErrShutdown)
}
