package alarms

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/benbjohnson/clock"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/scheduler"
	"github.com/borgmon/alarmist/pkg/storage"
	"github.com/borgmon/alarmist/pkg/store"
	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type armerStub struct {
	labels []string
}

func (a *armerStub) Arm(label string) (models.ArmedAlarm, error) {
	a.labels = append(a.labels, label)
	return models.ArmedAlarm{Label: label, Status: models.AlarmStatusArmed}, nil
}

type messengerStub struct {
	titles []string
}

func (m *messengerStub) ShowMessage(title, _ string) {
	m.titles = append(m.titles, title)
}

func newTestList(t *testing.T) (*List, *store.UserStore, *armerStub, *messengerStub) {
	t.Helper()
	test.NewTempApp(t)

	users := store.NewUserStore(storage.NewMemory())
	require.NoError(t, users.Create("a@x.com", models.User{FirstName: "Ada", LastName: "Lovelace", Password: "h"}))

	armer := &armerStub{}
	messenger := &messengerStub{}
	return NewList(users, armer, messenger), users, armer, messenger
}

func TestRenderAll_StoreOrderWithoutArming(t *testing.T) {
	l, users, armer, _ := newTestList(t)
	require.NoError(t, users.AddAlarm("a@x.com", "Tue Jan 02 2024 08:00"))
	require.NoError(t, users.AddAlarm("a@x.com", "Mon Jan 01 2024 09:30"))

	require.NoError(t, l.RenderAll("a@x.com"))

	assert.Equal(t, []string{"Tue Jan 02 2024 08:00", "Mon Jan 01 2024 09:30"}, l.Labels())
	assert.Empty(t, armer.labels)

	require.NoError(t, l.RenderAll("a@x.com"))
	assert.Len(t, l.Labels(), 2, "re-render replaces rows")
}

func TestRenderAll_UnknownUser(t *testing.T) {
	l, _, _, _ := newTestList(t)

	assert.ErrorIs(t, l.RenderAll("nobody@x.com"), store.ErrNotFound)
}

func TestCreateAndRender(t *testing.T) {
	l, users, armer, messenger := newTestList(t)

	require.NoError(t, l.CreateAndRender("a@x.com", "Mon Jan 01 2024 09:30"))

	assert.Equal(t, []string{"Mon Jan 01 2024 09:30"}, l.Labels())
	assert.Equal(t, []string{"Mon Jan 01 2024 09:30"}, armer.labels)
	alarms, _ := users.Alarms("a@x.com")
	assert.Equal(t, []string{"Mon Jan 01 2024 09:30"}, alarms)
	assert.Empty(t, messenger.titles)
}

func TestCreateAndRender_DuplicateShowsMessageOnly(t *testing.T) {
	l, users, armer, messenger := newTestList(t)
	require.NoError(t, l.CreateAndRender("a@x.com", "Mon Jan 01 2024 09:30"))

	err := l.CreateAndRender("a@x.com", "Mon Jan 01 2024 09:30")

	assert.ErrorIs(t, err, store.ErrDuplicateAlarm)
	assert.Equal(t, []string{"Duplicate Alarm"}, messenger.titles)
	assert.Len(t, l.Labels(), 1)
	assert.Len(t, armer.labels, 1)
	alarms, _ := users.Alarms("a@x.com")
	assert.Len(t, alarms, 1)
}

func TestRemoveControl_UpdatesStoreAndRow(t *testing.T) {
	l, users, _, _ := newTestList(t)
	require.NoError(t, l.CreateAndRender("a@x.com", "Mon Jan 01 2024 09:30"))
	require.NoError(t, l.CreateAndRender("a@x.com", "Mon Jan 01 2024 10:30"))

	test.Tap(l.view.Rows()[0].RemoveButton)

	assert.Equal(t, []string{"Mon Jan 01 2024 10:30"}, l.Labels())
	alarms, _ := users.Alarms("a@x.com")
	assert.Equal(t, []string{"Mon Jan 01 2024 10:30"}, alarms)
}

func TestArmFuture(t *testing.T) {
	l, users, armer, _ := newTestList(t)
	require.NoError(t, users.AddAlarm("a@x.com", "past"))
	require.NoError(t, users.AddAlarm("a@x.com", "future"))

	n, err := l.ArmFuture("a@x.com", func(label string) bool { return label == "future" })

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"future"}, armer.labels)
}

type deniedGate struct{}

func (deniedGate) IsGranted() bool { return false }

type unusedNotifier struct{}

func (unusedNotifier) Notify(scheduler.Notice) (scheduler.Dismisser, error) {
	return nil, scheduler.ErrShutdown
}

type alertRecorder struct {
	mu     sync.Mutex
	labels []string
}

func (a *alertRecorder) Alert(n scheduler.Notice) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.labels = append(a.labels, n.Label)
}

func TestRemoveControl_DoesNotCancelArmedTimer(t *testing.T) {
	test.NewTempApp(t)
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local))

	alerts := &alertRecorder{}
	s := scheduler.New(deniedGate{}, unusedNotifier{}, alerts, scheduler.WithClock(mock))
	t.Cleanup(func() { s.Shutdown() })

	users := store.NewUserStore(storage.NewMemory())
	require.NoError(t, users.Create("a@x.com", models.User{FirstName: "Ada", LastName: "Lovelace", Password: "h"}))
	l := NewList(users, s, &messengerStub{})

	label := timefmt.FormatAlarm(mock.Now().Add(5 * time.Minute))
	require.NoError(t, l.CreateAndRender("a@x.com", label))
	require.Len(t, s.Pending(), 1)

	test.Tap(l.view.Rows()[0].RemoveButton)

	alarms, err := users.Alarms("a@x.com")
	require.NoError(t, err)
	assert.Empty(t, alarms)
	assert.Empty(t, l.Labels())
	assert.Len(t, s.Pending(), 1, "timer stays armed after removal")

	mock.Add(5 * time.Minute)
	require.Eventually(t, func() bool { return s.Fired() == 1 }, time.Second, 5*time.Millisecond)

	alerts.mu.Lock()
	defer alerts.mu.Unlock()
	assert.Equal(t, []string{label}, alerts.labels)
}
