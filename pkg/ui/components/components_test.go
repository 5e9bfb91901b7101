package components

import (
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedEntry_DateValidation(t *testing.T) {
	test.NewTempApp(t)
	e := NewDateEntry()
	timefmt.MinBound(time.Date(2024, time.January, 9, 18, 45, 0, 0, time.Local), e)

	assert.Equal(t, "2024-01-09", e.Min())
	assert.NoError(t, e.Validator("2024-01-09"))
	assert.NoError(t, e.Validator("2024-02-01"))
	assert.ErrorIs(t, e.Validator("2024-01-08"), ErrBelowMin)
	assert.ErrorIs(t, e.Validator("2024-1-9"), ErrBadDate)
	assert.ErrorIs(t, e.Validator("tomorrow"), ErrBadDate)
}

func TestBoundedEntry_TimeGuard(t *testing.T) {
	test.NewTempApp(t)
	date := NewDateEntry()
	clock := NewTimeEntry()
	timefmt.MinBound(time.Date(2024, time.January, 9, 18, 45, 0, 0, time.Local), date, clock)
	clock.SetGuard(func() bool { return date.Text == date.Min() })

	date.SetText("2024-01-09")
	assert.ErrorIs(t, clock.Validator("08:00"), ErrBelowMin)
	assert.NoError(t, clock.Validator("18:45"))

	date.SetText("2024-01-10")
	assert.NoError(t, clock.Validator("08:00"), "minimum only applies today")
	assert.ErrorIs(t, clock.Validator("8:00"), ErrBadTime)
}

func TestRemovableList(t *testing.T) {
	test.NewTempApp(t)
	l := NewRemovableList("No alarms")
	var removed []string

	for _, text := range []string{"a", "b", "c"} {
		l.Append(l.NewRow(text, func(r *Row) {
			removed = append(removed, r.Label.Text)
			l.Remove(r)
		}))
	}
	require.Equal(t, []string{"a", "b", "c"}, l.Texts())

	test.Tap(l.Rows()[1].RemoveButton)

	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, []string{"a", "c"}, l.Texts())

	l.Clear()
	assert.Empty(t, l.Rows())
}

func TestHoldButton_ConfirmsAfterHold(t *testing.T) {
	test.NewTempApp(t)
	var confirmed atomic.Int32
	b := NewHoldButton("Dismiss", 100*time.Millisecond, func() { confirmed.Add(1) })

	b.Press()

	require.Eventually(t, func() bool { return confirmed.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1.0, b.Progress())
}

func TestHoldButton_ReleaseResets(t *testing.T) {
	test.NewTempApp(t)
	var confirmed atomic.Int32
	b := NewHoldButton("Dismiss", time.Second, func() { confirmed.Add(1) })

	b.Press()
	time.Sleep(120 * time.Millisecond)
	b.Release()

	assert.Equal(t, 0.0, b.Progress())
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), confirmed.Load())
}
