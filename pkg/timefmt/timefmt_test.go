package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeField struct {
	kind FieldKind
	min  string
}

func (f *fakeField) Kind() FieldKind    { return f.kind }
func (f *fakeField) SetMin(value string) { f.min = value }

func TestFormatNow_PadsFields(t *testing.T) {
	now := time.Date(2024, time.March, 5, 7, 4, 59, 0, time.Local)

	dt := FormatNow(now)

	assert.Equal(t, "2024-03-05", dt.Date)
	assert.Equal(t, "07:04", dt.Time)
}

func TestFormatNow_UsesWallClockFields(t *testing.T) {
	zone := time.FixedZone("X", 5*3600)
	now := time.Date(2024, time.December, 31, 23, 30, 0, 0, zone)

	dt := FormatNow(now)

	assert.Equal(t, "2024-12-31", dt.Date)
	assert.Equal(t, "23:30", dt.Time)
}

func TestMinBound(t *testing.T) {
	now := time.Date(2024, time.January, 9, 18, 45, 0, 0, time.Local)
	date := &fakeField{kind: KindDate}
	clock := &fakeField{kind: KindTime}
	other := &fakeField{kind: KindOther, min: "untouched"}

	MinBound(now, date, clock, other)

	assert.Equal(t, "2024-01-09", date.min)
	assert.Equal(t, "18:45", clock.min)
	assert.Equal(t, "untouched", other.min)
}

func TestFormatAlarm_MinuteGranularity(t *testing.T) {
	a := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.Local)
	b := time.Date(2024, time.January, 1, 9, 30, 42, 0, time.Local)

	assert.Equal(t, "Mon Jan 01 2024 09:30", FormatAlarm(a))
	assert.Equal(t, FormatAlarm(a), FormatAlarm(b))
}

func TestParseAlarm(t *testing.T) {
	got, err := ParseAlarm("Mon Jan 01 2024 09:30")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, time.January, 1, 9, 30, 0, 0, time.Local)))

	_, err = ParseAlarm("2024-01-01T09:30")
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	got, err := Combine("2024-02-29", "06:05")
	require.NoError(t, err)
	assert.Equal(t, "Thu Feb 29 2024 06:05", FormatAlarm(got))

	_, err = Combine("2024-02-30", "06:05")
	assert.Error(t, err)

	_, err = Combine("2024-02-28", "25:00")
	assert.Error(t, err)
}
