package timefmt

import (
	"fmt"
	"time"
)

const (
	// AlarmLayout is the persisted alarm label, e.g. "Mon Jan 01 2024 09:30"
	AlarmLayout = "Mon Jan 02 2006 15:04"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FieldKind tells MinBound which part of the current moment applies to a field
type FieldKind int

const (
	KindOther FieldKind = iota
	KindDate
	KindTime
)

// Field is an input widget that accepts a minimum value
type Field interface {
	Kind() FieldKind
	SetMin(value string)
}

// DateTime holds input-ready date and time strings
type DateTime struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// FormatNow renders t using its own wall-clock fields, no zone conversion
func FormatNow(t time.Time) DateTime {
	return DateTime{
		Date: fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()),
		Time: fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()),
	}
}

// MinBound sets today's date on date fields and the current time on time fields.
// Fields of any other kind are left untouched.
func MinBound(now time.Time, fields ...Field) {
	dt := FormatNow(now)
	for _, f := range fields {
		switch f.Kind() {
		case KindDate:
			f.SetMin(dt.Date)
		case KindTime:
			f.SetMin(dt.Time)
		}
	}
}

// FormatAlarm returns the alarm label for t, truncated to the minute
func FormatAlarm(t time.Time) string {
	return t.Truncate(time.Minute).Format(AlarmLayout)
}

// ParseAlarm parses an alarm label as local wall-clock time
func ParseAlarm(label string) (time.Time, error) {
	return time.ParseInLocation(AlarmLayout, label, time.Local)
}

// Combine joins a YYYY-MM-DD date and an HH:MM time into a local moment
func Combine(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}
