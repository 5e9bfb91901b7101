package components

import (
	"errors"
	"time"

	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/timefmt"
)

var (
	ErrBelowMin = errors.New("value is earlier than allowed")
	ErrBadDate  = errors.New("use YYYY-MM-DD")
	ErrBadTime  = errors.New("use HH:MM")
)

// BoundedEntry is a date or time entry that rejects values below its minimum.
// It satisfies timefmt.Field so MinBound can set the minimum.
type BoundedEntry struct {
	widget.Entry

	kind  timefmt.FieldKind
	min   string
	guard func() bool
}

// NewDateEntry creates an entry accepting YYYY-MM-DD
func NewDateEntry() *BoundedEntry {
	return newBoundedEntry(timefmt.KindDate, "YYYY-MM-DD")
}

// NewTimeEntry creates an entry accepting HH:MM
func NewTimeEntry() *BoundedEntry {
	return newBoundedEntry(timefmt.KindTime, "HH:MM")
}

func newBoundedEntry(kind timefmt.FieldKind, placeholder string) *BoundedEntry {
	e := &BoundedEntry{kind: kind}
	e.ExtendBaseWidget(e)
	e.SetPlaceHolder(placeholder)
	e.Validator = e.validate
	return e
}

// Kind implements timefmt.Field
func (e *BoundedEntry) Kind() timefmt.FieldKind {
	return e.kind
}

// SetMin implements timefmt.Field
func (e *BoundedEntry) SetMin(value string) {
	e.min = value
	if e.Text != "" {
		e.Validate()
	}
}

// Min returns the current minimum, empty when unbounded
func (e *BoundedEntry) Min() string {
	return e.min
}

// SetGuard makes the minimum apply only while guard returns true
func (e *BoundedEntry) SetGuard(guard func() bool) {
	e.guard = guard
}

func (e *BoundedEntry) validate(s string) error {
	layout := timefmt.DateLayout
	formatErr := ErrBadDate
	if e.kind == timefmt.KindTime {
		layout = timefmt.TimeLayout
		formatErr = ErrBadTime
	}

	if _, err := time.Parse(layout, s); err != nil || len(s) != len(layout) {
		return formatErr
	}

	// Zero-padded values order lexically
	if e.min != "" && s < e.min && (e.guard == nil || e.guard()) {
		return ErrBelowMin
	}
	return nil
}
