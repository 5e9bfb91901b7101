package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/borgmon/alarmist/pkg/models"
	"github.com/emersion/go-ical"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func parseEvent(comp *ical.Component) models.Event {
	event := models.Event{}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		event.ID = uidProp.Value
	}

	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		event.Title = summaryProp.Value
	}

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if t, err := parseDateTimeProperty(startProp); err == nil {
			event.StartTime = t
		}
	}

	if endProp := comp.Props.Get(ical.PropDateTimeEnd); endProp != nil {
		if t, err := parseDateTimeProperty(endProp); err == nil {
			event.EndTime = t
		}
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		event.Status = strings.ToUpper(statusProp.Value)
	}

	// Some providers only rename cancelled events
	if event.Status != "CANCELLED" && isCancelledTitle(event.Title) {
		event.Status = "CANCELLED"
	}

	return event
}

func parseDateTimeProperty(prop *ical.Prop) (time.Time, error) {
	if t, err := prop.DateTime(time.Local); err == nil {
		return t.In(time.Local), nil
	}

	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, time.Local); err == nil {
			return t.In(time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

func isCancelledTitle(title string) bool {
	clean := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	return strings.HasPrefix(clean, "canceled") || strings.HasPrefix(clean, "cancelled")
}

// exceptionDates collects EXDATE values as unix seconds
func exceptionDates(comp *ical.Component) map[int64]bool {
	excluded := make(map[int64]bool)
	for _, prop := range comp.Props.Values(ical.PropExceptionDates) {
		for _, value := range strings.Split(prop.Value, ",") {
			single := ical.NewProp(ical.PropExceptionDates)
			single.Params = prop.Params
			single.Value = value
			if t, err := parseDateTimeProperty(single); err == nil {
				excluded[t.Unix()] = true
			}
		}
	}
	return excluded
}
