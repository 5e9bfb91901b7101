package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
)

// maxInstances bounds expansion of rules whose start lies far in the past
const maxInstances = 10000

type rule struct {
	step  time.Duration
	count int // 0 means unbounded
	until time.Time
}

// parseRule understands FREQ=DAILY|WEEKLY with optional INTERVAL, COUNT and UNTIL.
// BYDAY and the other BY* parts are not supported.
func parseRule(rrule string) (rule, bool) {
	r := rule{}
	interval := 1
	var freq string

	for _, part := range strings.Split(rrule, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.ToUpper(key) {
		case "FREQ":
			freq = strings.ToUpper(value)
		case "INTERVAL":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				interval = n
			}
		case "COUNT":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				r.count = n
			}
		case "UNTIL":
			for _, layout := range []string{"20060102T150405Z", "20060102T150405", "20060102"} {
				if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
					r.until = t
					break
				}
			}
		}
	}

	switch freq {
	case "DAILY":
		r.step = 24 * time.Hour
	case "WEEKLY":
		r.step = 7 * 24 * time.Hour
	default:
		return rule{}, false
	}
	r.step *= time.Duration(interval)
	return r, true
}

// expandRecurringEvent lists the occurrences of baseEvent that start inside (from, to)
func expandRecurringEvent(baseEvent models.Event, rrule string, from, to time.Time) []models.Event {
	events := []models.Event{}
	if baseEvent.StartTime.IsZero() {
		return events
	}

	r, ok := parseRule(rrule)
	if !ok {
		logger.Log.Debugw("unsupported RRULE", "rule", rrule, "title", baseEvent.Title)
		return events
	}

	duration := time.Duration(0)
	if !baseEvent.EndTime.IsZero() {
		duration = baseEvent.EndTime.Sub(baseEvent.StartTime)
	}

	current := baseEvent.StartTime
	for n := 0; n < maxInstances && current.Before(to); n++ {
		if r.count > 0 && n >= r.count {
			break
		}
		if !r.until.IsZero() && current.After(r.until) {
			break
		}
		if current.After(from) {
			instance := baseEvent
			instance.StartTime = current
			if duration > 0 {
				instance.EndTime = current.Add(duration)
			}
			instance.ID = baseEvent.ID + "-" + current.Format(time.RFC3339)
			events = append(events, instance)
		}
		current = nextOccurrence(current, r.step)
	}

	return events
}

// nextOccurrence keeps the wall-clock time across DST changes
func nextOccurrence(t time.Time, step time.Duration) time.Time {
	days := int(step / (24 * time.Hour))
	return t.AddDate(0, 0, days)
}
