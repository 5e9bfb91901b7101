package calendar

import (
	"time"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
)

func shouldIncludeEvent(event models.Event, now, until time.Time, stats *filterStats) bool {
	if event.StartTime.IsZero() {
		stats.filteredMissingTime++
		logger.Log.Debugw("skipping event without start", "title", event.Title)
		return false
	}

	if event.Status == "CANCELLED" {
		stats.filteredCancelled++
		logger.Log.Debugw("skipping cancelled event", "title", event.Title, "start", event.StartTime)
		return false
	}

	if isAllDayEvent(event) {
		stats.filteredAllDay++
		logger.Log.Debugw("skipping all-day event", "title", event.Title, "start", event.StartTime)
		return false
	}

	// an alarm needs a start that has not passed yet
	if event.StartTime.After(now) && event.StartTime.Before(until) {
		return true
	}

	stats.filteredOutsideWindow++
	logger.Log.Debugw("skipping event outside window",
		"title", event.Title, "start", event.StartTime, "now", now, "until", until)
	return false
}

func isAllDayEvent(event models.Event) bool {
	if event.EndTime.IsZero() {
		return false
	}
	startDate := event.StartTime.Format("2006-01-02")
	endDate := event.EndTime.Format("2006-01-02")

	return startDate != endDate && event.EndTime.Sub(event.StartTime) >= 24*time.Hour
}
