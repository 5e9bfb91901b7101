package calendar

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/emersion/go-ical"
)

var ErrNotICalendar = errors.New("not iCalendar data")

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads an iCal feed and imports its upcoming event start times
func Fetch(url string, now time.Time, window time.Duration) ([]time.Time, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed: %s", resp.Status)
	}

	return Import(resp.Body, now, window)
}

// Import reads a calendar and returns the distinct start times, rounded down to the minute,
// of events starting after now and before now+window. Recurring DAILY and WEEKLY events are
// expanded inside that window.
func Import(r io.Reader, now time.Time, window time.Duration) ([]time.Time, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}

	bodyStr := string(body)
	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	until := now.Add(window)
	stats := &filterStats{}
	seen := make(map[time.Time]bool)
	starts := []time.Time{}

	keep := func(event models.Event) {
		if !shouldIncludeEvent(event, now, until, stats) {
			return
		}
		start := models.RoundToMinute(event.StartTime)
		if seen[start] {
			stats.filteredDuplicates++
			return
		}
		seen[start] = true
		starts = append(starts, start)
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			stats.totalComponents++
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			normalizeComponentTimezones(comp)
			event := parseEvent(comp)

			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				excluded := exceptionDates(comp)
				for _, instance := range expandRecurringEvent(event, rruleProp.Value, now, until) {
					if excluded[instance.StartTime.Unix()] {
						stats.filteredExcluded++
						continue
					}
					keep(instance)
				}
				continue
			}

			keep(event)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	stats.logSummary(len(starts))

	return starts, nil
}

func validateICalFormat(bodyStr string) error {
	trimmed := strings.TrimSpace(bodyStr)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return fmt.Errorf("%w: received HTML, check if the URL requires authentication", ErrNotICalendar)
	}

	if !strings.HasPrefix(trimmed, "BEGIN:VCALENDAR") {
		preview := trimmed
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return fmt.Errorf("%w: expected BEGIN:VCALENDAR, got: %q", ErrNotICalendar, preview)
	}

	return nil
}

type filterStats struct {
	totalComponents       int
	totalEvents           int
	filteredMissingTime   int
	filteredCancelled     int
	filteredAllDay        int
	filteredOutsideWindow int
	filteredExcluded      int
	filteredDuplicates    int
}

func (s *filterStats) logSummary(included int) {
	filtered := s.filteredMissingTime + s.filteredCancelled + s.filteredAllDay +
		s.filteredOutsideWindow + s.filteredExcluded + s.filteredDuplicates
	logger.Log.Infow("calendar imported",
		"components", s.totalComponents,
		"events", s.totalEvents,
		"included", included,
		"filtered", filtered,
	)
	if filtered > 0 {
		logger.Log.Debugw("calendar filter breakdown",
			"cancelled", s.filteredCancelled,
			"all_day", s.filteredAllDay,
			"outside_window", s.filteredOutsideWindow,
			"missing_time", s.filteredMissingTime,
			"excluded", s.filteredExcluded,
			"duplicates", s.filteredDuplicates,
		)
	}
}
