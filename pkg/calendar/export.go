package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const prodID = "-//borgmon//alarmist//EN"

// Export writes one VEVENT per alarm label. Labels that do not parse are skipped.
func Export(w io.Writer, alarms []string) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	stamp := time.Now().UTC()
	for _, label := range alarms {
		at, err := timefmt.ParseAlarm(label)
		if err != nil {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, uuid.NewString())
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		event.Props.SetDateTime(ical.PropDateTimeStart, at.UTC())
		event.Props.SetText(ical.PropSummary, "Alarm")
		event.Props.SetText(ical.PropDescription, label)
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}
