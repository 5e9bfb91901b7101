package calendar

import "github.com/emersion/go-ical"

// Outlook exports Windows zone names, which time.LoadLocation does not know
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"Atlantic Standard Time":       "America/Halifax",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"GMT Standard Time":            "Europe/London",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Central Europe Standard Time": "Europe/Budapest",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

// normalizeComponentTimezones rewrites Windows TZID params so start times can be
// converted to local wall-clock time
func normalizeComponentTimezones(comp *ical.Component) {
	for _, name := range []string{ical.PropDateTimeStart, ical.PropDateTimeEnd, ical.PropExceptionDates} {
		for i := range comp.Props[name] {
			prop := &comp.Props[name][i]
			if ianaName, ok := windowsToIANA[prop.Params.Get(ical.ParamTimezoneID)]; ok {
				prop.Params.Set(ical.ParamTimezoneID, ianaName)
			}
		}
	}
}
