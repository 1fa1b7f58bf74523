package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//Bloom//Cycle Predictions//EN"

// ExportWindowsICS renders windows as all-day events. UIDs derive from kind
// and start date so subscribed calendars update events in place.
func ExportWindowsICS(windows []Window, now time.Time) string {
	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId(calendarProductID)
	calendar.SetXWRCalName("Bloom cycle predictions")

	stamp := now.UTC()
	for _, window := range windows {
		if window.Start.IsZero() || window.End.IsZero() {
			continue
		}
		event := calendar.AddEvent(fmt.Sprintf("%s-%s@bloom", window.Kind, DayKey(window.Start)))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(window.Start)
		event.SetAllDayEndAt(window.End.AddDate(0, 0, 1))
		event.SetSummary(string(phaseLabelByKind[window.Kind]))
		event.SetDescription(fmt.Sprintf("%s, %d day(s)", phaseLabelByKind[window.Kind], window.Days()))
	}

	return calendar.Serialize()
}
