package services

import (
	"encoding/json"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

type WindowKind string

const (
	WindowPeriod     WindowKind = "period"
	WindowOvulation  WindowKind = "ovulation"
	WindowFertile    WindowKind = "fertile"
	WindowPMS        WindowKind = "pms"
	WindowNextPeriod WindowKind = "next_period"
)

const (
	lutealPhaseDays      = 14
	fertileLeadDays      = 5
	pmsLeadDays          = 5
	minOvulationCycleLen = 15
)

// windowKindsByPrecedence lists kinds from strongest to weakest claim on a date.
var windowKindsByPrecedence = []WindowKind{
	WindowPeriod,
	WindowOvulation,
	WindowFertile,
	WindowPMS,
	WindowNextPeriod,
}

// Precedence ranks a kind for overlap resolution; lower wins. Unknown kinds rank last.
func (kind WindowKind) Precedence() int {
	for index, candidate := range windowKindsByPrecedence {
		if candidate == kind {
			return index + 1
		}
	}
	return len(windowKindsByPrecedence) + 1
}

// Window is an inclusive calendar-day range tagged with a phase kind.
type Window struct {
	Kind  WindowKind `json:"kind"`
	Start time.Time  `json:"start_date"`
	End   time.Time  `json:"end_date"`
}

// MarshalJSON writes bounds as plain calendar days.
func (window Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  WindowKind `json:"kind"`
		Start string     `json:"start_date"`
		End   string     `json:"end_date"`
	}{
		Kind:  window.Kind,
		Start: DayKey(window.Start),
		End:   DayKey(window.End),
	})
}

func (window Window) Contains(day time.Time) bool {
	return betweenCalendarDaysInclusive(day, window.Start, window.End)
}

func (window Window) Days() int {
	return DaysBetween(window.Start, window.End) + 1
}

type PredictionWarning string

const (
	WarningCycleLengthClamped    PredictionWarning = "cycle_length_clamped"
	WarningPeriodLengthDefaulted PredictionWarning = "period_length_defaulted"
)

// ComputeWindows derives the predicted windows for the cycle anchored at the
// most recent logged period. All dates are whole days in referenceDate's
// location. The result is empty when no period has been logged yet.
func ComputeWindows(entries []models.CycleEntry, prefs models.CyclePreferences, referenceDate time.Time) ([]Window, []PredictionWarning) {
	location := referenceDate.Location()

	anchor, ok := SelectAnchor(entries, location)
	if !ok {
		return []Window{}, nil
	}

	warnings := make([]PredictionWarning, 0)
	cycleLength := prefs.AverageCycleLength
	if cycleLength < minOvulationCycleLen {
		cycleLength = minOvulationCycleLen
		warnings = append(warnings, WarningCycleLengthClamped)
	}
	periodLength := prefs.PeriodLength
	if periodLength <= 0 {
		periodLength = models.DefaultPeriodLength
		warnings = append(warnings, WarningPeriodLengthDefaulted)
	}

	periodStart := DateAtLocation(anchor.StartDate, location)
	nextPeriodStart := periodStart.AddDate(0, 0, cycleLength)

	ovulationDay := periodStart.AddDate(0, 0, cycleLength-lutealPhaseDays)
	if logged, found := loggedOvulationAfter(entries, periodStart); found {
		ovulationDay = logged
	}

	windows := []Window{
		{Kind: WindowPeriod, Start: periodStart, End: periodStart.AddDate(0, 0, periodLength-1)},
		{Kind: WindowOvulation, Start: ovulationDay, End: ovulationDay},
		// The ovulation day is also the last fertile day; precedence keeps it an ovulation mark.
		{Kind: WindowFertile, Start: ovulationDay.AddDate(0, 0, -fertileLeadDays), End: ovulationDay},
		{Kind: WindowPMS, Start: nextPeriodStart.AddDate(0, 0, -pmsLeadDays), End: nextPeriodStart.AddDate(0, 0, -1)},
		{Kind: WindowNextPeriod, Start: nextPeriodStart, End: nextPeriodStart.AddDate(0, 0, periodLength-1)},
	}
	if len(warnings) == 0 {
		warnings = nil
	}
	return windows, warnings
}

// SelectAnchor returns the period entry with the latest start date. Input
// order does not matter; ties keep the first entry seen.
func SelectAnchor(entries []models.CycleEntry, location *time.Location) (models.CycleEntry, bool) {
	var anchor models.CycleEntry
	found := false
	for _, entry := range entries {
		if !entry.IsPeriod() {
			continue
		}
		if !found || DateAtLocation(entry.StartDate, location).After(DateAtLocation(anchor.StartDate, location)) {
			anchor = entry
			found = true
		}
	}
	return anchor, found
}

// loggedOvulationAfter finds the latest ovulation entry strictly after anchorStart.
func loggedOvulationAfter(entries []models.CycleEntry, anchorStart time.Time) (time.Time, bool) {
	location := anchorStart.Location()
	latest := time.Time{}
	for _, entry := range entries {
		if !entry.IsOvulation() {
			continue
		}
		day := DateAtLocation(entry.StartDate, location)
		if !day.After(anchorStart) {
			continue
		}
		if latest.IsZero() || day.After(latest) {
			latest = day
		}
	}
	return latest, !latest.IsZero()
}

// FindWindow returns the first window of the given kind.
func FindWindow(windows []Window, kind WindowKind) (Window, bool) {
	for _, window := range windows {
		if window.Kind == kind {
			return window, true
		}
	}
	return Window{}, false
}

// CurrentCycleDay is the 1-based day of the predicted cycle, or 0 when today
// is outside it.
func CurrentCycleDay(windows []Window, today time.Time) int {
	period, ok := FindWindow(windows, WindowPeriod)
	if !ok {
		return 0
	}
	next, ok := FindWindow(windows, WindowNextPeriod)
	day := DateAtLocation(today, period.Start.Location())
	if day.Before(period.Start) || (ok && !day.Before(next.Start)) {
		return 0
	}
	return DaysBetween(period.Start, day) + 1
}
