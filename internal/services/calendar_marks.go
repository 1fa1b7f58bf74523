package services

import "time"

// CalendarMark describes one calendar date. Kind is empty when no window
// claims the date; Selected is independent of Kind.
type CalendarMark struct {
	Kind     WindowKind `json:"kind,omitempty"`
	Selected bool       `json:"selected"`
}

// CalendarMarks maps YYYY-MM-DD keys to their marker.
type CalendarMarks map[string]CalendarMark

func (marks CalendarMarks) At(day time.Time) (CalendarMark, bool) {
	mark, ok := marks[DayKey(day)]
	return mark, ok
}

// BuildMarks expands windows into per-date marks. A date claimed by several
// windows keeps the kind with the lowest precedence number, whatever the
// input order. The reference date is then flagged as selected.
func BuildMarks(windows []Window, referenceDate time.Time) CalendarMarks {
	marks := make(CalendarMarks)
	for _, window := range windows {
		if window.Start.IsZero() || window.End.IsZero() {
			continue
		}
		for day := window.Start; !day.After(window.End); day = day.AddDate(0, 0, 1) {
			key := DayKey(day)
			existing, claimed := marks[key]
			if claimed && existing.Kind.Precedence() <= window.Kind.Precedence() {
				continue
			}
			marks[key] = CalendarMark{Kind: window.Kind}
		}
	}

	referenceKey := DayKey(DateAtLocation(referenceDate, referenceLocation(windows, referenceDate)))
	selected := marks[referenceKey]
	selected.Selected = true
	marks[referenceKey] = selected

	return marks
}

type CalendarDay struct {
	Date       time.Time  `json:"-"`
	DateString string     `json:"date"`
	Day        int        `json:"day"`
	InMonth    bool       `json:"in_month"`
	IsToday    bool       `json:"is_today"`
	Kind       WindowKind `json:"kind,omitempty"`
	Selected   bool       `json:"selected"`
}

// BuildCalendarMonth lays marks onto a Sunday-first grid covering monthStart's month.
func BuildCalendarMonth(monthStart time.Time, marks CalendarMarks, today time.Time, location *time.Location) []CalendarDay {
	monthStart = DateAtLocation(monthStart, location)
	monthStart = monthStart.AddDate(0, 0, 1-monthStart.Day())
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	todayKey := DayKey(DateAtLocation(today, location))

	days := make([]CalendarDay, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := DayKey(day)
		mark := marks[key]
		days = append(days, CalendarDay{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == monthStart.Month(),
			IsToday:    key == todayKey,
			Kind:       mark.Kind,
			Selected:   mark.Selected,
		})
	}
	return days
}

func referenceLocation(windows []Window, fallback time.Time) *time.Location {
	for _, window := range windows {
		if !window.Start.IsZero() {
			return window.Start.Location()
		}
	}
	return fallback.Location()
}
