package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

type ReminderKind string

const (
	ReminderPeriod    ReminderKind = "period"
	ReminderOvulation ReminderKind = "ovulation"
	ReminderLog       ReminderKind = "log"
)

// Reminder is a notification the scheduler should deliver on SendOn for an
// event happening on EventDate.
type Reminder struct {
	Kind      ReminderKind `json:"kind"`
	SendOn    time.Time    `json:"send_on"`
	EventDate time.Time    `json:"event_date"`
	Message   string       `json:"message"`
	Sound     string       `json:"sound"`
}

func (reminder Reminder) Key() string {
	return fmt.Sprintf("%s:%s:%s", reminder.Kind, DayKey(reminder.EventDate), DayKey(reminder.SendOn))
}

// PlanReminders derives upcoming reminders from the predicted windows. Lead
// days shift the period and ovulation reminders earlier; the log reminder
// fires on every remaining day of the current period window. Reminders
// before today are dropped.
func PlanReminders(windows []Window, prefs models.CyclePreferences, today time.Time) []Reminder {
	if len(windows) == 0 {
		return []Reminder{}
	}

	day := DateAtLocation(today, referenceLocation(windows, today))
	lead := prefs.ReminderLeadDays
	if lead < 0 {
		lead = 0
	}

	reminders := make([]Reminder, 0)
	if next, ok := FindWindow(windows, WindowNextPeriod); ok && prefs.NotifyPeriodReminder {
		reminders = append(reminders, Reminder{
			Kind:      ReminderPeriod,
			SendOn:    next.Start.AddDate(0, 0, -lead),
			EventDate: next.Start,
			Message:   periodReminderMessage(lead, next.Start),
			Sound:     prefs.SoundPeriod,
		})
	}
	if ovulation, ok := FindWindow(windows, WindowOvulation); ok && prefs.NotifyOvulationReminder {
		reminders = append(reminders, Reminder{
			Kind:      ReminderOvulation,
			SendOn:    ovulation.Start.AddDate(0, 0, -lead),
			EventDate: ovulation.Start,
			Message:   ovulationReminderMessage(lead, ovulation.Start),
			Sound:     prefs.SoundOvulation,
		})
	}
	if period, ok := FindWindow(windows, WindowPeriod); ok && prefs.NotifyLogReminder {
		for logDay := period.Start; !logDay.After(period.End); logDay = logDay.AddDate(0, 0, 1) {
			reminders = append(reminders, Reminder{
				Kind:      ReminderLog,
				SendOn:    logDay,
				EventDate: logDay,
				Message:   "Bloom reminder: don't forget to log today's flow.",
				Sound:     prefs.SoundLog,
			})
		}
	}

	upcoming := make([]Reminder, 0, len(reminders))
	for _, reminder := range reminders {
		if reminder.SendOn.Before(day) {
			continue
		}
		upcoming = append(upcoming, reminder)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].SendOn.Before(upcoming[j].SendOn)
	})
	return upcoming
}

// RemindersDueOn filters reminders scheduled for the given day.
func RemindersDueOn(reminders []Reminder, day time.Time) []Reminder {
	due := make([]Reminder, 0)
	for _, reminder := range reminders {
		if sameCalendarDay(reminder.SendOn, day) {
			due = append(due, reminder)
		}
	}
	return due
}

func periodReminderMessage(lead int, start time.Time) string {
	if lead == 0 {
		return fmt.Sprintf("Bloom reminder: your predicted period starts today (%s).", start.Format("Jan 2"))
	}
	return fmt.Sprintf("Bloom reminder: your predicted period starts in %d day(s) on %s.", lead, start.Format("Jan 2"))
}

func ovulationReminderMessage(lead int, day time.Time) string {
	if lead == 0 {
		return fmt.Sprintf("Bloom reminder: today (%s) is your predicted ovulation day.", day.Format("Jan 2"))
	}
	return fmt.Sprintf("Bloom reminder: your predicted ovulation day is in %d day(s) on %s.", lead, day.Format("Jan 2"))
}
