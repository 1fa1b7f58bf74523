package models

import "time"

const (
	DefaultCycleLength = 28
	MinCycleLength     = 21
	MaxCycleLength     = 45

	DefaultPeriodLength = 5
	MinPeriodLength     = 1
	MaxPeriodLength     = 10

	DefaultReminderTime     = "09:00"
	DefaultReminderLeadDays = 2
	MaxReminderLeadDays     = 7
)

// Notification sounds are opaque to the server; senders only honour SoundNone.
const (
	SoundGentleBell  = "GentleBell.mp3"
	SoundChimeBreeze = "ChimeBreeze.mp3"
	SoundSoftPulse   = "SoftPulse.mp3"
	SoundNone        = "none"
)

// CyclePreferencesID is the key of the single preferences row.
const CyclePreferencesID = 1

type CyclePreferences struct {
	ID                      uint      `gorm:"primaryKey" json:"-"`
	AverageCycleLength      int       `gorm:"not null" json:"average_cycle_length"`
	PeriodLength            int       `gorm:"not null" json:"period_length"`
	NotifyPeriodReminder    bool      `gorm:"not null" json:"notify_period_reminder"`
	NotifyOvulationReminder bool      `gorm:"not null" json:"notify_ovulation_reminder"`
	NotifyLogReminder       bool      `gorm:"not null" json:"notify_log_reminder"`
	ReminderTime            string    `gorm:"not null" json:"reminder_time"`
	ReminderLeadDays        int       `gorm:"not null" json:"reminder_lead_days"`
	SoundPeriod             string    `gorm:"column:notification_sound_period;not null" json:"notification_sound_period"`
	SoundOvulation          string    `gorm:"column:notification_sound_ovulation;not null" json:"notification_sound_ovulation"`
	SoundLog                string    `gorm:"column:notification_sound_log;not null" json:"notification_sound_log"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (CyclePreferences) TableName() string {
	return "cycle_preferences"
}

func DefaultCyclePreferences() CyclePreferences {
	return CyclePreferences{
		ID:                      CyclePreferencesID,
		AverageCycleLength:      DefaultCycleLength,
		PeriodLength:            DefaultPeriodLength,
		NotifyPeriodReminder:    true,
		NotifyOvulationReminder: true,
		NotifyLogReminder:       true,
		ReminderTime:            DefaultReminderTime,
		ReminderLeadDays:        DefaultReminderLeadDays,
		SoundPeriod:             SoundGentleBell,
		SoundOvulation:          SoundChimeBreeze,
		SoundLog:                SoundGentleBell,
	}
}
