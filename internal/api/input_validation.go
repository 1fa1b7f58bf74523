package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

type periodPayload struct {
	StartDate     string `json:"start_date" form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	FlowIntensity string `json:"flow_intensity" form:"flow_intensity" validate:"omitempty,oneof=light medium heavy"`
}

type ovulationPayload struct {
	Date string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
}

type accessTokenPayload struct {
	Passphrase string `json:"passphrase" validate:"required,max=256"`
	Scope      string `json:"scope" validate:"omitempty,oneof=api feed"`
}

type dailyLogPayload struct {
	Mood        string `json:"mood" validate:"omitempty,oneof=happy loved energetic neutral tired sad"`
	EnergyLevel int    `json:"energy_level" validate:"omitempty,min=1,max=10"`
	SymptomIDs  []uint `json:"symptom_ids" validate:"omitempty,max=32,dive,min=1"`
	Notes       string `json:"notes" validate:"max=2000"`
}

type symptomPayload struct {
	Name  string `json:"name" validate:"required,max=80"`
	Icon  string `json:"icon" validate:"omitempty,max=16"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type preferencesPayload struct {
	AverageCycleLength      int    `json:"average_cycle_length" form:"average_cycle_length" validate:"required,min=21,max=45"`
	PeriodLength            int    `json:"period_length" form:"period_length" validate:"required,min=1,max=10"`
	NotifyPeriodReminder    *bool  `json:"notify_period_reminder" form:"notify_period_reminder"`
	NotifyOvulationReminder *bool  `json:"notify_ovulation_reminder" form:"notify_ovulation_reminder"`
	NotifyLogReminder       *bool  `json:"notify_log_reminder" form:"notify_log_reminder"`
	ReminderTime            string `json:"reminder_time" form:"reminder_time" validate:"omitempty,datetime=15:04"`
	ReminderLeadDays        *int   `json:"reminder_lead_days" form:"reminder_lead_days" validate:"omitempty,min=0,max=7"`
	SoundPeriod             string `json:"notification_sound_period" form:"notification_sound_period" validate:"omitempty,oneof=GentleBell.mp3 ChimeBreeze.mp3 SoftPulse.mp3 none"`
	SoundOvulation          string `json:"notification_sound_ovulation" form:"notification_sound_ovulation" validate:"omitempty,oneof=GentleBell.mp3 ChimeBreeze.mp3 SoftPulse.mp3 none"`
	SoundLog                string `json:"notification_sound_log" form:"notification_sound_log" validate:"omitempty,oneof=GentleBell.mp3 ChimeBreeze.mp3 SoftPulse.mp3 none"`
}

func (handler *Handler) parsePayload(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return err
	}
	return handler.validate.Struct(payload)
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// parseOptionalDayQuery returns fallback when the query value is absent.
func parseOptionalDayQuery(raw string, fallback time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return parseDayParam(raw, location)
}

func parseMonthQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, location), nil
}
