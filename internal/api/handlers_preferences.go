package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) GetPreferences(c *fiber.Ctx) error {
	prefs, err := handler.preferencesService.GetPreferences(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load preferences")
	}
	return c.JSON(prefs)
}

// UpdatePreferences replaces cycle lengths; omitted reminder fields keep their stored values.
func (handler *Handler) UpdatePreferences(c *fiber.Ctx) error {
	payload := preferencesPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid preferences")
	}

	current, err := handler.preferencesService.GetPreferences(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load preferences")
	}

	input := services.PreferencesInput{
		AverageCycleLength:      payload.AverageCycleLength,
		PeriodLength:            payload.PeriodLength,
		NotifyPeriodReminder:    boolOr(payload.NotifyPeriodReminder, current.NotifyPeriodReminder),
		NotifyOvulationReminder: boolOr(payload.NotifyOvulationReminder, current.NotifyOvulationReminder),
		NotifyLogReminder:       boolOr(payload.NotifyLogReminder, current.NotifyLogReminder),
		ReminderTime:            current.ReminderTime,
		ReminderLeadDays:        current.ReminderLeadDays,
		SoundPeriod:             stringOr(payload.SoundPeriod, current.SoundPeriod),
		SoundOvulation:          stringOr(payload.SoundOvulation, current.SoundOvulation),
		SoundLog:                stringOr(payload.SoundLog, current.SoundLog),
	}
	if payload.ReminderTime != "" {
		input.ReminderTime = payload.ReminderTime
	}
	if payload.ReminderLeadDays != nil {
		input.ReminderLeadDays = *payload.ReminderLeadDays
	}

	prefs, err := handler.preferencesService.UpdatePreferences(c.UserContext(), input)
	switch {
	case err == nil:
		return c.JSON(prefs)
	case errors.Is(err, services.ErrPreferencesCycleLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "cycle length out of range")
	case errors.Is(err, services.ErrPreferencesPeriodLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "period length out of range")
	case errors.Is(err, services.ErrPreferencesReminderTimeInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid reminder time")
	case errors.Is(err, services.ErrPreferencesReminderLeadOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "reminder lead days out of range")
	case errors.Is(err, services.ErrPreferencesSoundInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid notification sound")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save preferences")
	}
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func stringOr(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
