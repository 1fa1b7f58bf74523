package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrPreferencesCycleLengthOutOfRange  = errors.New("preferences cycle length out of range")
	ErrPreferencesPeriodLengthOutOfRange = errors.New("preferences period length out of range")
	ErrPreferencesReminderTimeInvalid    = errors.New("preferences reminder time invalid")
	ErrPreferencesReminderLeadOutOfRange = errors.New("preferences reminder lead days out of range")
	ErrPreferencesSoundInvalid           = errors.New("preferences notification sound invalid")
	ErrPreferencesLoadFailed             = errors.New("load preferences failed")
	ErrPreferencesSaveFailed             = errors.New("save preferences failed")
)

const reminderTimeLayout = "15:04"

type PreferencesRepository interface {
	GetPreferences(ctx context.Context) (models.CyclePreferences, error)
	SavePreferences(ctx context.Context, prefs *models.CyclePreferences) error
}

type PreferencesInput struct {
	AverageCycleLength      int
	PeriodLength            int
	NotifyPeriodReminder    bool
	NotifyOvulationReminder bool
	NotifyLogReminder       bool
	ReminderTime            string
	ReminderLeadDays        int
	SoundPeriod             string
	SoundOvulation          string
	SoundLog                string
}

func IsValidCycleLength(value int) bool {
	return value >= models.MinCycleLength && value <= models.MaxCycleLength
}

func IsValidPeriodLength(value int) bool {
	return value >= models.MinPeriodLength && value <= models.MaxPeriodLength
}

func IsValidNotificationSound(value string) bool {
	switch value {
	case models.SoundGentleBell, models.SoundChimeBreeze, models.SoundSoftPulse, models.SoundNone:
		return true
	default:
		return false
	}
}

// normalizeSound maps an empty value to fallback.
func normalizeSound(raw string, fallback string) (string, error) {
	sound := strings.TrimSpace(raw)
	if sound == "" {
		return fallback, nil
	}
	if !IsValidNotificationSound(sound) {
		return "", ErrPreferencesSoundInvalid
	}
	return sound, nil
}

// ParseReminderTime accepts HH:MM in 24h form and returns hour and minute.
func ParseReminderTime(raw string) (int, int, error) {
	parsed, err := time.Parse(reminderTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, ErrPreferencesReminderTimeInvalid
	}
	return parsed.Hour(), parsed.Minute(), nil
}

func ValidatePreferences(input PreferencesInput) (models.CyclePreferences, error) {
	if !IsValidCycleLength(input.AverageCycleLength) {
		return models.CyclePreferences{}, ErrPreferencesCycleLengthOutOfRange
	}
	if !IsValidPeriodLength(input.PeriodLength) {
		return models.CyclePreferences{}, ErrPreferencesPeriodLengthOutOfRange
	}

	reminderTime := strings.TrimSpace(input.ReminderTime)
	if reminderTime == "" {
		reminderTime = models.DefaultReminderTime
	}
	hour, minute, err := ParseReminderTime(reminderTime)
	if err != nil {
		return models.CyclePreferences{}, err
	}
	if input.ReminderLeadDays < 0 || input.ReminderLeadDays > models.MaxReminderLeadDays {
		return models.CyclePreferences{}, ErrPreferencesReminderLeadOutOfRange
	}

	defaults := models.DefaultCyclePreferences()
	soundPeriod, err := normalizeSound(input.SoundPeriod, defaults.SoundPeriod)
	if err != nil {
		return models.CyclePreferences{}, err
	}
	soundOvulation, err := normalizeSound(input.SoundOvulation, defaults.SoundOvulation)
	if err != nil {
		return models.CyclePreferences{}, err
	}
	soundLog, err := normalizeSound(input.SoundLog, defaults.SoundLog)
	if err != nil {
		return models.CyclePreferences{}, err
	}

	return models.CyclePreferences{
		ID:                      models.CyclePreferencesID,
		AverageCycleLength:      input.AverageCycleLength,
		PeriodLength:            input.PeriodLength,
		NotifyPeriodReminder:    input.NotifyPeriodReminder,
		NotifyOvulationReminder: input.NotifyOvulationReminder,
		NotifyLogReminder:       input.NotifyLogReminder,
		ReminderTime:            time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format(reminderTimeLayout),
		ReminderLeadDays:        input.ReminderLeadDays,
		SoundPeriod:             soundPeriod,
		SoundOvulation:          soundOvulation,
		SoundLog:                soundLog,
	}, nil
}

// SanitizePreferences clamps a stored record into documented bounds so the
// engine never sees nonsensical lengths.
func SanitizePreferences(prefs models.CyclePreferences) models.CyclePreferences {
	switch {
	case prefs.AverageCycleLength == 0:
		prefs.AverageCycleLength = models.DefaultCycleLength
	case prefs.AverageCycleLength < models.MinCycleLength:
		prefs.AverageCycleLength = models.MinCycleLength
	case prefs.AverageCycleLength > models.MaxCycleLength:
		prefs.AverageCycleLength = models.MaxCycleLength
	}
	switch {
	case prefs.PeriodLength <= 0:
		prefs.PeriodLength = models.DefaultPeriodLength
	case prefs.PeriodLength > models.MaxPeriodLength:
		prefs.PeriodLength = models.MaxPeriodLength
	}
	if _, _, err := ParseReminderTime(prefs.ReminderTime); err != nil {
		prefs.ReminderTime = models.DefaultReminderTime
	}
	if prefs.ReminderLeadDays < 0 || prefs.ReminderLeadDays > models.MaxReminderLeadDays {
		prefs.ReminderLeadDays = models.DefaultReminderLeadDays
	}

	defaults := models.DefaultCyclePreferences()
	if !IsValidNotificationSound(prefs.SoundPeriod) {
		prefs.SoundPeriod = defaults.SoundPeriod
	}
	if !IsValidNotificationSound(prefs.SoundOvulation) {
		prefs.SoundOvulation = defaults.SoundOvulation
	}
	if !IsValidNotificationSound(prefs.SoundLog) {
		prefs.SoundLog = defaults.SoundLog
	}
	return prefs
}

type PreferencesService struct {
	preferences PreferencesRepository
}

func NewPreferencesService(preferences PreferencesRepository) *PreferencesService {
	return &PreferencesService{preferences: preferences}
}

// GetPreferences satisfies PreferencesReader with sanitized values.
func (service *PreferencesService) GetPreferences(ctx context.Context) (models.CyclePreferences, error) {
	prefs, err := service.preferences.GetPreferences(ctx)
	if err != nil {
		return models.CyclePreferences{}, ErrPreferencesLoadFailed
	}
	return SanitizePreferences(prefs), nil
}

func (service *PreferencesService) UpdatePreferences(ctx context.Context, input PreferencesInput) (models.CyclePreferences, error) {
	prefs, err := ValidatePreferences(input)
	if err != nil {
		return models.CyclePreferences{}, err
	}
	if err := service.preferences.SavePreferences(ctx, &prefs); err != nil {
		return models.CyclePreferences{}, ErrPreferencesSaveFailed
	}
	return prefs, nil
}
