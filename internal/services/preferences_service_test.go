package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/bloom/internal/models"
)

func validPreferencesInput() PreferencesInput {
	return PreferencesInput{
		AverageCycleLength:   30,
		PeriodLength:         4,
		NotifyPeriodReminder: true,
		ReminderTime:         "7:30",
		ReminderLeadDays:     3,
	}
}

func TestValidatePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PreferencesInput)
		wantErr error
	}{
		{name: "valid", mutate: func(*PreferencesInput) {}},
		{name: "cycle too short", mutate: func(input *PreferencesInput) { input.AverageCycleLength = 20 }, wantErr: ErrPreferencesCycleLengthOutOfRange},
		{name: "cycle too long", mutate: func(input *PreferencesInput) { input.AverageCycleLength = 46 }, wantErr: ErrPreferencesCycleLengthOutOfRange},
		{name: "period zero", mutate: func(input *PreferencesInput) { input.PeriodLength = 0 }, wantErr: ErrPreferencesPeriodLengthOutOfRange},
		{name: "period too long", mutate: func(input *PreferencesInput) { input.PeriodLength = 11 }, wantErr: ErrPreferencesPeriodLengthOutOfRange},
		{name: "bad reminder time", mutate: func(input *PreferencesInput) { input.ReminderTime = "25:00" }, wantErr: ErrPreferencesReminderTimeInvalid},
		{name: "negative lead", mutate: func(input *PreferencesInput) { input.ReminderLeadDays = -1 }, wantErr: ErrPreferencesReminderLeadOutOfRange},
		{name: "lead too large", mutate: func(input *PreferencesInput) { input.ReminderLeadDays = 8 }, wantErr: ErrPreferencesReminderLeadOutOfRange},
		{name: "unknown sound", mutate: func(input *PreferencesInput) { input.SoundLog = "Airhorn.mp3" }, wantErr: ErrPreferencesSoundInvalid},
		{name: "silent sound", mutate: func(input *PreferencesInput) { input.SoundPeriod = models.SoundNone }},
		{name: "bounds inclusive", mutate: func(input *PreferencesInput) {
			input.AverageCycleLength = models.MaxCycleLength
			input.PeriodLength = models.MinPeriodLength
			input.ReminderLeadDays = models.MaxReminderLeadDays
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := validPreferencesInput()
			tt.mutate(&input)
			_, err := ValidatePreferences(input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePreferencesNormalizesReminderTime(t *testing.T) {
	t.Parallel()

	prefs, err := ValidatePreferences(validPreferencesInput())
	if err != nil {
		t.Fatalf("ValidatePreferences() unexpected error: %v", err)
	}
	if prefs.ReminderTime != "07:30" {
		t.Fatalf("expected normalized 07:30, got %q", prefs.ReminderTime)
	}
	if prefs.ID != models.CyclePreferencesID {
		t.Fatalf("expected singleton id %d, got %d", models.CyclePreferencesID, prefs.ID)
	}

	input := validPreferencesInput()
	input.ReminderTime = "  "
	prefs, err = ValidatePreferences(input)
	if err != nil {
		t.Fatalf("ValidatePreferences() unexpected error: %v", err)
	}
	if prefs.ReminderTime != models.DefaultReminderTime {
		t.Fatalf("expected default reminder time, got %q", prefs.ReminderTime)
	}
}

func TestValidatePreferencesDefaultsEmptySounds(t *testing.T) {
	t.Parallel()

	input := validPreferencesInput()
	input.SoundOvulation = models.SoundSoftPulse
	prefs, err := ValidatePreferences(input)
	if err != nil {
		t.Fatalf("ValidatePreferences() unexpected error: %v", err)
	}
	if prefs.SoundPeriod != models.SoundGentleBell || prefs.SoundLog != models.SoundGentleBell {
		t.Fatalf("expected default sounds, got %q/%q", prefs.SoundPeriod, prefs.SoundLog)
	}
	if prefs.SoundOvulation != models.SoundSoftPulse {
		t.Fatalf("expected chosen ovulation sound, got %q", prefs.SoundOvulation)
	}
}

func TestSanitizePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      models.CyclePreferences
		wantCycle  int
		wantPeriod int
		wantTime   string
		wantLead   int
	}{
		{
			name:       "zero record gets defaults",
			input:      models.CyclePreferences{},
			wantCycle:  models.DefaultCycleLength,
			wantPeriod: models.DefaultPeriodLength,
			wantTime:   models.DefaultReminderTime,
			wantLead:   0,
		},
		{
			name:       "out of range values clamp",
			input:      models.CyclePreferences{AverageCycleLength: 12, PeriodLength: 30, ReminderTime: "noon", ReminderLeadDays: 40},
			wantCycle:  models.MinCycleLength,
			wantPeriod: models.MaxPeriodLength,
			wantTime:   models.DefaultReminderTime,
			wantLead:   models.DefaultReminderLeadDays,
		},
		{
			name:       "long cycle clamps",
			input:      models.CyclePreferences{AverageCycleLength: 90, PeriodLength: 6, ReminderTime: "20:15", ReminderLeadDays: 1},
			wantCycle:  models.MaxCycleLength,
			wantPeriod: 6,
			wantTime:   "20:15",
			wantLead:   1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SanitizePreferences(tt.input)
			if got.AverageCycleLength != tt.wantCycle || got.PeriodLength != tt.wantPeriod {
				t.Fatalf("expected lengths %d/%d, got %d/%d", tt.wantCycle, tt.wantPeriod, got.AverageCycleLength, got.PeriodLength)
			}
			if got.ReminderTime != tt.wantTime || got.ReminderLeadDays != tt.wantLead {
				t.Fatalf("expected reminder %s/%d, got %s/%d", tt.wantTime, tt.wantLead, got.ReminderTime, got.ReminderLeadDays)
			}
			if !IsValidNotificationSound(got.SoundPeriod) || !IsValidNotificationSound(got.SoundOvulation) || !IsValidNotificationSound(got.SoundLog) {
				t.Fatalf("expected sanitized sounds, got %q/%q/%q", got.SoundPeriod, got.SoundOvulation, got.SoundLog)
			}
		})
	}
}

func TestPreferencesServiceGetReturnsDefaults(t *testing.T) {
	t.Parallel()

	service := NewPreferencesService(&stubPreferencesRepo{})
	prefs, err := service.GetPreferences(context.Background())
	if err != nil {
		t.Fatalf("GetPreferences() unexpected error: %v", err)
	}
	if prefs.AverageCycleLength != 28 || prefs.PeriodLength != 5 {
		t.Fatalf("expected 28/5 defaults, got %d/%d", prefs.AverageCycleLength, prefs.PeriodLength)
	}

	failing := NewPreferencesService(&stubPreferencesRepo{getErr: errors.New("boom")})
	if _, err := failing.GetPreferences(context.Background()); !errors.Is(err, ErrPreferencesLoadFailed) {
		t.Fatalf("expected ErrPreferencesLoadFailed, got %v", err)
	}
}

func TestPreferencesServiceUpdate(t *testing.T) {
	t.Parallel()

	repo := &stubPreferencesRepo{}
	service := NewPreferencesService(repo)

	invalid := validPreferencesInput()
	invalid.AverageCycleLength = 10
	if _, err := service.UpdatePreferences(context.Background(), invalid); !errors.Is(err, ErrPreferencesCycleLengthOutOfRange) {
		t.Fatalf("expected ErrPreferencesCycleLengthOutOfRange, got %v", err)
	}
	if repo.saved != 0 {
		t.Fatalf("expected invalid input not to be saved")
	}

	saved, err := service.UpdatePreferences(context.Background(), validPreferencesInput())
	if err != nil {
		t.Fatalf("UpdatePreferences() unexpected error: %v", err)
	}
	if repo.saved != 1 || repo.prefs == nil || repo.prefs.AverageCycleLength != 30 {
		t.Fatalf("expected saved preferences, got %#v", repo.prefs)
	}
	if saved.ReminderLeadDays != 3 || !saved.NotifyPeriodReminder || saved.NotifyLogReminder {
		t.Fatalf("unexpected saved reminder settings: %#v", saved)
	}

	failing := NewPreferencesService(&stubPreferencesRepo{saveErr: errors.New("readonly")})
	if _, err := failing.UpdatePreferences(context.Background(), validPreferencesInput()); !errors.Is(err, ErrPreferencesSaveFailed) {
		t.Fatalf("expected ErrPreferencesSaveFailed, got %v", err)
	}
}
