package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/bloom/internal/models"
)

const MaxDailyLogNotesLength = 2000

var (
	ErrDailyLogMoodInvalid      = errors.New("invalid daily log mood")
	ErrDailyLogEnergyOutOfRange = errors.New("daily log energy level out of range")
)

type DailyLogInput struct {
	Mood        string
	EnergyLevel int
	SymptomIDs  []uint
	Notes       string
}

// NormalizeDailyLogInput validates mood and energy and trims notes. A zero
// energy level means "not set" and becomes the default.
func NormalizeDailyLogInput(input DailyLogInput) (DailyLogInput, error) {
	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
	if input.Mood != "" && !IsValidMood(input.Mood) {
		return input, ErrDailyLogMoodInvalid
	}

	if input.EnergyLevel == 0 {
		input.EnergyLevel = models.DefaultEnergyLevel
	}
	if input.EnergyLevel < models.MinEnergyLevel || input.EnergyLevel > models.MaxEnergyLevel {
		return input, ErrDailyLogEnergyOutOfRange
	}

	if input.SymptomIDs == nil {
		input.SymptomIDs = []uint{}
	}
	input.Notes = TrimDailyLogNotes(strings.TrimSpace(input.Notes))
	return input, nil
}

func IsValidMood(mood string) bool {
	switch mood {
	case models.MoodHappy, models.MoodLoved, models.MoodEnergetic, models.MoodNeutral, models.MoodTired, models.MoodSad:
		return true
	default:
		return false
	}
}

// TrimDailyLogNotes caps notes at MaxDailyLogNotesLength runes.
func TrimDailyLogNotes(value string) string {
	if utf8.RuneCountInString(value) <= MaxDailyLogNotesLength {
		return value
	}
	runes := []rune(value)
	return string(runes[:MaxDailyLogNotesLength])
}
