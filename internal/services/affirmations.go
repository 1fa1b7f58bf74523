package services

import "time"

// affirmationKeys are i18n keys; the order fixes which text belongs to which day.
var affirmationKeys = []string{
	"affirmation.rhythm",
	"affirmation.stronger",
	"affirmation.listen",
	"affirmation.worthy",
	"affirmation.temple",
	"affirmation.cycles",
	"affirmation.priority",
	"affirmation.wisdom",
	"affirmation.growth",
	"affirmation.radiate",
}

type Affirmation struct {
	Key  string    `json:"key"`
	Date time.Time `json:"date"`
}

// DailyAffirmation picks the affirmation for a calendar day from its day of
// month, so every caller sees the same text for the same date.
func DailyAffirmation(day time.Time) Affirmation {
	index := day.Day() % len(affirmationKeys)
	return Affirmation{Key: affirmationKeys[index], Date: day}
}

func AffirmationKeys() []string {
	keys := make([]string, len(affirmationKeys))
	copy(keys, affirmationKeys)
	return keys
}
