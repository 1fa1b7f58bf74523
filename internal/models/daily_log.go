package models

import "time"

const (
	MoodHappy     = "happy"
	MoodLoved     = "loved"
	MoodEnergetic = "energetic"
	MoodNeutral   = "neutral"
	MoodTired     = "tired"
	MoodSad       = "sad"
)

const (
	MinEnergyLevel     = 1
	MaxEnergyLevel     = 10
	DefaultEnergyLevel = 5
)

// DailyLog is the wellbeing journal for one calendar day. There is at most
// one log per day; saving again replaces its contents.
type DailyLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Mood        string    `gorm:"not null" json:"mood"`
	EnergyLevel int       `gorm:"not null" json:"energy_level"`
	SymptomIDs  []uint    `gorm:"serializer:json" json:"symptom_ids"`
	Notes       string    `gorm:"not null" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (DailyLog) TableName() string {
	return "daily_logs"
}
