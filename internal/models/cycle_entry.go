package models

import "time"

const (
	EntryKindPeriod    = "period"
	EntryKindOvulation = "ovulation"
)

const (
	FlowNone   = ""
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

// CycleEntry is a logged observation. Entries are never updated in place;
// corrections are a delete followed by a new entry.
type CycleEntry struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	StartDate     time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date"`
	Kind          string    `gorm:"not null" json:"kind"`
	FlowIntensity string    `gorm:"not null" json:"flow_intensity,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (CycleEntry) TableName() string {
	return "cycle_entries"
}

func (entry CycleEntry) IsPeriod() bool {
	return entry.Kind == EntryKindPeriod
}

func (entry CycleEntry) IsOvulation() bool {
	return entry.Kind == EntryKindOvulation
}
