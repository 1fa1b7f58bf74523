package db

import "gorm.io/gorm"

type Repositories struct {
	Entries     *CycleEntryRepository
	Preferences *PreferencesRepository
	DailyLogs   *DailyLogRepository
	Symptoms    *SymptomRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Entries:     NewCycleEntryRepository(database),
		Preferences: NewPreferencesRepository(database),
		DailyLogs:   NewDailyLogRepository(database),
		Symptoms:    NewSymptomRepository(database),
	}
}
