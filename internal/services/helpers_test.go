package services

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func periodEntry(id string, start string, end string) models.CycleEntry {
	return models.CycleEntry{
		ID:        id,
		StartDate: mustParseDay(start),
		EndDate:   mustParseDay(end),
		Kind:      models.EntryKindPeriod,
	}
}

func ovulationEntry(id string, day string) models.CycleEntry {
	parsed := mustParseDay(day)
	return models.CycleEntry{
		ID:        id,
		StartDate: parsed,
		EndDate:   parsed,
		Kind:      models.EntryKindOvulation,
	}
}

type stubEntryRepo struct {
	entries   []models.CycleEntry
	listErr   error
	createErr error
	deleteErr error
}

func (stub *stubEntryRepo) ListEntries(context.Context) ([]models.CycleEntry, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.CycleEntry, len(stub.entries))
	copy(result, stub.entries)
	return result, nil
}

func (stub *stubEntryRepo) Create(_ context.Context, entry *models.CycleEntry) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *stubEntryRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if stub.deleteErr != nil {
		return false, stub.deleteErr
	}
	for index, entry := range stub.entries {
		if entry.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubPreferencesRepo struct {
	prefs   *models.CyclePreferences
	getErr  error
	saveErr error
	saved   int
}

func (stub *stubPreferencesRepo) GetPreferences(context.Context) (models.CyclePreferences, error) {
	if stub.getErr != nil {
		return models.CyclePreferences{}, stub.getErr
	}
	if stub.prefs == nil {
		return models.DefaultCyclePreferences(), nil
	}
	return *stub.prefs, nil
}

func (stub *stubPreferencesRepo) SavePreferences(_ context.Context, prefs *models.CyclePreferences) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	copied := *prefs
	stub.prefs = &copied
	stub.saved++
	return nil
}

type stubDailyLogRepo struct {
	logs      []models.DailyLog
	nextID    uint
	findErr   error
	saveErr   error
	updated   int
	lastRange [2]*time.Time
}

func (stub *stubDailyLogRepo) ListAll(context.Context) ([]models.DailyLog, error) {
	result := make([]models.DailyLog, len(stub.logs))
	copy(result, stub.logs)
	return result, nil
}

func (stub *stubDailyLogRepo) ListRange(_ context.Context, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	stub.lastRange = [2]*time.Time{fromStart, toEnd}
	result := make([]models.DailyLog, 0, len(stub.logs))
	for index := len(stub.logs) - 1; index >= 0; index-- {
		entry := stub.logs[index]
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (stub *stubDailyLogRepo) FindByDayRange(_ context.Context, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	if stub.findErr != nil {
		return models.DailyLog{}, false, stub.findErr
	}
	for _, entry := range stub.logs {
		if !entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			return entry, true, nil
		}
	}
	return models.DailyLog{}, false, nil
}

func (stub *stubDailyLogRepo) Create(_ context.Context, entry *models.DailyLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.nextID++
	entry.ID = stub.nextID
	stub.logs = append(stub.logs, *entry)
	return nil
}

func (stub *stubDailyLogRepo) Save(_ context.Context, entry *models.DailyLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	for index := range stub.logs {
		if stub.logs[index].ID == entry.ID {
			stub.logs[index] = *entry
			return nil
		}
	}
	return errors.New("log not found")
}

func (stub *stubDailyLogRepo) DeleteByDayRange(_ context.Context, dayStart time.Time, dayEnd time.Time) (bool, error) {
	for index, entry := range stub.logs {
		if !entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			stub.logs = append(stub.logs[:index], stub.logs[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubDailyLogRepo) UpdateSymptomIDs(_ context.Context, entry *models.DailyLog) error {
	stub.updated++
	return stub.Save(context.Background(), entry)
}

type stubSymptomRepo struct {
	symptoms []models.SymptomType
	nextID   uint
	listErr  error
}

func (stub *stubSymptomRepo) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	var count int64
	for _, id := range ids {
		for _, symptom := range stub.symptoms {
			if symptom.ID == id {
				count++
				break
			}
		}
	}
	return count, nil
}

func (stub *stubSymptomRepo) List(context.Context) ([]models.SymptomType, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.SymptomType, len(stub.symptoms))
	copy(result, stub.symptoms)
	return result, nil
}

func (stub *stubSymptomRepo) Create(_ context.Context, symptom *models.SymptomType) error {
	stub.nextID++
	symptom.ID = stub.nextID
	stub.symptoms = append(stub.symptoms, *symptom)
	return nil
}

func (stub *stubSymptomRepo) CreateBatch(ctx context.Context, symptoms []models.SymptomType) error {
	for index := range symptoms {
		if err := stub.Create(ctx, &symptoms[index]); err != nil {
			return err
		}
	}
	return nil
}

func (stub *stubSymptomRepo) FindByID(_ context.Context, id uint) (models.SymptomType, bool, error) {
	for _, symptom := range stub.symptoms {
		if symptom.ID == id {
			return symptom, true, nil
		}
	}
	return models.SymptomType{}, false, nil
}

func (stub *stubSymptomRepo) Delete(_ context.Context, symptom *models.SymptomType) error {
	for index := range stub.symptoms {
		if stub.symptoms[index].ID == symptom.ID {
			stub.symptoms = append(stub.symptoms[:index], stub.symptoms[index+1:]...)
			return nil
		}
	}
	return nil
}
