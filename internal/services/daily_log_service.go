package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrDailyLogLoadFailed   = errors.New("load daily log failed")
	ErrDailyLogSaveFailed   = errors.New("save daily log failed")
	ErrDailyLogDeleteFailed = errors.New("delete daily log failed")
	ErrDailyLogNotFound     = errors.New("daily log not found")
	ErrDailyLogInFuture     = errors.New("daily log date in future")
)

type DailyLogRepository interface {
	ListRange(ctx context.Context, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
	FindByDayRange(ctx context.Context, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	Create(ctx context.Context, entry *models.DailyLog) error
	Save(ctx context.Context, entry *models.DailyLog) error
	DeleteByDayRange(ctx context.Context, dayStart time.Time, dayEnd time.Time) (bool, error)
}

type SymptomIDValidator interface {
	ValidateSymptomIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type DailyLogService struct {
	logs     DailyLogRepository
	symptoms SymptomIDValidator
	location *time.Location
}

func NewDailyLogService(logs DailyLogRepository, symptoms SymptomIDValidator, location *time.Location) *DailyLogService {
	if location == nil {
		location = time.UTC
	}
	return &DailyLogService{
		logs:     logs,
		symptoms: symptoms,
		location: location,
	}
}

// FetchLogByDate returns the stored log for day, or an unsaved blank log.
func (service *DailyLogService) FetchLogByDate(ctx context.Context, day time.Time) (models.DailyLog, bool, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	entry, found, err := service.logs.FindByDayRange(ctx, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	if !found {
		return models.DailyLog{
			Date:        dayStart,
			EnergyLevel: models.DefaultEnergyLevel,
			SymptomIDs:  []uint{},
		}, false, nil
	}
	return service.localize(entry), true, nil
}

// UpsertDailyLog replaces the log for day. The boolean reports whether a new
// log was created.
func (service *DailyLogService) UpsertDailyLog(ctx context.Context, day time.Time, input DailyLogInput, now time.Time) (models.DailyLog, bool, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	if dayStart.After(DateAtLocation(now, service.location)) {
		return models.DailyLog{}, false, ErrDailyLogInFuture
	}

	normalized, err := NormalizeDailyLogInput(input)
	if err != nil {
		return models.DailyLog{}, false, err
	}
	symptomIDs, err := service.symptoms.ValidateSymptomIDs(ctx, normalized.SymptomIDs)
	if err != nil {
		if errors.Is(err, ErrInvalidSymptomID) {
			return models.DailyLog{}, false, err
		}
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogSaveFailed, err)
	}

	entry, found, err := service.logs.FindByDayRange(ctx, dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}

	if found {
		entry.Mood = normalized.Mood
		entry.EnergyLevel = normalized.EnergyLevel
		entry.SymptomIDs = symptomIDs
		entry.Notes = normalized.Notes
		if err := service.logs.Save(ctx, &entry); err != nil {
			return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogSaveFailed, err)
		}
		return service.localize(entry), false, nil
	}

	entry = models.DailyLog{
		Date:        dayStart,
		Mood:        normalized.Mood,
		EnergyLevel: normalized.EnergyLevel,
		SymptomIDs:  symptomIDs,
		Notes:       normalized.Notes,
	}
	if err := service.logs.Create(ctx, &entry); err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %v", ErrDailyLogSaveFailed, err)
	}
	return service.localize(entry), true, nil
}

// ListHistory returns logs between the optional bounds, newest first.
func (service *DailyLogService) ListHistory(ctx context.Context, from *time.Time, to *time.Time) ([]models.DailyLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}

	logs, err := service.logs.ListRange(ctx, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDailyLogLoadFailed, err)
	}
	for index := range logs {
		logs[index] = service.localize(logs[index])
	}
	return logs, nil
}

func (service *DailyLogService) DeleteDailyLog(ctx context.Context, day time.Time) error {
	dayStart, dayEnd := DayRange(day, service.location)
	deleted, err := service.logs.DeleteByDayRange(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDailyLogDeleteFailed, err)
	}
	if !deleted {
		return ErrDailyLogNotFound
	}
	return nil
}

func (service *DailyLogService) localize(entry models.DailyLog) models.DailyLog {
	entry.Date = DateAtLocation(entry.Date, service.location)
	if entry.SymptomIDs == nil {
		entry.SymptomIDs = []uint{}
	}
	return entry
}
