package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrEntryDateRangeInvalid = errors.New("entry date range invalid")
	ErrEntryPeriodTooLong    = errors.New("entry period too long")
	ErrEntryFlowInvalid      = errors.New("entry flow invalid")
	ErrEntryInFuture         = errors.New("entry date in future")
	ErrEntryNotFound         = errors.New("entry not found")
	ErrEntryCreateFailed     = errors.New("create entry failed")
	ErrEntryDeleteFailed     = errors.New("delete entry failed")
	ErrEntryLoadFailed       = errors.New("load entries failed")
)

const maxLoggedPeriodDays = 14

type EntryRepository interface {
	ListEntries(ctx context.Context) ([]models.CycleEntry, error)
	Create(ctx context.Context, entry *models.CycleEntry) error
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type EntryService struct {
	entries  EntryRepository
	location *time.Location
	newID    func() string
}

func NewEntryService(entries EntryRepository, location *time.Location) *EntryService {
	if location == nil {
		location = time.UTC
	}
	return &EntryService{
		entries:  entries,
		location: location,
		newID:    uuid.NewString,
	}
}

func NormalizeFlow(raw string) (string, error) {
	switch flow := strings.ToLower(strings.TrimSpace(raw)); flow {
	case models.FlowNone, models.FlowLight, models.FlowMedium, models.FlowHeavy:
		return flow, nil
	default:
		return "", ErrEntryFlowInvalid
	}
}

func (service *EntryService) LogPeriod(ctx context.Context, start time.Time, end time.Time, flow string, now time.Time) (models.CycleEntry, error) {
	startDay := DateAtLocation(start, service.location)
	endDay := startDay
	if !end.IsZero() {
		endDay = DateAtLocation(end, service.location)
	}
	if endDay.Before(startDay) {
		return models.CycleEntry{}, ErrEntryDateRangeInvalid
	}
	if DaysBetween(startDay, endDay)+1 > maxLoggedPeriodDays {
		return models.CycleEntry{}, ErrEntryPeriodTooLong
	}
	if startDay.After(DateAtLocation(now, service.location)) {
		return models.CycleEntry{}, ErrEntryInFuture
	}

	normalizedFlow, err := NormalizeFlow(flow)
	if err != nil {
		return models.CycleEntry{}, err
	}

	return service.create(ctx, models.CycleEntry{
		StartDate:     startDay,
		EndDate:       endDay,
		Kind:          models.EntryKindPeriod,
		FlowIntensity: normalizedFlow,
	})
}

func (service *EntryService) LogOvulation(ctx context.Context, day time.Time, now time.Time) (models.CycleEntry, error) {
	ovulationDay := DateAtLocation(day, service.location)
	if ovulationDay.After(DateAtLocation(now, service.location)) {
		return models.CycleEntry{}, ErrEntryInFuture
	}

	return service.create(ctx, models.CycleEntry{
		StartDate: ovulationDay,
		EndDate:   ovulationDay,
		Kind:      models.EntryKindOvulation,
	})
}

// ListHistory returns every entry, most recent start date first.
func (service *EntryService) ListHistory(ctx context.Context) ([]models.CycleEntry, error) {
	entries, err := service.entries.ListEntries(ctx)
	if err != nil {
		return nil, ErrEntryLoadFailed
	}

	sorted := make([]models.CycleEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	for index := range sorted {
		sorted[index].StartDate = DateAtLocation(sorted[index].StartDate, service.location)
		sorted[index].EndDate = DateAtLocation(sorted[index].EndDate, service.location)
	}
	return sorted, nil
}

func (service *EntryService) DeleteEntry(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEntryNotFound
	}
	deleted, err := service.entries.DeleteByID(ctx, id)
	if err != nil {
		return ErrEntryDeleteFailed
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

func (service *EntryService) create(ctx context.Context, entry models.CycleEntry) (models.CycleEntry, error) {
	entry.ID = service.newID()
	if err := service.entries.Create(ctx, &entry); err != nil {
		return models.CycleEntry{}, ErrEntryCreateFailed
	}
	return entry, nil
}

func sortEntriesAscending(entries []models.CycleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartDate.Before(entries[j].StartDate)
	})
}
