package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var ErrCycleSnapshotFailed = errors.New("load cycle snapshot failed")

type CycleEntryLister interface {
	ListEntries(ctx context.Context) ([]models.CycleEntry, error)
}

type PreferencesReader interface {
	GetPreferences(ctx context.Context) (models.CyclePreferences, error)
}

// CycleSnapshot is the state the prediction engine reads for one request.
type CycleSnapshot struct {
	Entries     []models.CycleEntry
	Preferences models.CyclePreferences
}

type CycleOverview struct {
	ReferenceDate   time.Time           `json:"reference_date"`
	HasData         bool                `json:"has_data"`
	LastPeriodStart time.Time           `json:"last_period_start,omitzero"`
	CurrentCycleDay int                 `json:"current_cycle_day"`
	Phase           PhaseLabel          `json:"phase"`
	Windows         []Window            `json:"windows"`
	Warnings        []PredictionWarning `json:"warnings,omitempty"`
}

type CycleService struct {
	entries     CycleEntryLister
	preferences PreferencesReader
	location    *time.Location
}

func NewCycleService(entries CycleEntryLister, preferences PreferencesReader, location *time.Location) *CycleService {
	if location == nil {
		location = time.UTC
	}
	return &CycleService{
		entries:     entries,
		preferences: preferences,
		location:    location,
	}
}

func (service *CycleService) Location() *time.Location {
	return service.location
}

func (service *CycleService) Snapshot(ctx context.Context) (CycleSnapshot, error) {
	entries, err := service.entries.ListEntries(ctx)
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("%w: entries: %v", ErrCycleSnapshotFailed, err)
	}
	prefs, err := service.preferences.GetPreferences(ctx)
	if err != nil {
		return CycleSnapshot{}, fmt.Errorf("%w: preferences: %v", ErrCycleSnapshotFailed, err)
	}
	return CycleSnapshot{Entries: entries, Preferences: prefs}, nil
}

func (service *CycleService) Windows(ctx context.Context, referenceDate time.Time) ([]Window, []PredictionWarning, error) {
	snapshot, err := service.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	windows, warnings := ComputeWindows(snapshot.Entries, snapshot.Preferences, service.day(referenceDate))
	return windows, warnings, nil
}

func (service *CycleService) Overview(ctx context.Context, referenceDate time.Time) (CycleOverview, error) {
	reference := service.day(referenceDate)
	windows, warnings, err := service.Windows(ctx, reference)
	if err != nil {
		return CycleOverview{}, err
	}

	overview := CycleOverview{
		ReferenceDate:   reference,
		HasData:         len(windows) > 0,
		CurrentCycleDay: CurrentCycleDay(windows, reference),
		Phase:           ResolvePhase(windows, reference),
		Windows:         windows,
		Warnings:        warnings,
	}
	if period, ok := FindWindow(windows, WindowPeriod); ok {
		overview.LastPeriodStart = period.Start
	}
	return overview, nil
}

func (service *CycleService) Marks(ctx context.Context, referenceDate time.Time) (CalendarMarks, []Window, error) {
	reference := service.day(referenceDate)
	windows, _, err := service.Windows(ctx, reference)
	if err != nil {
		return nil, nil, err
	}
	return BuildMarks(windows, reference), windows, nil
}

// Phase resolves queryDate against the prediction framed at referenceDate.
func (service *CycleService) Phase(ctx context.Context, queryDate time.Time, referenceDate time.Time) (PhaseLabel, error) {
	windows, _, err := service.Windows(ctx, referenceDate)
	if err != nil {
		return PhaseUnknown, err
	}
	return ResolvePhase(windows, service.day(queryDate)), nil
}

func (service *CycleService) Month(ctx context.Context, monthStart time.Time, referenceDate time.Time, today time.Time) ([]CalendarDay, error) {
	marks, _, err := service.Marks(ctx, referenceDate)
	if err != nil {
		return nil, err
	}
	return BuildCalendarMonth(monthStart, marks, today, service.location), nil
}

func (service *CycleService) day(value time.Time) time.Time {
	return DateAtLocation(value, service.location)
}

func (service *CycleService) Reminders(ctx context.Context, today time.Time) ([]Reminder, error) {
	snapshot, err := service.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	day := service.day(today)
	windows, _ := ComputeWindows(snapshot.Entries, snapshot.Preferences, day)
	return PlanReminders(windows, snapshot.Preferences, day), nil
}

func (service *CycleService) CalendarExport(ctx context.Context, referenceDate time.Time, now time.Time) (string, error) {
	windows, _, err := service.Windows(ctx, referenceDate)
	if err != nil {
		return "", err
	}
	return ExportWindowsICS(windows, now), nil
}
