package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

func newTestEntryService(repo *stubEntryRepo) *EntryService {
	service := NewEntryService(repo, time.UTC)
	counter := 0
	service.newID = func() string {
		counter++
		return "entry-" + strconv.Itoa(counter)
	}
	return service
}

func TestLogPeriodValidation(t *testing.T) {
	t.Parallel()

	now := mustParseDay("2024-02-20")

	tests := []struct {
		name    string
		start   string
		end     string
		flow    string
		wantErr error
	}{
		{name: "end before start", start: "2024-02-10", end: "2024-02-09", wantErr: ErrEntryDateRangeInvalid},
		{name: "too long", start: "2024-02-01", end: "2024-02-15", wantErr: ErrEntryPeriodTooLong},
		{name: "in future", start: "2024-02-21", end: "2024-02-22", wantErr: ErrEntryInFuture},
		{name: "invalid flow", start: "2024-02-10", end: "2024-02-12", flow: "spotting", wantErr: ErrEntryFlowInvalid},
		{name: "fourteen days allowed", start: "2024-02-01", end: "2024-02-14"},
		{name: "end in future allowed while ongoing", start: "2024-02-19", end: "2024-02-23"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &stubEntryRepo{}
			service := newTestEntryService(repo)
			_, err := service.LogPeriod(context.Background(), mustParseDay(tt.start), mustParseDay(tt.end), tt.flow, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			wantStored := 0
			if tt.wantErr == nil {
				wantStored = 1
			}
			if len(repo.entries) != wantStored {
				t.Fatalf("expected %d stored entries, got %d", wantStored, len(repo.entries))
			}
		})
	}
}

func TestLogPeriodNormalizesInput(t *testing.T) {
	t.Parallel()

	repo := &stubEntryRepo{}
	service := newTestEntryService(repo)

	start := time.Date(2024, time.February, 10, 18, 45, 0, 0, time.UTC)
	entry, err := service.LogPeriod(context.Background(), start, time.Time{}, " Heavy ", mustParseDay("2024-02-20"))
	if err != nil {
		t.Fatalf("LogPeriod() unexpected error: %v", err)
	}
	if entry.ID != "entry-1" {
		t.Fatalf("expected generated id entry-1, got %q", entry.ID)
	}
	if entry.Kind != models.EntryKindPeriod {
		t.Fatalf("expected period kind, got %q", entry.Kind)
	}
	if !entry.StartDate.Equal(mustParseDay("2024-02-10")) || !entry.EndDate.Equal(mustParseDay("2024-02-10")) {
		t.Fatalf("expected single-day period on 2024-02-10, got %s..%s", DayKey(entry.StartDate), DayKey(entry.EndDate))
	}
	if entry.FlowIntensity != models.FlowHeavy {
		t.Fatalf("expected heavy flow, got %q", entry.FlowIntensity)
	}
}

func TestLogPeriodUsesUUIDByDefault(t *testing.T) {
	t.Parallel()

	repo := &stubEntryRepo{}
	service := NewEntryService(repo, nil)

	entry, err := service.LogPeriod(context.Background(), mustParseDay("2024-02-10"), mustParseDay("2024-02-12"), "", mustParseDay("2024-02-20"))
	if err != nil {
		t.Fatalf("LogPeriod() unexpected error: %v", err)
	}
	if len(entry.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", entry.ID)
	}
}

func TestLogPeriodCreateFailure(t *testing.T) {
	t.Parallel()

	service := newTestEntryService(&stubEntryRepo{createErr: errors.New("disk full")})
	_, err := service.LogPeriod(context.Background(), mustParseDay("2024-02-10"), mustParseDay("2024-02-12"), "", mustParseDay("2024-02-20"))
	if !errors.Is(err, ErrEntryCreateFailed) {
		t.Fatalf("expected ErrEntryCreateFailed, got %v", err)
	}
}

func TestLogOvulation(t *testing.T) {
	t.Parallel()

	repo := &stubEntryRepo{}
	service := newTestEntryService(repo)
	now := mustParseDay("2024-02-20")

	if _, err := service.LogOvulation(context.Background(), mustParseDay("2024-02-21"), now); !errors.Is(err, ErrEntryInFuture) {
		t.Fatalf("expected ErrEntryInFuture, got %v", err)
	}

	entry, err := service.LogOvulation(context.Background(), mustParseDay("2024-02-14"), now)
	if err != nil {
		t.Fatalf("LogOvulation() unexpected error: %v", err)
	}
	if entry.Kind != models.EntryKindOvulation {
		t.Fatalf("expected ovulation kind, got %q", entry.Kind)
	}
	if !entry.StartDate.Equal(entry.EndDate) {
		t.Fatalf("expected single-day ovulation, got %s..%s", DayKey(entry.StartDate), DayKey(entry.EndDate))
	}
	if entry.FlowIntensity != models.FlowNone {
		t.Fatalf("expected no flow on ovulation entry, got %q", entry.FlowIntensity)
	}
}

func TestListHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	repo := &stubEntryRepo{entries: []models.CycleEntry{
		periodEntry("p1", "2024-01-04", "2024-01-08"),
		periodEntry("p3", "2024-02-29", "2024-03-03"),
		ovulationEntry("o1", "2024-02-14"),
		periodEntry("p2", "2024-02-01", "2024-02-05"),
	}}
	service := newTestEntryService(repo)

	history, err := service.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("ListHistory() unexpected error: %v", err)
	}
	expected := []string{"p3", "o1", "p2", "p1"}
	if len(history) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(history))
	}
	for index, id := range expected {
		if history[index].ID != id {
			t.Fatalf("expected entry %d to be %s, got %s", index, id, history[index].ID)
		}
	}
}

func TestListHistoryLoadFailure(t *testing.T) {
	t.Parallel()

	service := newTestEntryService(&stubEntryRepo{listErr: errors.New("boom")})
	if _, err := service.ListHistory(context.Background()); !errors.Is(err, ErrEntryLoadFailed) {
		t.Fatalf("expected ErrEntryLoadFailed, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()

	repo := &stubEntryRepo{entries: []models.CycleEntry{periodEntry("p1", "2024-02-01", "2024-02-05")}}
	service := newTestEntryService(repo)

	if err := service.DeleteEntry(context.Background(), "  "); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound for blank id, got %v", err)
	}
	if err := service.DeleteEntry(context.Background(), "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if err := service.DeleteEntry(context.Background(), " p1 "); err != nil {
		t.Fatalf("DeleteEntry() unexpected error: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected entry to be removed, got %d entries", len(repo.entries))
	}

	failing := newTestEntryService(&stubEntryRepo{deleteErr: errors.New("locked")})
	if err := failing.DeleteEntry(context.Background(), "p1"); !errors.Is(err, ErrEntryDeleteFailed) {
		t.Fatalf("expected ErrEntryDeleteFailed, got %v", err)
	}
}

func TestNormalizeFlow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "", want: models.FlowNone},
		{raw: " LIGHT ", want: models.FlowLight},
		{raw: "medium", want: models.FlowMedium},
		{raw: "Heavy", want: models.FlowHeavy},
		{raw: "none", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeFlow(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrEntryFlowInvalid) {
				t.Fatalf("NormalizeFlow(%q): expected ErrEntryFlowInvalid, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeFlow(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
		}
	}
}
