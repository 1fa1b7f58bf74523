package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

const exportDateLayout = "2006-01-02"

var ExportCSVHeaders = []string{
	"Start date",
	"End date",
	"Kind",
	"Days",
	"Flow",
}

type ExportService struct {
	entries  CycleEntryLister
	location *time.Location
}

type ExportSummary struct {
	TotalEntries     int    `json:"total_entries"`
	PeriodEntries    int    `json:"period_entries"`
	OvulationEntries int    `json:"ovulation_entries"`
	HasData          bool   `json:"has_data"`
	DateFrom         string `json:"date_from,omitempty"`
	DateTo           string `json:"date_to,omitempty"`
}

func NewExportService(entries CycleEntryLister, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{entries: entries, location: location}
}

// LoadEntriesForRange returns entries starting inside [from, to], oldest first.
// Nil bounds are open.
func (service *ExportService) LoadEntriesForRange(ctx context.Context, from *time.Time, to *time.Time) ([]models.CycleEntry, error) {
	entries, err := service.entries.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.CycleEntry, 0, len(entries))
	for _, entry := range entries {
		start := DateAtLocation(entry.StartDate, service.location)
		if from != nil && start.Before(*from) {
			continue
		}
		if to != nil && start.After(*to) {
			continue
		}
		entry.StartDate = start
		entry.EndDate = DateAtLocation(entry.EndDate, service.location)
		filtered = append(filtered, entry)
	}
	sortEntriesAscending(filtered)
	return filtered, nil
}

func (service *ExportService) BuildSummary(ctx context.Context, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.LoadEntriesForRange(ctx, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	summary := ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].StartDate.Format(exportDateLayout),
		DateTo:       entries[len(entries)-1].StartDate.Format(exportDateLayout),
	}
	for _, entry := range entries {
		switch entry.Kind {
		case models.EntryKindPeriod:
			summary.PeriodEntries++
		case models.EntryKindOvulation:
			summary.OvulationEntries++
		}
	}
	return summary, nil
}

func (service *ExportService) BuildCSV(ctx context.Context, from *time.Time, to *time.Time) ([]byte, error) {
	entries, err := service.LoadEntriesForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := writer.Write(exportCSVColumns(entry)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func exportCSVColumns(entry models.CycleEntry) []string {
	return []string{
		entry.StartDate.Format(exportDateLayout),
		entry.EndDate.Format(exportDateLayout),
		csvKindLabel(entry.Kind),
		strconv.Itoa(DaysBetween(entry.StartDate, entry.EndDate) + 1),
		csvFlowLabel(entry.FlowIntensity),
	}
}

func csvKindLabel(kind string) string {
	if kind == models.EntryKindOvulation {
		return "Ovulation"
	}
	return "Period"
}

func csvFlowLabel(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}
