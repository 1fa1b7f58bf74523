package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/terraincognita07/bloom/internal/models"
)

var (
	ErrInvalidSymptomID              = errors.New("invalid symptom id")
	ErrInvalidSymptomName            = errors.New("invalid symptom name")
	ErrInvalidSymptomColor           = errors.New("invalid symptom color")
	ErrSymptomNameTaken              = errors.New("symptom name already exists")
	ErrSymptomNotFound               = errors.New("symptom not found")
	ErrBuiltinSymptomDeleteForbidden = errors.New("built-in symptom cannot be deleted")
	ErrLoadSymptomsFailed            = errors.New("load symptoms failed")
	ErrCreateSymptomFailed           = errors.New("create symptom failed")
	ErrDeleteSymptomFailed           = errors.New("delete symptom failed")
	ErrCleanSymptomLogsFailed        = errors.New("clean symptom logs failed")
)

const (
	maxSymptomNameLength = 80
	defaultSymptomIcon   = "✨"
)

var hexSymptomColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type SymptomRepository interface {
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
	List(ctx context.Context) ([]models.SymptomType, error)
	Create(ctx context.Context, symptom *models.SymptomType) error
	CreateBatch(ctx context.Context, symptoms []models.SymptomType) error
	FindByID(ctx context.Context, id uint) (models.SymptomType, bool, error)
	Delete(ctx context.Context, symptom *models.SymptomType) error
}

type SymptomLogRepository interface {
	ListAll(ctx context.Context) ([]models.DailyLog, error)
	UpdateSymptomIDs(ctx context.Context, entry *models.DailyLog) error
}

type SymptomService struct {
	symptoms SymptomRepository
	logs     SymptomLogRepository
}

type SymptomFrequency struct {
	SymptomID uint   `json:"symptom_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Count     int    `json:"count"`
	TotalDays int    `json:"total_days"`
}

func NewSymptomService(symptoms SymptomRepository, logs SymptomLogRepository) *SymptomService {
	return &SymptomService{
		symptoms: symptoms,
		logs:     logs,
	}
}

// FetchSymptoms returns the catalog, seeding any missing built-ins first.
func (service *SymptomService) FetchSymptoms(ctx context.Context) ([]models.SymptomType, error) {
	if err := service.EnsureBuiltinSymptoms(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}
	symptoms, err := service.symptoms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}
	SortSymptomsByBuiltinAndName(symptoms)
	return symptoms, nil
}

func (service *SymptomService) EnsureBuiltinSymptoms(ctx context.Context) error {
	existing, err := service.symptoms.List(ctx)
	if err != nil {
		return err
	}
	return service.symptoms.CreateBatch(ctx, MissingBuiltinSymptoms(symptomNameSet(existing)))
}

func (service *SymptomService) CreateSymptom(ctx context.Context, name string, icon string, color string) (models.SymptomType, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	color = strings.TrimSpace(color)

	if name == "" || len(name) > maxSymptomNameLength {
		return models.SymptomType{}, ErrInvalidSymptomName
	}
	if icon == "" {
		icon = defaultSymptomIcon
	}
	if !hexSymptomColorPattern.MatchString(color) {
		return models.SymptomType{}, ErrInvalidSymptomColor
	}

	existing, err := service.FetchSymptoms(ctx)
	if err != nil {
		return models.SymptomType{}, err
	}
	if _, taken := symptomNameSet(existing)[normalizeSymptomName(name)]; taken {
		return models.SymptomType{}, ErrSymptomNameTaken
	}

	symptom := models.SymptomType{
		Name:      name,
		Icon:      icon,
		Color:     strings.ToUpper(color),
		IsBuiltin: false,
	}
	if err := service.symptoms.Create(ctx, &symptom); err != nil {
		return models.SymptomType{}, fmt.Errorf("%w: %v", ErrCreateSymptomFailed, err)
	}
	return symptom, nil
}

// DeleteSymptom removes a custom symptom and strips it from every daily log.
func (service *SymptomService) DeleteSymptom(ctx context.Context, id uint) error {
	symptom, found, err := service.symptoms.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteSymptomFailed, err)
	}
	if !found {
		return ErrSymptomNotFound
	}
	if symptom.IsBuiltin {
		return ErrBuiltinSymptomDeleteForbidden
	}

	if err := service.symptoms.Delete(ctx, &symptom); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteSymptomFailed, err)
	}
	if err := service.RemoveSymptomFromLogs(ctx, symptom.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrCleanSymptomLogsFailed, err)
	}
	return nil
}

// ValidateSymptomIDs deduplicates and sorts ids, rejecting unknown ones.
func (service *SymptomService) ValidateSymptomIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}

	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	filtered := make([]uint, 0, len(unique))
	for id := range unique {
		filtered = append(filtered, id)
	}

	matched, err := service.symptoms.CountByIDs(ctx, filtered)
	if err != nil {
		return nil, err
	}
	if int(matched) != len(filtered) {
		return nil, ErrInvalidSymptomID
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i] < filtered[j] })
	return filtered, nil
}

func (service *SymptomService) RemoveSymptomFromLogs(ctx context.Context, symptomID uint) error {
	logs, err := service.logs.ListAll(ctx)
	if err != nil {
		return err
	}

	for index := range logs {
		updated := RemoveUint(logs[index].SymptomIDs, symptomID)
		if len(updated) == len(logs[index].SymptomIDs) {
			continue
		}
		logs[index].SymptomIDs = updated
		if err := service.logs.UpdateSymptomIDs(ctx, &logs[index]); err != nil {
			return err
		}
	}
	return nil
}

// CalculateFrequencies counts how many of the given logs mention each symptom,
// most frequent first.
func (service *SymptomService) CalculateFrequencies(ctx context.Context, logs []models.DailyLog) ([]SymptomFrequency, error) {
	if len(logs) == 0 {
		return []SymptomFrequency{}, nil
	}
	totalDays := len(logs)

	counts := make(map[uint]int)
	for _, logEntry := range logs {
		for _, id := range logEntry.SymptomIDs {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return []SymptomFrequency{}, nil
	}

	symptoms, err := service.FetchSymptoms(ctx)
	if err != nil {
		return nil, err
	}
	symptomByID := make(map[uint]models.SymptomType, len(symptoms))
	for _, symptom := range symptoms {
		symptomByID[symptom.ID] = symptom
	}

	result := make([]SymptomFrequency, 0, len(counts))
	for id, count := range counts {
		if symptom, ok := symptomByID[id]; ok {
			result = append(result, SymptomFrequency{
				SymptomID: id,
				Name:      symptom.Name,
				Icon:      symptom.Icon,
				Count:     count,
				TotalDays: totalDays,
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Name < result[j].Name
		}
		return result[i].Count > result[j].Count
	})
	return result, nil
}

func MissingBuiltinSymptoms(existingByName map[string]struct{}) []models.SymptomType {
	missing := make([]models.SymptomType, 0)
	for _, symptom := range models.DefaultBuiltinSymptoms() {
		if _, ok := existingByName[normalizeSymptomName(symptom.Name)]; ok {
			continue
		}
		missing = append(missing, models.SymptomType{
			Name:      symptom.Name,
			Icon:      symptom.Icon,
			Color:     symptom.Color,
			IsBuiltin: true,
		})
	}
	return missing
}

// SortSymptomsByBuiltinAndName keeps built-ins in catalog order, then custom
// symptoms alphabetically.
func SortSymptomsByBuiltinAndName(symptoms []models.SymptomType) {
	builtinOrder := make(map[string]int)
	for index, symptom := range models.DefaultBuiltinSymptoms() {
		builtinOrder[normalizeSymptomName(symptom.Name)] = index
	}

	sort.SliceStable(symptoms, func(i, j int) bool {
		left := symptoms[i]
		right := symptoms[j]
		if left.IsBuiltin != right.IsBuiltin {
			return left.IsBuiltin
		}
		if left.IsBuiltin {
			leftIndex, leftHas := builtinOrder[normalizeSymptomName(left.Name)]
			rightIndex, rightHas := builtinOrder[normalizeSymptomName(right.Name)]
			switch {
			case leftHas && rightHas && leftIndex != rightIndex:
				return leftIndex < rightIndex
			case leftHas != rightHas:
				return leftHas
			}
		}
		return normalizeSymptomName(left.Name) < normalizeSymptomName(right.Name)
	})
}

func RemoveUint(values []uint, target uint) []uint {
	result := make([]uint, 0, len(values))
	for _, value := range values {
		if value != target {
			result = append(result, value)
		}
	}
	return result
}

func symptomNameSet(symptoms []models.SymptomType) map[string]struct{} {
	names := make(map[string]struct{}, len(symptoms))
	for _, symptom := range symptoms {
		if key := normalizeSymptomName(symptom.Name); key != "" {
			names[key] = struct{}{}
		}
	}
	return names
}

func normalizeSymptomName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
