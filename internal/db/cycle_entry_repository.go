package db

import (
	"context"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
)

type CycleEntryRepository struct {
	database *gorm.DB
}

func NewCycleEntryRepository(database *gorm.DB) *CycleEntryRepository {
	return &CycleEntryRepository{database: database}
}

// ListEntries returns every entry, most recent start date first.
func (repo *CycleEntryRepository) ListEntries(ctx context.Context) ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.WithContext(ctx).
		Order("start_date DESC, created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CycleEntryRepository) Create(ctx context.Context, entry *models.CycleEntry) error {
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *CycleEntryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := repo.database.WithContext(ctx).Where("id = ?", id).Delete(&models.CycleEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
