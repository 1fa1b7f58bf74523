package db

import (
	"context"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
)

type PreferencesRepository struct {
	database *gorm.DB
}

func NewPreferencesRepository(database *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{database: database}
}

// GetPreferences returns the stored record, or defaults before the first save.
func (repo *PreferencesRepository) GetPreferences(ctx context.Context) (models.CyclePreferences, error) {
	prefs := models.CyclePreferences{}
	result := repo.database.WithContext(ctx).
		Where("id = ?", models.CyclePreferencesID).
		Limit(1).
		Find(&prefs)
	if result.Error != nil {
		return models.CyclePreferences{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DefaultCyclePreferences(), nil
	}
	return prefs, nil
}

func (repo *PreferencesRepository) SavePreferences(ctx context.Context, prefs *models.CyclePreferences) error {
	prefs.ID = models.CyclePreferencesID
	return repo.database.WithContext(ctx).Save(prefs).Error
}
