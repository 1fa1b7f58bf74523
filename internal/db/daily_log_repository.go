package db

import (
	"context"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListAll(ctx context.Context) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.WithContext(ctx).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRange returns logs in [fromStart, toEnd), newest first. Nil bounds are open.
func (repo *DailyLogRepository) ListRange(ctx context.Context, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error) {
	query := repo.database.WithContext(ctx).Model(&models.DailyLog{})
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByDayRange(ctx context.Context, dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.WithContext(ctx).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(ctx context.Context, entry *models.DailyLog) error {
	return repo.database.WithContext(ctx).Create(entry).Error
}

func (repo *DailyLogRepository) Save(ctx context.Context, entry *models.DailyLog) error {
	return repo.database.WithContext(ctx).Save(entry).Error
}

func (repo *DailyLogRepository) DeleteByDayRange(ctx context.Context, dayStart time.Time, dayEnd time.Time) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *DailyLogRepository) UpdateSymptomIDs(ctx context.Context, entry *models.DailyLog) error {
	return repo.database.WithContext(ctx).Model(entry).Select("symptom_ids").Updates(entry).Error
}
