package db

import (
	"context"

	"github.com/terraincognita07/bloom/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.SymptomType{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *SymptomRepository) List(ctx context.Context) ([]models.SymptomType, error) {
	symptoms := make([]models.SymptomType, 0)
	if err := repo.database.WithContext(ctx).Order("id ASC").Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (repo *SymptomRepository) Create(ctx context.Context, symptom *models.SymptomType) error {
	return repo.database.WithContext(ctx).Create(symptom).Error
}

func (repo *SymptomRepository) CreateBatch(ctx context.Context, symptoms []models.SymptomType) error {
	if len(symptoms) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).Create(&symptoms).Error
}

func (repo *SymptomRepository) FindByID(ctx context.Context, id uint) (models.SymptomType, bool, error) {
	symptom := models.SymptomType{}
	result := repo.database.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&symptom)
	if result.Error != nil {
		return models.SymptomType{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomType{}, false, nil
	}
	return symptom, true, nil
}

func (repo *SymptomRepository) Delete(ctx context.Context, symptom *models.SymptomType) error {
	return repo.database.WithContext(ctx).Delete(symptom).Error
}
