package repository

import (
	"context"

	"football_assistance_backend/internal/model"

	"gorm.io/gorm"
)

type TrainingRepository struct {
	DB *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

func (r *TrainingRepository) Create(ctx context.Context, record *model.TrainingRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

func (r *TrainingRepository) CreateBatch(ctx context.Context, records []model.TrainingRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&records).Error
}

func (r *TrainingRepository) FindByUserID(ctx context.Context, userID string) ([]model.TrainingRecord, error) {
	records := []model.TrainingRecord{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Order("training_date DESC").Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *TrainingRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.TrainingRecord, error) {
	var record model.TrainingRecord
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &record, nil
}

// FindSince lists records dated on or after since (YYYY-MM-DD), oldest first.
func (r *TrainingRepository) FindSince(ctx context.Context, userID, since string) ([]model.TrainingRecord, error) {
	records := []model.TrainingRecord{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Where("training_date >= ?", since).
		Order("training_date").
		Find(&records).Error
	return records, err
}

func (r *TrainingRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) error {
	return deleted(r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&model.TrainingRecord{}, "id = ?", id))
}
