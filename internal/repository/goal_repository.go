package repository

import (
	"context"

	"football_assistance_backend/internal/model"

	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.DB.WithContext(ctx).Create(goal).Error
}

// CreateBatch bulk inserts goals; the model hook re-derives every status.
func (r *GoalRepository) CreateBatch(ctx context.Context, goals []model.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&goals).Error
}

func (r *GoalRepository) FindByUserID(ctx context.Context, userID string) ([]model.Goal, error) {
	goals := []model.Goal{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.Goal, error) {
	var goal model.Goal
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).First(&goal, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &goal, nil
}

// UpdateProgress stores a new progress value; the save hook clamps it and recomputes the status.
func (r *GoalRepository) UpdateProgress(ctx context.Context, id, userID string, progress int) (*model.Goal, error) {
	goal, err := r.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	goal.Progress = progress
	if err := r.DB.WithContext(ctx).Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *GoalRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) error {
	return deleted(r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&model.Goal{}, "id = ?", id))
}

// CountByStatus returns the number of the user's goals per status.
func (r *GoalRepository) CountByStatus(ctx context.Context, userID string) (map[model.GoalStatus]int64, error) {
	var rows []struct {
		Status model.GoalStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).Model(&model.Goal{}).
		Scopes(ownedBy(userID)).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[model.GoalStatus]int64{model.GoalActive: 0, model.GoalCompleted: 0}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// FindActiveDueBetween lists active goals whose deadline falls in [from, to].
func (r *GoalRepository) FindActiveDueBetween(ctx context.Context, userID, from, to string) ([]model.Goal, error) {
	goals := []model.Goal{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Where("status = ? AND deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", model.GoalActive, from, to).
		Order("deadline").
		Find(&goals).Error
	return goals, err
}
