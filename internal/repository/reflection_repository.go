package repository

import (
	"context"
	"errors"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReflectionRepository struct {
	DB *gorm.DB
}

func NewReflectionRepository(db *gorm.DB) *ReflectionRepository {
	return &ReflectionRepository{DB: db}
}

func (r *ReflectionRepository) Create(ctx context.Context, reflection *model.MatchReflection) error {
	return r.DB.WithContext(ctx).Create(reflection).Error
}

func (r *ReflectionRepository) CreateBatch(ctx context.Context, reflections []model.MatchReflection) error {
	if len(reflections) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&reflections).Error
}

func (r *ReflectionRepository) FindByUserID(ctx context.Context, userID string) ([]model.MatchReflection, error) {
	reflections := []model.MatchReflection{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Order("match_date DESC").Order("created_at DESC").
		Find(&reflections).Error
	return reflections, err
}

func (r *ReflectionRepository) FindRecent(ctx context.Context, userID string, limit int) ([]model.MatchReflection, error) {
	reflections := []model.MatchReflection{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Order("match_date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&reflections).Error
	return reflections, err
}

func (r *ReflectionRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.MatchReflection, error) {
	var reflection model.MatchReflection
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).First(&reflection, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reflection, nil
}

// FindByID loads a reflection regardless of owner. Only the analysis pipeline uses it.
func (r *ReflectionRepository) FindByID(ctx context.Context, id string) (*model.MatchReflection, error) {
	var reflection model.MatchReflection
	if err := r.DB.WithContext(ctx).First(&reflection, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &reflection, nil
}

func (r *ReflectionRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) error {
	return deleted(r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&model.MatchReflection{}, "id = ?", id))
}

// TransitionAnalysisStatus moves a reflection from one analysis status to the next.
// The write only lands if the row still holds from, so concurrent writers cannot skip a step.
func (r *ReflectionRepository) TransitionAnalysisStatus(ctx context.Context, id string, from *model.AnalysisStatus, to model.AnalysisStatus) error {
	if !model.CanTransition(from, to) {
		return util.ErrInvalidTransition
	}
	return r.compareAndSet(ctx, id, from, map[string]interface{}{
		"analysis_status":     to,
		"analysis_updated_at": time.Now(),
	})
}

// CompleteAnalysis stores the analysis document and marks it completed in one guarded write.
// It returns util.ErrAnalysisSuperseded when the row left processing in the meantime.
func (r *ReflectionRepository) CompleteAnalysis(ctx context.Context, id string, analysis datatypes.JSON) error {
	err := r.compareAndSet(ctx, id, model.AnalysisProcessing.Ptr(), map[string]interface{}{
		"video_analysis":      analysis,
		"analysis_status":     model.AnalysisCompleted,
		"analysis_updated_at": time.Now(),
	})
	if errors.Is(err, util.ErrInvalidTransition) {
		return util.ErrAnalysisSuperseded
	}
	return err
}

func (r *ReflectionRepository) compareAndSet(ctx context.Context, id string, from *model.AnalysisStatus, values map[string]interface{}) error {
	query := r.DB.WithContext(ctx).Model(&model.MatchReflection{}).Where("id = ?", id)
	if from == nil {
		query = query.Where("analysis_status IS NULL")
	} else {
		query = query.Where("analysis_status = ?", *from)
	}
	result := query.Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrInvalidTransition
	}
	return nil
}

// FindStale lists reflections that have sat in status since before olderThan.
func (r *ReflectionRepository) FindStale(ctx context.Context, status model.AnalysisStatus, olderThan time.Time, limit int) ([]model.MatchReflection, error) {
	reflections := []model.MatchReflection{}
	err := r.DB.WithContext(ctx).
		Where("analysis_status = ? AND analysis_updated_at < ?", status, olderThan).
		Order("analysis_updated_at").
		Limit(limit).
		Find(&reflections).Error
	return reflections, err
}
