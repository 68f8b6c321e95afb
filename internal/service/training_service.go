package service

import (
	"context"

	"football_assistance_backend/internal/filter"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
)

type TrainingService struct {
	TrainingRepo *repository.TrainingRepository
}

func NewTrainingService(trainingRepo *repository.TrainingRepository) *TrainingService {
	return &TrainingService{TrainingRepo: trainingRepo}
}

type CreateTrainingRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Content         string `json:"content"`
	TrainingDate    string `json:"training_date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Notes           string `json:"notes"`
}

func (s *TrainingService) List(ctx context.Context, userID string, c filter.Criteria) ([]model.TrainingRecord, error) {
	records, err := s.TrainingRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filter.Training(records, c), nil
}

func (s *TrainingService) Create(ctx context.Context, userID string, req CreateTrainingRequest) (*model.TrainingRecord, error) {
	record := &model.TrainingRecord{
		OwnedRecord:     model.OwnedRecord{UserID: userID},
		Title:           req.Title,
		Content:         req.Content,
		TrainingDate:    req.TrainingDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if err := s.TrainingRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *TrainingService) Delete(ctx context.Context, userID, id string) error {
	return s.TrainingRepo.DeleteByIDAndUserID(ctx, id, userID)
}
