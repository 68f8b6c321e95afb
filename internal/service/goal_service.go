package service

import (
	"context"

	"football_assistance_backend/internal/filter"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
)

type GoalService struct {
	GoalRepo *repository.GoalRepository
}

func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{GoalRepo: goalRepo}
}

type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description"`
	Deadline    *string `json:"deadline"`
	Progress    int     `json:"progress"`
}

func (s *GoalService) List(ctx context.Context, userID string, c filter.Criteria) ([]model.Goal, error) {
	goals, err := s.GoalRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filter.Goals(goals, c), nil
}

func (s *GoalService) Create(ctx context.Context, userID string, req CreateGoalRequest) (*model.Goal, error) {
	deadline := req.Deadline
	if deadline != nil && *deadline == "" {
		deadline = nil
	}
	goal := &model.Goal{
		OwnedRecord: model.OwnedRecord{UserID: userID},
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Progress:    req.Progress,
	}
	if err := s.GoalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) UpdateProgress(ctx context.Context, userID, id string, progress int) (*model.Goal, error) {
	return s.GoalRepo.UpdateProgress(ctx, id, userID, progress)
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.GoalRepo.DeleteByIDAndUserID(ctx, id, userID)
}
