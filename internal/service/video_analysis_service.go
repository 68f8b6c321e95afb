package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"
	"football_assistance_backend/pkg/monitoring"
	"football_assistance_backend/pkg/tracing"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// VideoAnalysisService drives a reflection's analysis from pending to a terminal status.
type VideoAnalysisService struct {
	ReflectionRepo *repository.ReflectionRepository
	ProfileRepo    *repository.ProfileRepository
	AI             *AIService

	wg sync.WaitGroup
}

func NewVideoAnalysisService(reflectionRepo *repository.ReflectionRepository, profileRepo *repository.ProfileRepository, ai *AIService) *VideoAnalysisService {
	return &VideoAnalysisService{
		ReflectionRepo: reflectionRepo,
		ProfileRepo:    profileRepo,
		AI:             ai,
	}
}

type AnalysisDocument struct {
	Summary string `json:"summary"`
}

// Analyze runs one analysis synchronously and returns the summary.
// A reflection that never requested analysis is registered as pending first.
// Any generation or storage failure leaves the reflection in failed.
func (s *VideoAnalysisService) Analyze(ctx context.Context, reflectionID string, scene AnalysisContext) (string, error) {
	reflection, err := s.ReflectionRepo.FindByID(ctx, reflectionID)
	if err != nil {
		return "", err
	}
	return s.run(ctx, reflection, scene)
}

// AnalyzeFor is Analyze restricted to the caller's own reflections.
func (s *VideoAnalysisService) AnalyzeFor(ctx context.Context, userID, reflectionID string, scene AnalysisContext) (string, error) {
	reflection, err := s.ReflectionRepo.FindByIDAndUserID(ctx, reflectionID, userID)
	if err != nil {
		return "", err
	}
	return s.run(ctx, reflection, scene)
}

func (s *VideoAnalysisService) run(ctx context.Context, reflection *model.MatchReflection, scene AnalysisContext) (string, error) {
	reflectionID := reflection.ID
	if reflection.AnalysisStatus == nil {
		if err := s.ReflectionRepo.TransitionAnalysisStatus(ctx, reflectionID, nil, model.AnalysisPending); err != nil {
			return "", err
		}
	}
	if err := s.ReflectionRepo.TransitionAnalysisStatus(ctx, reflectionID, model.AnalysisPending.Ptr(), model.AnalysisProcessing); err != nil {
		return "", err
	}

	summary, err := s.AI.AnalyzeScene(ctx, scene)
	if err != nil {
		s.fail(reflectionID, err)
		return "", fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}

	doc, err := json.Marshal(AnalysisDocument{Summary: summary})
	if err != nil {
		s.fail(reflectionID, err)
		return "", err
	}
	if err := s.ReflectionRepo.CompleteAnalysis(ctx, reflectionID, datatypes.JSON(doc)); err != nil {
		if errors.Is(err, util.ErrAnalysisSuperseded) {
			logger.Log.Warn("Video analysis result discarded", zap.String("reflection_id", reflectionID))
			return "", err
		}
		s.fail(reflectionID, err)
		return "", err
	}

	monitoring.AnalysisOutcomes.WithLabelValues(string(model.AnalysisCompleted)).Inc()
	logger.Log.Info("Video analysis completed", zap.String("reflection_id", reflectionID))
	return summary, nil
}

// fail records the terminal failed status. It uses its own context so a cancelled
// request still leaves the row in a terminal state.
func (s *VideoAnalysisService) fail(reflectionID string, cause error) {
	monitoring.AnalysisOutcomes.WithLabelValues(string(model.AnalysisFailed)).Inc()
	logger.Log.Error("Video analysis failed", zap.String("reflection_id", reflectionID), zap.Error(cause))

	err := s.ReflectionRepo.TransitionAnalysisStatus(context.Background(), reflectionID, model.AnalysisProcessing.Ptr(), model.AnalysisFailed)
	if err != nil && !errors.Is(err, util.ErrInvalidTransition) {
		logger.Log.Error("Failed to mark analysis failed", zap.String("reflection_id", reflectionID), zap.Error(err))
	}
}

// ContextFor builds the analysis context from a stored reflection and its owner's position.
func (s *VideoAnalysisService) ContextFor(ctx context.Context, r *model.MatchReflection) AnalysisContext {
	scene := AnalysisContext{Opponent: r.Opponent, SceneDescription: r.SceneDescription}
	if profile, err := s.ProfileRepo.FindByUserID(ctx, r.UserID); err == nil {
		scene.Position = profile.Position
	}
	return scene
}

// Dispatch starts the analysis in the background. The caller does not wait; clients poll the
// reflection's status instead.
func (s *VideoAnalysisService) Dispatch(r *model.MatchReflection) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, end := tracing.StartSpan(context.Background(), "video_analysis")
		defer end()

		if _, err := s.Analyze(ctx, r.ID, s.ContextFor(ctx, r)); err != nil && !errors.Is(err, util.ErrUpstream) {
			logger.Log.Warn("Background analysis not run", zap.String("reflection_id", r.ID), zap.Error(err))
		}
	}()
}

// ExpireProcessing moves an analysis that has been processing for too long to failed.
// A generation still running for it will then lose its write with ErrAnalysisSuperseded.
func (s *VideoAnalysisService) ExpireProcessing(ctx context.Context, reflectionID string) error {
	err := s.ReflectionRepo.TransitionAnalysisStatus(ctx, reflectionID, model.AnalysisProcessing.Ptr(), model.AnalysisFailed)
	if err == nil {
		monitoring.AnalysisOutcomes.WithLabelValues(string(model.AnalysisFailed)).Inc()
	}
	return err
}

// Wait blocks until every dispatched analysis has finished.
func (s *VideoAnalysisService) Wait() {
	s.wg.Wait()
}
