package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"football_assistance_backend/internal/filter"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"

	"go.uber.org/zap"
)

type ReflectionService struct {
	ReflectionRepo *repository.ReflectionRepository
	Storage        *StorageService
	Analysis       *VideoAnalysisService
}

func NewReflectionService(reflectionRepo *repository.ReflectionRepository, storage *StorageService, analysis *VideoAnalysisService) *ReflectionService {
	return &ReflectionService{
		ReflectionRepo: reflectionRepo,
		Storage:        storage,
		Analysis:       analysis,
	}
}

type CreateReflectionRequest struct {
	MatchDate        string `json:"match_date" form:"match_date" binding:"required,datetime=2006-01-02"`
	Opponent         string `json:"opponent" form:"opponent" binding:"max=255"`
	JerseyNumber     *int   `json:"jersey_number" form:"jersey_number" binding:"omitempty,min=1,max=99"`
	SceneDescription string `json:"scene_description" form:"scene_description"`
	Thoughts         string `json:"thoughts" form:"thoughts"`
}

// VideoUpload is a match video attached to a new reflection.
type VideoUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// VideoKey is the storage key of an uploaded video: <ownerId>/<unixMillis>.<ext>.
func VideoKey(userID string, at time.Time, ext string) string {
	return fmt.Sprintf("%s/%d%s", userID, at.UnixMilli(), ext)
}

func (s *ReflectionService) List(ctx context.Context, userID string, c filter.Criteria) ([]model.MatchReflection, error) {
	reflections, err := s.ReflectionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filter.Reflections(reflections, c), nil
}

// Create stores the reflection. With a video, the file is uploaded first, the reflection
// starts in pending and an analysis is dispatched without waiting for it.
func (s *ReflectionService) Create(ctx context.Context, userID string, req CreateReflectionRequest, video *VideoUpload) (*model.MatchReflection, error) {
	reflection := &model.MatchReflection{
		OwnedRecord:      model.OwnedRecord{UserID: userID},
		MatchDate:        req.MatchDate,
		Opponent:         req.Opponent,
		JerseyNumber:     req.JerseyNumber,
		SceneDescription: req.SceneDescription,
		Thoughts:         req.Thoughts,
	}

	if video != nil {
		ext, ok := util.VideoExtension(video.Filename)
		if !ok {
			return nil, fmt.Errorf("unsupported video type %q", video.Filename)
		}
		now := time.Now()
		key := VideoKey(userID, now, ext)
		if err := s.Storage.Upload(ctx, key, video.Reader, video.Size, video.ContentType); err != nil {
			return nil, fmt.Errorf("upload video: %w", err)
		}
		reflection.VideoURL = &key
		reflection.AnalysisStatus = model.AnalysisPending.Ptr()
		reflection.AnalysisUpdatedAt = &now
	}

	if err := s.ReflectionRepo.Create(ctx, reflection); err != nil {
		if reflection.VideoURL != nil {
			s.removeVideo(*reflection.VideoURL)
		}
		return nil, err
	}

	if reflection.VideoURL != nil && s.Analysis != nil {
		s.Analysis.Dispatch(reflection)
	}
	return reflection, nil
}

func (s *ReflectionService) Delete(ctx context.Context, userID, id string) error {
	reflection, err := s.ReflectionRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.ReflectionRepo.DeleteByIDAndUserID(ctx, id, userID); err != nil {
		return err
	}
	if reflection.VideoURL != nil {
		s.removeVideo(*reflection.VideoURL)
	}
	return nil
}

func (s *ReflectionService) VideoLink(r *model.MatchReflection) string {
	if r.VideoURL == nil {
		return ""
	}
	return s.Storage.GetURL(*r.VideoURL)
}

func (s *ReflectionService) removeVideo(key string) {
	if err := s.Storage.Delete(context.Background(), key); err != nil {
		logger.Log.Warn("Failed to delete stored video", zap.String("key", key), zap.Error(err))
	}
}
