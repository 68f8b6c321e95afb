package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/monitoring"

	"golang.org/x/sync/errgroup"
)

// BackupService converts a user's records to and from the portable backup document.
type BackupService struct {
	GoalRepo       *repository.GoalRepository
	TrainingRepo   *repository.TrainingRepository
	ReflectionRepo *repository.ReflectionRepository
	MemberRepo     *repository.TeamMemberRepository
	ProfileRepo    *repository.ProfileRepository
	Now            func() time.Time
}

func NewBackupService(goalRepo *repository.GoalRepository, trainingRepo *repository.TrainingRepository, reflectionRepo *repository.ReflectionRepository, memberRepo *repository.TeamMemberRepository, profileRepo *repository.ProfileRepository) *BackupService {
	return &BackupService{
		GoalRepo:       goalRepo,
		TrainingRepo:   trainingRepo,
		ReflectionRepo: reflectionRepo,
		MemberRepo:     memberRepo,
		ProfileRepo:    profileRepo,
		Now:            time.Now,
	}
}

type ImportResult struct {
	Goals       int `json:"goals"`
	Training    int `json:"training"`
	Reflections int `json:"reflections"`
	TeamMembers int `json:"teamMembers"`
}

// BackupFilename is the attachment name offered for an export made at t.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("football-assistance-backup-%s.json", util.Today(t))
}

// Export reads every collection concurrently. A single failed read fails the whole export.
func (s *BackupService) Export(ctx context.Context, userID string) (*model.BackupDocument, error) {
	data := &model.BackupData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Goals, err = s.GoalRepo.FindByUserID(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		data.Training, err = s.TrainingRepo.FindByUserID(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		data.Reflections, err = s.ReflectionRepo.FindByUserID(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		data.TeamMembers, err = s.MemberRepo.FindByUserID(gctx, userID)
		return
	})
	g.Go(func() error {
		profile, err := s.ProfileRepo.FindByUserID(gctx, userID)
		if errors.Is(err, util.ErrNotFound) {
			return nil
		}
		data.Profile = profile
		return err
	})
	if err := g.Wait(); err != nil {
		monitoring.BackupExports.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.BackupExports.WithLabelValues("ok").Inc()
	return &model.BackupDocument{
		ExportDate: s.Now().UTC().Format(time.RFC3339),
		Version:    model.BackupVersion,
		Data:       data,
	}, nil
}

// WriteExport encodes doc as two-space indented JSON.
func WriteExport(w io.Writer, doc *model.BackupDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Import re-creates every record of the backup under userID as new rows.
// Collections are inserted one after another without a transaction, so a failure
// keeps whatever was inserted before it. The profile is never written.
func (s *BackupService) Import(ctx context.Context, r io.Reader, userID string) (*ImportResult, error) {
	var doc model.BackupDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidBackup, err)
	}
	if doc.Data == nil {
		return nil, util.ErrInvalidBackup
	}

	now := s.Now()
	data := doc.Data
	result := &ImportResult{}

	if len(data.Goals) > 0 {
		for i := range data.Goals {
			data.Goals[i].Reown(userID, now)
			data.Goals[i].UpdatedAt = now
		}
		if err := s.GoalRepo.CreateBatch(ctx, data.Goals); err != nil {
			return nil, fmt.Errorf("import goals: %w", err)
		}
		result.Goals = len(data.Goals)
		monitoring.BackupImportedRecords.WithLabelValues("goals").Add(float64(result.Goals))
	}

	if len(data.Training) > 0 {
		for i := range data.Training {
			data.Training[i].Reown(userID, now)
		}
		if err := s.TrainingRepo.CreateBatch(ctx, data.Training); err != nil {
			return nil, fmt.Errorf("import training: %w", err)
		}
		result.Training = len(data.Training)
		monitoring.BackupImportedRecords.WithLabelValues("training").Add(float64(result.Training))
	}

	if len(data.Reflections) > 0 {
		for i := range data.Reflections {
			data.Reflections[i].Reown(userID, now)
			data.Reflections[i].ClearVideo()
		}
		if err := s.ReflectionRepo.CreateBatch(ctx, data.Reflections); err != nil {
			return nil, fmt.Errorf("import reflections: %w", err)
		}
		result.Reflections = len(data.Reflections)
		monitoring.BackupImportedRecords.WithLabelValues("reflections").Add(float64(result.Reflections))
	}

	if len(data.TeamMembers) > 0 {
		for i := range data.TeamMembers {
			data.TeamMembers[i].Reown(userID, now)
		}
		if err := s.MemberRepo.CreateBatch(ctx, data.TeamMembers); err != nil {
			return nil, fmt.Errorf("import team members: %w", err)
		}
		result.TeamMembers = len(data.TeamMembers)
		monitoring.BackupImportedRecords.WithLabelValues("teamMembers").Add(float64(result.TeamMembers))
	}

	return result, nil
}
