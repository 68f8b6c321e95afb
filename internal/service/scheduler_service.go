package service

import (
	"context"
	"errors"
	"time"

	"football_assistance_backend/internal/config"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const sweepBatchSize = 50

// AnalysisSweeper picks up analyses that were never started, for example after a restart
// dropped the background goroutine.
type AnalysisSweeper struct {
	ReflectionRepo *repository.ReflectionRepository
	Analysis       *VideoAnalysisService
	Cfg            config.SchedulerConfig
	Now            func() time.Time

	scheduler gocron.Scheduler
}

func NewAnalysisSweeper(reflectionRepo *repository.ReflectionRepository, analysis *VideoAnalysisService, cfg config.SchedulerConfig) *AnalysisSweeper {
	return &AnalysisSweeper{
		ReflectionRepo: reflectionRepo,
		Analysis:       analysis,
		Cfg:            cfg,
		Now:            time.Now,
	}
}

func (s *AnalysisSweeper) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	interval := time.Duration(s.Cfg.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.Sweep(context.Background()); err != nil {
				logger.Log.Error("[Scheduler] analysis sweep failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	sched.Start()
	s.scheduler = sched
	logger.Log.Info("Analysis sweeper started", zap.Duration("interval", interval))
	return nil
}

func (s *AnalysisSweeper) Shutdown() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// Sweep dispatches pending analyses whose goroutine was lost, for example to a restart.
// Stale processing ones are failed only when expiry is switched on.
func (s *AnalysisSweeper) Sweep(ctx context.Context) error {
	now := s.Now()

	pending, err := s.ReflectionRepo.FindStale(ctx, model.AnalysisPending, now.Add(-minutes(s.Cfg.PendingAfter, 10)), sweepBatchSize)
	if err != nil {
		return err
	}
	for i := range pending {
		logger.Log.Info("[Scheduler] dispatching stale analysis", zap.String("reflection_id", pending[i].ID))
		s.Analysis.Dispatch(&pending[i])
	}

	if !s.Cfg.ExpireProcessing {
		return nil
	}
	processing, err := s.ReflectionRepo.FindStale(ctx, model.AnalysisProcessing, now.Add(-minutes(s.Cfg.ProcessingAfter, 30)), sweepBatchSize)
	if err != nil {
		return err
	}
	for _, r := range processing {
		err := s.Analysis.ExpireProcessing(ctx, r.ID)
		if err != nil && !errors.Is(err, util.ErrInvalidTransition) {
			return err
		}
		logger.Log.Warn("[Scheduler] analysis timed out", zap.String("reflection_id", r.ID))
	}
	return nil
}

func minutes(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Minute
}
