package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"

	"golang.org/x/sync/errgroup"
)

const (
	recentReflectionLimit = 5
	trainingWindowDays    = 7
	chartWindowDays       = 30
	deadlineWarningDays   = 3
)

const (
	NotificationGoalDeadline     = "goal_deadline"
	NotificationTrainingReminder = "training_reminder"
)

type DashboardService struct {
	GoalRepo         *repository.GoalRepository
	TrainingRepo     *repository.TrainingRepository
	ReflectionRepo   *repository.ReflectionRepository
	SubscriptionRepo *repository.SubscriptionRepository
	Now              func() time.Time
}

func NewDashboardService(goalRepo *repository.GoalRepository, trainingRepo *repository.TrainingRepository, reflectionRepo *repository.ReflectionRepository, subscriptionRepo *repository.SubscriptionRepository) *DashboardService {
	return &DashboardService{
		GoalRepo:         goalRepo,
		TrainingRepo:     trainingRepo,
		ReflectionRepo:   reflectionRepo,
		SubscriptionRepo: subscriptionRepo,
		Now:              time.Now,
	}
}

type TrainingPoint struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type Notification struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	GoalID  string `json:"goal_id,omitempty"`
}

type DashboardSummary struct {
	ActiveGoals       int64                   `json:"active_goals"`
	CompletedGoals    int64                   `json:"completed_goals"`
	WeeklySessions    int                     `json:"weekly_sessions"`
	RecentReflections []model.MatchReflection `json:"recent_reflections"`
	Subscription      *model.Subscription     `json:"subscription"`
	TrainingSeries    []TrainingPoint         `json:"training_series"`
	Notifications     []Notification          `json:"notifications"`
}

func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	now := s.Now()
	today := util.Today(now)
	chartStart := util.Today(now.AddDate(0, 0, -(chartWindowDays - 1)))
	weekStart := util.Today(now.AddDate(0, 0, -trainingWindowDays))

	var (
		counts      map[model.GoalStatus]int64
		dueGoals    []model.Goal
		training    []model.TrainingRecord
		reflections []model.MatchReflection
		sub         *model.Subscription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.GoalRepo.CountByStatus(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		dueGoals, err = s.GoalRepo.FindActiveDueBetween(gctx, userID, today, util.Today(now.AddDate(0, 0, deadlineWarningDays)))
		return
	})
	g.Go(func() (err error) {
		from := chartStart
		if weekStart < from {
			from = weekStart
		}
		training, err = s.TrainingRepo.FindSince(gctx, userID, from)
		return
	})
	g.Go(func() (err error) {
		reflections, err = s.ReflectionRepo.FindRecent(gctx, userID, recentReflectionLimit)
		return
	})
	g.Go(func() (err error) {
		sub, err = s.SubscriptionRepo.FindActiveByUserID(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		ActiveGoals:       counts[model.GoalActive],
		CompletedGoals:    counts[model.GoalCompleted],
		RecentReflections: reflections,
		Subscription:      sub,
		TrainingSeries:    TrainingSeries(training, now, chartWindowDays),
	}

	for _, t := range training {
		if t.TrainingDate >= weekStart {
			summary.WeeklySessions++
		}
	}

	summary.Notifications = Notifications(dueGoals, summary.WeeklySessions, now)
	return summary, nil
}

// TrainingSeries sums training minutes per day for the days window ending today.
// Days without training are present with zero minutes.
func TrainingSeries(records []model.TrainingRecord, now time.Time, days int) []TrainingPoint {
	byDate := make(map[string]int, len(records))
	for _, r := range records {
		byDate[r.TrainingDate] += r.DurationMinutes
	}
	series := make([]TrainingPoint, days)
	for i := 0; i < days; i++ {
		date := util.Today(now.AddDate(0, 0, i-(days-1)))
		series[i] = TrainingPoint{Date: date, Minutes: byDate[date]}
	}
	return series
}

// Notifications warns about active goals due within three days and about a week without training.
func Notifications(dueGoals []model.Goal, weeklySessions int, now time.Time) []Notification {
	notifications := []Notification{}
	today, _ := time.Parse(util.DateFormat, util.Today(now))
	for _, goal := range dueGoals {
		if goal.Deadline == nil {
			continue
		}
		deadline, err := time.Parse(util.DateFormat, *goal.Deadline)
		if err != nil {
			continue
		}
		daysLeft := int(math.Round(deadline.Sub(today).Hours() / 24))
		if daysLeft < 0 || daysLeft > deadlineWarningDays {
			continue
		}
		notifications = append(notifications, Notification{
			ID:      "goal-" + goal.ID,
			Type:    NotificationGoalDeadline,
			Message: fmt.Sprintf("%d days left for goal \"%s\"", daysLeft, goal.Title),
			GoalID:  goal.ID,
		})
	}
	if weeklySessions == 0 {
		notifications = append(notifications, Notification{
			ID:      "training-reminder",
			Type:    NotificationTrainingReminder,
			Message: "No training recorded this week. Time to practise!",
		})
	}
	return notifications
}
