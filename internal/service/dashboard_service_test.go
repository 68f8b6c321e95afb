package service

import (
	"context"
	"testing"
	"time"

	"football_assistance_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dashboardNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func TestTrainingSeriesFillsEmptyDays(t *testing.T) {
	records := []model.TrainingRecord{
		{TrainingDate: "2024-05-10", DurationMinutes: 30},
		{TrainingDate: "2024-05-10", DurationMinutes: 45},
		{TrainingDate: "2024-05-08", DurationMinutes: 60},
		{TrainingDate: "2024-04-01", DurationMinutes: 90},
	}

	series := TrainingSeries(records, dashboardNow, 7)
	require.Len(t, series, 7)
	assert.Equal(t, TrainingPoint{Date: "2024-05-04", Minutes: 0}, series[0])
	assert.Equal(t, TrainingPoint{Date: "2024-05-08", Minutes: 60}, series[4])
	assert.Equal(t, TrainingPoint{Date: "2024-05-10", Minutes: 75}, series[6])
}

func TestNotifications(t *testing.T) {
	soon := "2024-05-12"
	today := "2024-05-10"
	far := "2024-05-20"
	goals := []model.Goal{
		{OwnedRecord: model.OwnedRecord{ID: "g1"}, Title: "Juggling", Deadline: &soon},
		{OwnedRecord: model.OwnedRecord{ID: "g2"}, Title: "Sprint", Deadline: &today},
		{OwnedRecord: model.OwnedRecord{ID: "g3"}, Title: "Far", Deadline: &far},
		{OwnedRecord: model.OwnedRecord{ID: "g4"}, Title: "None"},
	}

	notes := Notifications(goals, 0, dashboardNow)
	require.Len(t, notes, 3)
	assert.Equal(t, "goal-g1", notes[0].ID)
	assert.Equal(t, `2 days left for goal "Juggling"`, notes[0].Message)
	assert.Equal(t, `0 days left for goal "Sprint"`, notes[1].Message)
	assert.Equal(t, NotificationTrainingReminder, notes[2].Type)

	assert.Empty(t, Notifications(nil, 3, dashboardNow))
}

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewDashboardService(r.goal, r.training, r.reflection, r.subscription)
	s.Now = func() time.Time { return dashboardNow }

	soon := "2024-05-11"
	require.NoError(t, r.goal.CreateBatch(ctx, []model.Goal{
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "Active", Deadline: &soon, Progress: 20},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "Done", Progress: 100},
	}))
	require.NoError(t, r.training.Create(ctx, &model.TrainingRecord{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "Run", TrainingDate: "2024-05-09", DurationMinutes: 40}))
	for i := 0; i < 6; i++ {
		createReflection(t, r, "alice", nil)
	}

	summary, err := s.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.ActiveGoals)
	assert.Equal(t, int64(1), summary.CompletedGoals)
	assert.Equal(t, 1, summary.WeeklySessions)
	assert.Len(t, summary.RecentReflections, 5)
	assert.Nil(t, summary.Subscription)
	assert.Len(t, summary.TrainingSeries, 30)
	assert.Equal(t, 40, summary.TrainingSeries[28].Minutes)
	require.Len(t, summary.Notifications, 1)
	assert.Equal(t, NotificationGoalDeadline, summary.Notifications[0].Type)
}
