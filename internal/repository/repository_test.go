package repository

import (
	"context"
	"testing"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/testutil"
	"football_assistance_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGoalOwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(testutil.NewDB(t))

	goal := &model.Goal{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "Weak foot"}
	require.NoError(t, repo.Create(ctx, goal))
	require.NotEmpty(t, goal.ID)

	_, err := repo.FindByIDAndUserID(ctx, goal.ID, "bob")
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = repo.UpdateProgress(ctx, goal.ID, "bob", 50)
	assert.ErrorIs(t, err, util.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteByIDAndUserID(ctx, goal.ID, "bob"), util.ErrNotFound)

	goals, err := repo.FindByUserID(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, goals)

	goals, err = repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestGoalUpdateProgressDerivesStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(testutil.NewDB(t))

	goal := &model.Goal{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "Fitness", Progress: 90}
	require.NoError(t, repo.Create(ctx, goal))
	assert.Equal(t, model.GoalActive, goal.Status)

	updated, err := repo.UpdateProgress(ctx, goal.ID, "alice", 120)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, model.GoalCompleted, updated.Status)

	stored, err := repo.FindByIDAndUserID(ctx, goal.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, stored.Status)

	counts, err := repo.CountByStatus(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[model.GoalCompleted])
	assert.Equal(t, int64(0), counts[model.GoalActive])
}

func TestGoalFindActiveDueBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(testutil.NewDB(t))

	due := "2024-05-03"
	late := "2024-06-01"
	require.NoError(t, repo.CreateBatch(ctx, []model.Goal{
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "soon", Deadline: &due},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "later", Deadline: &late},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "done", Deadline: &due, Progress: 100},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "open"},
	}))

	goals, err := repo.FindActiveDueBetween(ctx, "alice", "2024-05-01", "2024-05-08")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "soon", goals[0].Title)
}

func TestTrainingOrderedByDateDescending(t *testing.T) {
	ctx := context.Background()
	repo := NewTrainingRepository(testutil.NewDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []model.TrainingRecord{
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "a", TrainingDate: "2024-01-02", DurationMinutes: 30},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "b", TrainingDate: "2024-01-05", DurationMinutes: 30},
		{OwnedRecord: model.OwnedRecord{UserID: "alice"}, Title: "c", TrainingDate: "2024-01-01", DurationMinutes: 30},
	}))

	records, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{records[0].Title, records[1].Title, records[2].Title})

	since, err := repo.FindSince(ctx, "alice", "2024-01-02")
	require.NoError(t, err)
	assert.Len(t, since, 2)
}

func TestReflectionAnalysisTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewReflectionRepository(testutil.NewDB(t))

	r := &model.MatchReflection{OwnedRecord: model.OwnedRecord{UserID: "alice"}, MatchDate: "2024-04-01"}
	require.NoError(t, repo.Create(ctx, r))

	// no analysis yet, so processing is not reachable
	assert.ErrorIs(t, repo.TransitionAnalysisStatus(ctx, r.ID, nil, model.AnalysisProcessing), util.ErrInvalidTransition)

	require.NoError(t, repo.TransitionAnalysisStatus(ctx, r.ID, nil, model.AnalysisPending))
	// a second writer holding the stale nil status loses
	assert.ErrorIs(t, repo.TransitionAnalysisStatus(ctx, r.ID, nil, model.AnalysisPending), util.ErrInvalidTransition)

	assert.ErrorIs(t, repo.CompleteAnalysis(ctx, r.ID, datatypes.JSON(`{"summary":"x"}`)), util.ErrAnalysisSuperseded)

	require.NoError(t, repo.TransitionAnalysisStatus(ctx, r.ID, model.AnalysisPending.Ptr(), model.AnalysisProcessing))
	require.NoError(t, repo.CompleteAnalysis(ctx, r.ID, datatypes.JSON(`{"summary":"keep the line"}`)))

	stored, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AnalysisStatus)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)
	assert.JSONEq(t, `{"summary":"keep the line"}`, string(stored.VideoAnalysis))
	assert.NotNil(t, stored.AnalysisUpdatedAt)

	assert.ErrorIs(t, repo.TransitionAnalysisStatus(ctx, r.ID, model.AnalysisCompleted.Ptr(), model.AnalysisFailed), util.ErrInvalidTransition)
}

func TestReflectionFindStale(t *testing.T) {
	ctx := context.Background()
	repo := NewReflectionRepository(testutil.NewDB(t))

	r := &model.MatchReflection{OwnedRecord: model.OwnedRecord{UserID: "alice"}, MatchDate: "2024-04-01"}
	require.NoError(t, repo.Create(ctx, r))
	require.NoError(t, repo.TransitionAnalysisStatus(ctx, r.ID, nil, model.AnalysisPending))

	stale, err := repo.FindStale(ctx, model.AnalysisPending, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, r.ID, stale[0].ID)

	stale, err = repo.FindStale(ctx, model.AnalysisPending, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestUserCreateWithProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	profiles := NewProfileRepository(db)

	user := &model.User{ID: model.GenerateUUID(), Email: "a@example.com", Password: "hash"}
	require.NoError(t, users.CreateWithProfile(ctx, user, &model.Profile{Username: "alice"}))

	profile, err := profiles.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, model.ThemeLight, profile.Theme)

	taken, err := profiles.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, profiles.UpdateTheme(ctx, user.ID, model.ThemeDark))
	profile, err = profiles.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, profile.Theme)
}

func TestSubscriptionUpsertAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriptionRepository(testutil.NewDB(t))

	require.NoError(t, repo.Upsert(ctx, &model.Subscription{
		UserID: "alice", PlanType: "individual", BillingPeriod: "monthly",
		Status: model.SubscriptionActive, StripeSubscriptionID: "sub_1",
	}))
	require.NoError(t, repo.Upsert(ctx, &model.Subscription{
		UserID: "alice", PlanType: "team", BillingPeriod: "yearly",
		Status: model.SubscriptionActive, StripeSubscriptionID: "sub_2",
	}))

	sub, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "team", sub.PlanType)
	assert.Equal(t, "sub_2", sub.StripeSubscriptionID)

	n, err := repo.UpdateByStripeSubscriptionID(ctx, "sub_2", "canceled", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	active, err := repo.FindActiveByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, active)

	n, err = repo.UpdateByStripeSubscriptionID(ctx, "sub_unknown", "active", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestChatRecentUsesCacheAndDatabase(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	repo := NewChatRepository(db, rdb)

	for i, content := range []string{"one", "two", "three"} {
		msg := &model.ChatMessage{
			OwnedRecord: model.OwnedRecord{UserID: "alice", CreatedAt: time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC)},
			Role:        model.ChatRoleUser,
			Content:     content,
		}
		require.NoError(t, repo.Append(ctx, msg))
	}

	recent, err := repo.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	// with the cache gone the database answers the same
	mr.FlushAll()
	recent, err = repo.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	require.NoError(t, repo.DeleteByUserID(ctx, "alice"))
	all, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTokenRevocation(t *testing.T) {
	ctx := context.Background()
	rdb, mr := testutil.NewRedis(t)

	for name, repo := range map[string]*TokenRepository{
		"redis":  NewTokenRepository(rdb),
		"memory": NewTokenRepository(nil),
	} {
		t.Run(name, func(t *testing.T) {
			revoked, err := repo.IsRevoked(ctx, "jti-1")
			require.NoError(t, err)
			assert.False(t, revoked)

			require.NoError(t, repo.Revoke(ctx, "jti-1", time.Hour))
			revoked, err = repo.IsRevoked(ctx, "jti-1")
			require.NoError(t, err)
			assert.True(t, revoked)
		})
	}

	mr.FastForward(2 * time.Hour)
	revoked, err := NewTokenRepository(rdb).IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
