package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupService(r *repos) *BackupService {
	s := NewBackupService(r.goal, r.training, r.reflection, r.member, r.profile)
	s.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func seedUser(t *testing.T, r *repos, username string) string {
	user := &model.User{ID: model.GenerateUUID(), Email: username + "@example.com", Password: "x"}
	require.NoError(t, r.user.CreateWithProfile(context.Background(), user, &model.Profile{
		Username: username, Position: "CMF", Theme: model.ThemeLight,
	}))
	return user.ID
}

func seedRecords(t *testing.T, r *repos, userID string) {
	ctx := context.Background()
	deadline := "2024-07-01"
	video := "someone/1.mp4"
	require.NoError(t, r.goal.Create(ctx, &model.Goal{OwnedRecord: model.OwnedRecord{UserID: userID}, Title: "Weak foot", Deadline: &deadline, Progress: 40}))
	require.NoError(t, r.training.Create(ctx, &model.TrainingRecord{OwnedRecord: model.OwnedRecord{UserID: userID}, Title: "Rondo", TrainingDate: "2024-05-30", DurationMinutes: 60}))
	require.NoError(t, r.reflection.Create(ctx, &model.MatchReflection{
		OwnedRecord:    model.OwnedRecord{UserID: userID},
		MatchDate:      "2024-05-20",
		Opponent:       "Rivals",
		VideoURL:       &video,
		VideoAnalysis:  []byte(`{"summary":"good"}`),
		AnalysisStatus: model.AnalysisCompleted.Ptr(),
	}))
	require.NoError(t, r.member.Create(ctx, &model.TeamMember{OwnedRecord: model.OwnedRecord{UserID: userID}, Name: "Keeper", Position: "GK"}))
}

func TestBackupExportDocument(t *testing.T) {
	r := newRepos(t)
	s := newBackupService(r)
	alice := seedUser(t, r, "alice")
	seedRecords(t, r, alice)

	doc, err := s.Export(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, model.BackupVersion, doc.Version)
	assert.Equal(t, "2024-06-01T12:00:00Z", doc.ExportDate)
	assert.Len(t, doc.Data.Goals, 1)
	assert.Len(t, doc.Data.Training, 1)
	assert.Len(t, doc.Data.Reflections, 1)
	assert.Len(t, doc.Data.TeamMembers, 1)
	require.NotNil(t, doc.Data.Profile)
	assert.Equal(t, "alice", doc.Data.Profile.Username)

	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, doc))
	assert.Contains(t, buf.String(), "\n  \"exportDate\": ")
	assert.Contains(t, buf.String(), "\"teamMembers\": [")
}

func TestBackupExportWithoutProfile(t *testing.T) {
	s := newBackupService(newRepos(t))

	doc, err := s.Export(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, doc.Data.Profile)
	assert.Empty(t, doc.Data.Goals)
}

func TestBackupRoundTripIntoAnotherAccount(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := newBackupService(r)
	alice := seedUser(t, r, "alice")
	bob := seedUser(t, r, "bob")
	seedRecords(t, r, alice)

	doc, err := s.Export(ctx, alice)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, doc))

	result, err := s.Import(ctx, &buf, bob)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Goals: 1, Training: 1, Reflections: 1, TeamMembers: 1}, result)

	goals, err := r.goal.FindByUserID(ctx, bob)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Weak foot", goals[0].Title)
	assert.Equal(t, 40, goals[0].Progress)
	assert.NotEqual(t, doc.Data.Goals[0].ID, goals[0].ID)

	reflections, err := r.reflection.FindByUserID(ctx, bob)
	require.NoError(t, err)
	require.Len(t, reflections, 1)
	assert.Equal(t, "Rivals", reflections[0].Opponent)
	assert.Nil(t, reflections[0].VideoURL)
	assert.Nil(t, reflections[0].AnalysisStatus)
	assert.Empty(t, reflections[0].VideoAnalysis)

	// the source account is untouched and bob's profile is not overwritten
	aliceGoals, err := r.goal.FindByUserID(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceGoals, 1)
	profile, err := r.profile.FindByUserID(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)
}

func TestBackupImportTwiceDuplicates(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := newBackupService(r)
	alice := seedUser(t, r, "alice")
	seedRecords(t, r, alice)

	doc, err := s.Export(ctx, alice)
	require.NoError(t, err)
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := s.Import(ctx, bytes.NewReader(payload), alice)
		require.NoError(t, err)
	}

	training, err := r.training.FindByUserID(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, training, 3)
}

func TestBackupImportPartialDocument(t *testing.T) {
	r := newRepos(t)
	s := newBackupService(r)

	result, err := s.Import(context.Background(), strings.NewReader(`{"version":"1.0","data":{"teamMembers":[{"name":"Nine","position":"FW"}]}}`), "alice")
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{TeamMembers: 1}, result)
}

func TestBackupImportKeepsEarlierCollectionsOnFailure(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := newBackupService(r)
	require.NoError(t, r.db.Migrator().DropTable(&model.TrainingRecord{}))

	body := `{"version":"1.0","data":{
		"goals":[{"title":"Weak foot","progress":20}],
		"training":[{"title":"Rondo","training_date":"2024-05-30","duration_minutes":60}],
		"teamMembers":[{"name":"Nine","position":"FW"}]
	}}`
	result, err := s.Import(ctx, strings.NewReader(body), "alice")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.NotErrorIs(t, err, util.ErrInvalidBackup)

	// goals went in before training failed and are not rolled back
	goals, err := r.goal.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Weak foot", goals[0].Title)

	// nothing after the failing collection is attempted
	members, err := r.member.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestBackupImportRejectsInvalidFiles(t *testing.T) {
	s := newBackupService(newRepos(t))

	for name, body := range map[string]string{
		"not json":     "goals,training",
		"missing data": `{"version":"1.0","exportDate":"2024-01-01T00:00:00Z"}`,
		"null data":    `{"data":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Import(context.Background(), strings.NewReader(body), "alice")
			assert.ErrorIs(t, err, util.ErrInvalidBackup)
		})
	}
}
