package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"football_assistance_backend/internal/config"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReflection(t *testing.T, r *repos, userID string, status *model.AnalysisStatus) *model.MatchReflection {
	reflection := &model.MatchReflection{
		OwnedRecord:      model.OwnedRecord{UserID: userID},
		MatchDate:        "2024-05-20",
		Opponent:         "Rivals",
		SceneDescription: "lost the ball in midfield",
		AnalysisStatus:   status,
	}
	require.NoError(t, r.reflection.Create(context.Background(), reflection))
	return reflection
}

func TestAnalyzeCompletes(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := &fakeGenerator{reply: "Scan before receiving."}
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))
	reflection := createReflection(t, r, "alice", model.AnalysisPending.Ptr())

	summary, err := s.Analyze(ctx, reflection.ID, AnalysisContext{Opponent: "Rivals", Position: "CMF", SceneDescription: "lost the ball"})
	require.NoError(t, err)
	assert.Equal(t, "Scan before receiving.", summary)

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)
	var doc AnalysisDocument
	require.NoError(t, json.Unmarshal(stored.VideoAnalysis, &doc))
	assert.Equal(t, "Scan before receiving.", doc.Summary)

	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Rivals")
	assert.Contains(t, calls[0].Prompt, "CMF")
}

func TestAnalyzeRegistersUnrequestedReflection(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(&fakeGenerator{reply: "ok"}))
	reflection := createReflection(t, r, "alice", nil)

	_, err := s.Analyze(ctx, reflection.ID, AnalysisContext{})
	require.NoError(t, err)

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)
}

func TestAnalyzeFailureIsTerminal(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(&fakeGenerator{err: errModelDown}))
	reflection := createReflection(t, r, "alice", model.AnalysisPending.Ptr())

	_, err := s.Analyze(ctx, reflection.ID, AnalysisContext{})
	assert.ErrorIs(t, err, util.ErrUpstream)

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisFailed, *stored.AnalysisStatus)
	assert.Empty(t, stored.VideoAnalysis)

	// failed never moves again
	_, err = s.Analyze(ctx, reflection.ID, AnalysisContext{})
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
}

func TestAnalyzeUnknownReflection(t *testing.T) {
	r := newRepos(t)
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(&fakeGenerator{}))

	_, err := s.Analyze(context.Background(), "missing", AnalysisContext{})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDispatchUsesOwnerPosition(t *testing.T) {
	r := newRepos(t)
	alice := seedUser(t, r, "alice")
	gen := &fakeGenerator{reply: "fine"}
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))
	reflection := createReflection(t, r, alice, model.AnalysisPending.Ptr())

	s.Dispatch(reflection)
	s.Wait()

	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "CMF")

	stored, err := r.reflection.FindByID(context.Background(), reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)
}

// blockingGenerator holds every generation until release is closed.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	reply   string
}

func newBlockingGenerator(reply string) *blockingGenerator {
	return &blockingGenerator{started: make(chan struct{}, 1), release: make(chan struct{}), reply: reply}
}

func (g *blockingGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	g.started <- struct{}{}
	<-g.release
	return g.reply, nil
}

func backdate(t *testing.T, r *repos, ids ...string) {
	require.NoError(t, r.db.Model(&model.MatchReflection{}).
		Where("id IN ?", ids).
		Update("analysis_updated_at", time.Now().Add(-2*time.Hour)).Error)
}

func TestAnalyzeForRejectsForeignReflection(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := &fakeGenerator{reply: "ok"}
	s := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))
	reflection := createReflection(t, r, "alice", nil)

	_, err := s.AnalyzeFor(ctx, "bob", reflection.ID, AnalysisContext{})
	assert.ErrorIs(t, err, util.ErrNotFound)
	assert.Empty(t, gen.calls())

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AnalysisStatus)

	summary, err := s.AnalyzeFor(ctx, "alice", reflection.ID, AnalysisContext{})
	require.NoError(t, err)
	assert.Equal(t, "ok", summary)
}

func TestSweeperDispatchesPendingAndLeavesProcessing(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := &fakeGenerator{reply: "late but done"}
	analysis := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))

	pending := createReflection(t, r, "alice", nil)
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, pending.ID, nil, model.AnalysisPending))
	stuck := createReflection(t, r, "alice", nil)
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, stuck.ID, nil, model.AnalysisPending))
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, stuck.ID, model.AnalysisPending.Ptr(), model.AnalysisProcessing))
	backdate(t, r, pending.ID, stuck.ID)

	sweeper := NewAnalysisSweeper(r.reflection, analysis, config.SchedulerConfig{PendingAfter: 10, ProcessingAfter: 30})

	require.NoError(t, sweeper.Sweep(ctx))
	analysis.Wait()

	stored, err := r.reflection.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)

	stored, err = r.reflection.FindByID(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisProcessing, *stored.AnalysisStatus)
}

func TestSweeperExpiresProcessingWhenEnabled(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	analysis := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(&fakeGenerator{}))

	stuck := createReflection(t, r, "alice", nil)
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, stuck.ID, nil, model.AnalysisPending))
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, stuck.ID, model.AnalysisPending.Ptr(), model.AnalysisProcessing))
	backdate(t, r, stuck.ID)

	sweeper := NewAnalysisSweeper(r.reflection, analysis, config.SchedulerConfig{ExpireProcessing: true, ProcessingAfter: 30})
	require.NoError(t, sweeper.Sweep(ctx))

	stored, err := r.reflection.FindByID(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisFailed, *stored.AnalysisStatus)
}

func TestSlowAnalysisSurvivesSweep(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := newBlockingGenerator("great analysis")
	analysis := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))
	reflection := createReflection(t, r, "alice", model.AnalysisPending.Ptr())

	type outcome struct {
		summary string
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		summary, err := analysis.Analyze(ctx, reflection.ID, AnalysisContext{})
		done <- outcome{summary, err}
	}()
	<-gen.started
	backdate(t, r, reflection.ID)

	sweeper := NewAnalysisSweeper(r.reflection, analysis, config.SchedulerConfig{})
	require.NoError(t, sweeper.Sweep(ctx))
	close(gen.release)

	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, "great analysis", got.summary)

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisCompleted, *stored.AnalysisStatus)
	var doc AnalysisDocument
	require.NoError(t, json.Unmarshal(stored.VideoAnalysis, &doc))
	assert.Equal(t, "great analysis", doc.Summary)
}

func TestExpiredAnalysisDiscardsLateResult(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := newBlockingGenerator("great analysis")
	analysis := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))
	reflection := createReflection(t, r, "alice", model.AnalysisPending.Ptr())

	done := make(chan error, 1)
	go func() {
		_, err := analysis.Analyze(ctx, reflection.ID, AnalysisContext{})
		done <- err
	}()
	<-gen.started
	backdate(t, r, reflection.ID)

	sweeper := NewAnalysisSweeper(r.reflection, analysis, config.SchedulerConfig{ExpireProcessing: true, ProcessingAfter: 30})
	require.NoError(t, sweeper.Sweep(ctx))
	close(gen.release)

	err := <-done
	assert.ErrorIs(t, err, util.ErrAnalysisSuperseded)
	assert.NotErrorIs(t, err, util.ErrInvalidTransition)

	stored, err := r.reflection.FindByID(ctx, reflection.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AnalysisFailed, *stored.AnalysisStatus)
	assert.Empty(t, stored.VideoAnalysis)
}

func TestSweeperLeavesFreshAnalysesAlone(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := &fakeGenerator{reply: "x"}
	analysis := NewVideoAnalysisService(r.reflection, r.profile, NewAIServiceWithGenerator(gen))

	fresh := createReflection(t, r, "alice", nil)
	require.NoError(t, r.reflection.TransitionAnalysisStatus(ctx, fresh.ID, nil, model.AnalysisPending))

	sweeper := NewAnalysisSweeper(r.reflection, analysis, config.SchedulerConfig{})
	require.NoError(t, sweeper.Sweep(ctx))
	analysis.Wait()

	assert.Empty(t, gen.calls())
}
