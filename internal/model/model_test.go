package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalBeforeSaveDerivesStatus(t *testing.T) {
	tests := []struct {
		progress     int
		wantProgress int
		wantStatus   GoalStatus
	}{
		{-5, 0, GoalActive},
		{0, 0, GoalActive},
		{99, 99, GoalActive},
		{100, 100, GoalCompleted},
		{140, 100, GoalCompleted},
	}
	for _, tt := range tests {
		g := &Goal{Progress: tt.progress, Status: GoalCompleted}
		require.NoError(t, g.BeforeSave(nil))
		assert.Equal(t, tt.wantProgress, g.Progress)
		assert.Equal(t, tt.wantStatus, g.Status, "progress %d", tt.progress)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(nil, AnalysisPending))
	assert.False(t, CanTransition(nil, AnalysisProcessing))
	assert.True(t, CanTransition(AnalysisPending.Ptr(), AnalysisProcessing))
	assert.False(t, CanTransition(AnalysisPending.Ptr(), AnalysisCompleted))
	assert.True(t, CanTransition(AnalysisProcessing.Ptr(), AnalysisCompleted))
	assert.True(t, CanTransition(AnalysisProcessing.Ptr(), AnalysisFailed))

	for _, terminal := range []AnalysisStatus{AnalysisCompleted, AnalysisFailed} {
		for _, next := range []AnalysisStatus{AnalysisPending, AnalysisProcessing, AnalysisCompleted, AnalysisFailed} {
			assert.False(t, CanTransition(terminal.Ptr(), next), "%s -> %s", terminal, next)
		}
	}
}

func TestClearVideo(t *testing.T) {
	url := "u1/1.mp4"
	r := &MatchReflection{
		VideoURL:       &url,
		VideoAnalysis:  []byte(`{"summary":"ok"}`),
		AnalysisStatus: AnalysisCompleted.Ptr(),
	}
	r.ClearVideo()
	assert.Nil(t, r.VideoURL)
	assert.Nil(t, r.VideoAnalysis)
	assert.Nil(t, r.AnalysisStatus)
}

func TestReownResetsIdentity(t *testing.T) {
	r := OwnedRecord{ID: "old", UserID: "someone"}
	r.Reown("me", r.CreatedAt)
	assert.Empty(t, r.ID)
	assert.Equal(t, "me", r.UserID)
}

func TestFormationLineup(t *testing.T) {
	f, ok := FindFormation("4-4-2")
	require.True(t, ok)

	members := []TeamMember{
		{Name: "Keeper", Position: "GK"},
		{Name: "First CB", Position: "CB"},
		{Name: "Second CB", Position: "CB"},
	}
	lineup := f.Lineup(members)
	require.Len(t, lineup, 11)

	assert.Equal(t, "Keeper", lineup[0].Member.Name)
	// both CB slots resolve to the first CB
	assert.Equal(t, "First CB", lineup[2].Member.Name)
	assert.Equal(t, "First CB", lineup[3].Member.Name)
	assert.Nil(t, lineup[1].Member)
	assert.Nil(t, lineup[10].Member)
}

func TestFindFormationUnknown(t *testing.T) {
	_, ok := FindFormation("3-5-2")
	assert.False(t, ok)
	for _, f := range Formations {
		assert.Len(t, f.Slots, 11, f.ID)
	}
}
