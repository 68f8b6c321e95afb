package service

import (
	"context"
	"testing"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/testutil"
	"football_assistance_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStoresBothTurnsAndSendsHistory(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	rdb, _ := testutil.NewRedis(t)
	chatRepo := repository.NewChatRepository(r.db, rdb)
	alice := seedUser(t, r, "alice")

	gen := &fakeGenerator{reply: "Work on your first touch."}
	s := NewChatService(chatRepo, r.profile, NewAIServiceWithGenerator(gen), 4)

	answer, err := s.Chat(ctx, alice, "How do I keep the ball under pressure?")
	require.NoError(t, err)
	assert.Equal(t, "Work on your first touch.", answer)

	gen.reply = "Use your body."
	_, err = s.Chat(ctx, alice, "And against taller players?")
	require.NoError(t, err)

	calls := gen.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].History)
	assert.Contains(t, calls[0].SystemInstruction, "Position: CMF")
	require.Len(t, calls[1].History, 2)
	assert.Equal(t, "user", calls[1].History[0].Role)
	assert.Equal(t, "assistant", calls[1].History[1].Role)
	assert.Equal(t, "Work on your first touch.", calls[1].History[1].Content)

	history, err := s.History(ctx, alice)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, model.ChatRoleUser, history[0].Role)
	assert.Equal(t, "Use your body.", history[3].Content)

	require.NoError(t, s.Clear(ctx, alice))
	history, err = s.History(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatStoresNothingWhenCoachFails(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	s := NewChatService(r.chat, r.profile, NewAIServiceWithGenerator(&fakeGenerator{err: errModelDown}), 0)

	_, err := s.Chat(ctx, "alice", "hello")
	assert.ErrorIs(t, err, util.ErrUpstream)

	history, err := s.History(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConsultIsStateless(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	gen := &fakeGenerator{reply: "Stay calm."}
	s := NewChatService(r.chat, r.profile, NewAIServiceWithGenerator(gen), 0)

	answer, err := s.Consult(ctx, "Nervous before games", &CoachProfile{Username: "kei", Strengths: []string{"speed"}})
	require.NoError(t, err)
	assert.Equal(t, "Stay calm.", answer)
	assert.Contains(t, gen.calls()[0].SystemInstruction, "Strengths: speed")

	history, err := s.History(ctx, "kei")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCoachSystemPromptWithoutProfile(t *testing.T) {
	prompt := CoachSystemPrompt(nil)
	assert.NotContains(t, prompt, "Player profile")
	assert.Contains(t, AnalysisPrompt(AnalysisContext{}), "Opponent: unknown")
}
