package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/testutil"

	"gorm.io/gorm"
)

type fakeGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []GenerateRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.reply, g.err
}

func (g *fakeGenerator) calls() []GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GenerateRequest(nil), g.requests...)
}

var errModelDown = errors.New("model down")

type repos struct {
	db           *gorm.DB
	user         *repository.UserRepository
	profile      *repository.ProfileRepository
	goal         *repository.GoalRepository
	training     *repository.TrainingRepository
	reflection   *repository.ReflectionRepository
	member       *repository.TeamMemberRepository
	subscription *repository.SubscriptionRepository
	chat         *repository.ChatRepository
}

func newRepos(t *testing.T) *repos {
	db := testutil.NewDB(t)
	return &repos{
		db:           db,
		user:         repository.NewUserRepository(db),
		profile:      repository.NewProfileRepository(db),
		goal:         repository.NewGoalRepository(db),
		training:     repository.NewTrainingRepository(db),
		reflection:   repository.NewReflectionRepository(db),
		member:       repository.NewTeamMemberRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		chat:         repository.NewChatRepository(db, nil),
	}
}
