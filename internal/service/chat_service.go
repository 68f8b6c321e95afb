package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
)

// ChatService is the AI coach. Consult is the stateless proxy; Chat also keeps history.
type ChatService struct {
	ChatRepo     *repository.ChatRepository
	ProfileRepo  *repository.ProfileRepository
	AI           *AIService
	HistoryLimit int
}

func NewChatService(chatRepo *repository.ChatRepository, profileRepo *repository.ProfileRepository, ai *AIService, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ChatService{
		ChatRepo:     chatRepo,
		ProfileRepo:  profileRepo,
		AI:           ai,
		HistoryLimit: historyLimit,
	}
}

// Consult answers one message with no stored state.
func (s *ChatService) Consult(ctx context.Context, message string, profile *CoachProfile) (string, error) {
	answer, err := s.AI.Coach(ctx, profile, nil, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}
	return answer, nil
}

// Chat answers with the caller's profile and recent turns as context, then stores both turns.
// Nothing is stored when the coach fails.
func (s *ChatService) Chat(ctx context.Context, userID, message string) (string, error) {
	profile, err := s.ProfileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, util.ErrNotFound) {
		return "", err
	}

	recent, err := s.ChatRepo.Recent(ctx, userID, s.HistoryLimit)
	if err != nil {
		return "", err
	}
	history := make([]AIChatMessage, len(recent))
	for i, m := range recent {
		history[i] = AIChatMessage{Role: string(m.Role), Content: m.Content}
	}

	answer, err := s.AI.Coach(ctx, CoachProfileFrom(profile), history, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}

	// the reply must sort after the question; every driver keeps millisecond precision
	now := time.Now()
	question := &model.ChatMessage{OwnedRecord: model.OwnedRecord{UserID: userID, CreatedAt: now}, Role: model.ChatRoleUser, Content: message}
	reply := &model.ChatMessage{OwnedRecord: model.OwnedRecord{UserID: userID, CreatedAt: now.Add(time.Millisecond)}, Role: model.ChatRoleAssistant, Content: answer}
	if err := s.ChatRepo.Append(ctx, question, reply); err != nil {
		return "", err
	}
	return answer, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	return s.ChatRepo.FindByUserID(ctx, userID)
}

func (s *ChatService) Clear(ctx context.Context, userID string) error {
	return s.ChatRepo.DeleteByUserID(ctx, userID)
}
