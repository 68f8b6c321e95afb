package service

import (
	"context"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
)

type TeamService struct {
	MemberRepo *repository.TeamMemberRepository
}

func NewTeamService(memberRepo *repository.TeamMemberRepository) *TeamService {
	return &TeamService{MemberRepo: memberRepo}
}

type TeamMemberRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Position        string `json:"position" binding:"max=50"`
	Characteristics string `json:"characteristics"`
	JerseyNumber    *int   `json:"jersey_number" binding:"omitempty,min=0,max=99"`
}

func (s *TeamService) List(ctx context.Context, userID string) ([]model.TeamMember, error) {
	return s.MemberRepo.FindByUserID(ctx, userID)
}

func (s *TeamService) Create(ctx context.Context, userID string, req TeamMemberRequest) (*model.TeamMember, error) {
	member := &model.TeamMember{
		OwnedRecord:     model.OwnedRecord{UserID: userID},
		Name:            req.Name,
		Position:        req.Position,
		Characteristics: req.Characteristics,
		JerseyNumber:    req.JerseyNumber,
	}
	if err := s.MemberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *TeamService) Update(ctx context.Context, userID, id string, req TeamMemberRequest) (*model.TeamMember, error) {
	member, err := s.MemberRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	member.Name = req.Name
	member.Position = req.Position
	member.Characteristics = req.Characteristics
	member.JerseyNumber = req.JerseyNumber
	if err := s.MemberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *TeamService) Delete(ctx context.Context, userID, id string) error {
	return s.MemberRepo.DeleteByIDAndUserID(ctx, id, userID)
}

func (s *TeamService) Formations() []model.Formation {
	return model.Formations
}

// Lineup places the user's members onto the slots of a formation.
func (s *TeamService) Lineup(ctx context.Context, userID, formationID string) ([]model.LineupSlot, error) {
	formation, ok := model.FindFormation(formationID)
	if !ok {
		return nil, util.ErrUnknownFormation
	}
	members, err := s.MemberRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return formation.Lineup(members), nil
}
