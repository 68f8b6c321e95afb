package service

import (
	"context"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
)

type ProfileService struct {
	ProfileRepo *repository.ProfileRepository
}

func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{ProfileRepo: profileRepo}
}

type ProfileUpdate struct {
	TeamName       string   `json:"team_name" binding:"max=255"`
	Position       string   `json:"position"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	FavoritePlayer string   `json:"favorite_player" binding:"max=255"`
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.ProfileRepo.FindByUserID(ctx, userID)
}

// Update rewrites the editable fields. Skills outside the fixed list are rejected and
// duplicates collapse, since strengths and weaknesses are sets.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileUpdate) (*model.Profile, error) {
	if in.Position != "" && !model.IsPosition(in.Position) {
		return nil, util.ErrInvalidPosition
	}
	strengths, err := skillSet(in.Strengths)
	if err != nil {
		return nil, err
	}
	weaknesses, err := skillSet(in.Weaknesses)
	if err != nil {
		return nil, err
	}

	profile, err := s.ProfileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.TeamName = in.TeamName
	profile.Position = in.Position
	profile.Strengths = strengths
	profile.Weaknesses = weaknesses
	profile.FavoritePlayer = in.FavoritePlayer

	if err := s.ProfileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) SetTheme(ctx context.Context, userID string, theme model.Theme) error {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return util.ErrInvalidTheme
	}
	if _, err := s.ProfileRepo.FindByUserID(ctx, userID); err != nil {
		return err
	}
	return s.ProfileRepo.UpdateTheme(ctx, userID, theme)
}

func skillSet(labels []string) ([]string, error) {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !model.IsSkill(l) {
			return nil, util.ErrInvalidSkill
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}
