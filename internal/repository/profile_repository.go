package repository

import (
	"context"

	"football_assistance_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.DB.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (r *ProfileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Profile{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Update writes the editable profile fields. Username is never part of the update set.
func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	result := r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Select("team_name", "position", "strengths", "weaknesses", "favorite_player", "updated_at").
		Updates(profile)
	return result.Error
}

func (r *ProfileRepository) UpdateTheme(ctx context.Context, userID string, theme model.Theme) error {
	result := r.DB.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", userID).
		Update("theme", theme)
	return result.Error
}
