package repository

import (
	"context"

	"football_assistance_backend/internal/model"

	"gorm.io/gorm"
)

type TeamMemberRepository struct {
	DB *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{DB: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *model.TeamMember) error {
	return r.DB.WithContext(ctx).Create(member).Error
}

func (r *TeamMemberRepository) CreateBatch(ctx context.Context, members []model.TeamMember) error {
	if len(members) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&members).Error
}

func (r *TeamMemberRepository) FindByUserID(ctx context.Context, userID string) ([]model.TeamMember, error) {
	members := []model.TeamMember{}
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *TeamMemberRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*model.TeamMember, error) {
	var member model.TeamMember
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).First(&member, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

func (r *TeamMemberRepository) Update(ctx context.Context, member *model.TeamMember) error {
	result := r.DB.WithContext(ctx).Model(&model.TeamMember{}).
		Scopes(ownedBy(member.UserID)).
		Where("id = ?", member.ID).
		Select("name", "position", "characteristics", "jersey_number").
		Updates(member)
	return result.Error
}

func (r *TeamMemberRepository) DeleteByIDAndUserID(ctx context.Context, id, userID string) error {
	return deleted(r.DB.WithContext(ctx).Scopes(ownedBy(userID)).Delete(&model.TeamMember{}, "id = ?", id))
}
