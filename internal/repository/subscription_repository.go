package repository

import (
	"context"
	"time"

	"football_assistance_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// Upsert keeps exactly one subscription row per user.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	if sub.ID == "" {
		sub.ID = model.GenerateUUID()
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan_type",
			"billing_period",
			"status",
			"stripe_subscription_id",
			"stripe_customer_id",
			"current_period_start",
			"current_period_end",
			"updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepository) UpdateByStripeSubscriptionID(ctx context.Context, stripeID, status string, start, end *time.Time) (int64, error) {
	values := map[string]interface{}{"status": status}
	if start != nil {
		values["current_period_start"] = *start
	}
	if end != nil {
		values["current_period_end"] = *end
	}
	result := r.DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("stripe_subscription_id = ?", stripeID).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID string) (*model.Subscription, error) {
	var sub model.Subscription
	if err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).First(&sub).Error; err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// FindActiveByUserID returns nil without error when the user has no active subscription.
func (r *SubscriptionRepository) FindActiveByUserID(ctx context.Context, userID string) (*model.Subscription, error) {
	var subs []model.Subscription
	err := r.DB.WithContext(ctx).Scopes(ownedBy(userID)).
		Where("status = ?", model.SubscriptionActive).
		Limit(1).
		Find(&subs).Error
	if err != nil || len(subs) == 0 {
		return nil, err
	}
	return &subs[0], nil
}
