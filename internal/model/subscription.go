package model

import "time"

const SubscriptionActive = "active"

// Subscription rows are written only by the payment webhook.
type Subscription struct {
	ID                   string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID               string     `gorm:"uniqueIndex;type:varchar(36);not null" json:"user_id"`
	PlanType             string     `gorm:"size:20" json:"plan_type"`
	BillingPeriod        string     `gorm:"size:20" json:"billing_period"`
	Status               string     `gorm:"size:30;index" json:"status"`
	StripeSubscriptionID string     `gorm:"size:255;index" json:"stripe_subscription_id"`
	StripeCustomerID     string     `gorm:"size:255" json:"stripe_customer_id"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
