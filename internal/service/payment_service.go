package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"football_assistance_backend/internal/config"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"
	"football_assistance_backend/pkg/monitoring"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// a checkout grants 30 days until Stripe reports the real billing period
const initialPeriod = 30 * 24 * time.Hour

type Plan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Interval string `json:"interval"`
	Price    int    `json:"price"`
	PriceID  string `json:"price_id"`
}

var planCatalog = []struct {
	Plan
	configKey string
}{
	{Plan{ID: "individual-month", Name: "Individual (monthly)", Type: "individual", Interval: "month", Price: 980}, "individual_monthly"},
	{Plan{ID: "individual-year", Name: "Individual (yearly)", Type: "individual", Interval: "year", Price: 9800}, "individual_yearly"},
	{Plan{ID: "team-month", Name: "Team (monthly)", Type: "team", Interval: "month", Price: 4980}, "team_monthly"},
	{Plan{ID: "team-year", Name: "Team (yearly)", Type: "team", Interval: "year", Price: 49800}, "team_yearly"},
}

// CheckoutCreator opens hosted checkout sessions. The Stripe client's CheckoutSessions satisfies it.
type CheckoutCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type PaymentService struct {
	SubscriptionRepo *repository.SubscriptionRepository
	Checkout         CheckoutCreator
	Cfg              config.StripeConfig
	Now              func() time.Time
}

func NewPaymentService(subscriptionRepo *repository.SubscriptionRepository, cfg config.StripeConfig) *PaymentService {
	s := &PaymentService{
		SubscriptionRepo: subscriptionRepo,
		Cfg:              cfg,
		Now:              time.Now,
	}
	if cfg.SecretKey != "" {
		s.Checkout = client.New(cfg.SecretKey, nil).CheckoutSessions
	}
	return s
}

// Plans lists the four subscription plans with the price ids from configuration.
func (s *PaymentService) Plans() []Plan {
	plans := make([]Plan, len(planCatalog))
	for i, p := range planCatalog {
		plans[i] = p.Plan
		plans[i].PriceID = s.Cfg.Prices[p.configKey]
	}
	return plans
}

func (s *PaymentService) planForPrice(priceID string) (Plan, bool) {
	for _, p := range s.Plans() {
		if p.PriceID != "" && p.PriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}

// CreateCheckoutSession returns the hosted checkout URL for userID subscribing to priceID.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID, priceID string) (string, error) {
	plan, ok := s.planForPrice(priceID)
	if !ok {
		return "", util.ErrUnknownPlan
	}
	if s.Checkout == nil {
		return "", fmt.Errorf("%w: stripe is not configured", util.ErrUpstream)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(s.Cfg.SuccessURL),
		CancelURL:         stripe.String(s.Cfg.CancelURL),
		ClientReferenceID: stripe.String(userID),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)
	params.AddMetadata("planType", plan.Type)
	params.AddMetadata("billingPeriod", plan.Interval)

	session, err := s.Checkout.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}
	return session.URL, nil
}

// VerifyEvent checks the Stripe-Signature header against the webhook secret.
func (s *PaymentService) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.Cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", util.ErrInvalidSignature, err)
	}
	return event, nil
}

// HandleEvent applies a verified event to the subscriptions table. Unknown types are ignored.
func (s *PaymentService) HandleEvent(ctx context.Context, event stripe.Event) error {
	eventType := string(event.Type)
	if event.Data == nil {
		return errors.New("event without data")
	}

	var err error
	handled := true
	switch eventType {
	case EventCheckoutCompleted:
		err = s.checkoutCompleted(ctx, event.Data.Raw)
	case EventSubscriptionUpdated, EventSubscriptionDeleted:
		err = s.subscriptionChanged(ctx, event.Data.Raw)
	default:
		handled = false
	}

	monitoring.WebhookEvents.WithLabelValues(eventType, fmt.Sprint(handled)).Inc()
	return err
}

func (s *PaymentService) checkoutCompleted(ctx context.Context, raw json.RawMessage) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return err
	}

	userID := session.Metadata["userId"]
	if userID == "" {
		userID = session.ClientReferenceID
	}
	if userID == "" || session.Subscription == nil || session.Subscription.ID == "" {
		logger.Log.Warn("Checkout completed without user or subscription", zap.String("session_id", session.ID))
		return nil
	}

	now := s.Now()
	end := now.Add(initialPeriod)
	sub := &model.Subscription{
		UserID:               userID,
		PlanType:             session.Metadata["planType"],
		BillingPeriod:        session.Metadata["billingPeriod"],
		Status:               model.SubscriptionActive,
		StripeSubscriptionID: session.Subscription.ID,
		CurrentPeriodStart:   &now,
		CurrentPeriodEnd:     &end,
	}
	if session.Customer != nil {
		sub.StripeCustomerID = session.Customer.ID
	}
	return s.SubscriptionRepo.Upsert(ctx, sub)
}

func (s *PaymentService) subscriptionChanged(ctx context.Context, raw json.RawMessage) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(raw, &subscription); err != nil {
		return err
	}

	var start, end *time.Time
	if subscription.CurrentPeriodStart > 0 {
		t := time.Unix(subscription.CurrentPeriodStart, 0)
		start = &t
	}
	if subscription.CurrentPeriodEnd > 0 {
		t := time.Unix(subscription.CurrentPeriodEnd, 0)
		end = &t
	}

	n, err := s.SubscriptionRepo.UpdateByStripeSubscriptionID(ctx, subscription.ID, string(subscription.Status), start, end)
	if err == nil && n == 0 {
		logger.Log.Info("Subscription event for unknown subscription", zap.String("subscription_id", subscription.ID))
	}
	return err
}
