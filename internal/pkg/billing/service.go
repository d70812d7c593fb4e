package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/LarsJung/StillMind/app/models"
)

// Outcome values reported by HandleSubscriptionEvent.
const (
	OutcomeActivated   = "activated"
	OutcomeDeactivated = "deactivated"
	OutcomeNoOp        = "noop"
)

// ErrUnknownSubscription marks events whose subscription id resolves to no
// local user. Such events are logged and dropped, never retried.
var ErrUnknownSubscription = errors.New("no user for subscription id")

// Service translates payment-processor subscription events, or internal
// activation requests, into entitlement flag changes on the user record.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// ActivatePremium flips the premium flag on. Idempotent: activating an
// already-premium user succeeds without change.
func (s *Service) ActivatePremium(ctx context.Context, userID uint) (*models.User, error) {
	_ = ctx
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user.IsPremium {
		return user, nil
	}
	user.IsPremium = true
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivatePremium flips the premium flag off. Idempotent.
func (s *Service) DeactivatePremium(ctx context.Context, userID uint) (*models.User, error) {
	_ = ctx
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsPremium {
		return user, nil
	}
	user.IsPremium = false
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// HandleSubscriptionEvent applies a provider subscription lifecycle event.
// Resolution goes through the indexed billing_subscription_id column; an
// unresolvable subscription id is a logged no-op.
func (s *Service) HandleSubscriptionEvent(ctx context.Context, evt *SubscriptionEvent) (string, error) {
	switch evt.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		user, err := s.repo.GetUserBySubscriptionID(evt.SubscriptionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("billing: %s for unknown subscription %s, ignoring", evt.Type, evt.SubscriptionID)
				return OutcomeNoOp, nil
			}
			return "", fmt.Errorf("resolve subscription %s: %w", evt.SubscriptionID, err)
		}
		if evt.CustomerID != "" && user.BillingCustomerID == "" {
			user.BillingCustomerID = evt.CustomerID
		}
		user.IsPremium = true
		if err := s.repo.SaveUser(user); err != nil {
			return "", err
		}
		return OutcomeActivated, nil

	case EventSubscriptionDeleted:
		user, err := s.repo.GetUserBySubscriptionID(evt.SubscriptionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("billing: %s for unknown subscription %s, ignoring", evt.Type, evt.SubscriptionID)
				return OutcomeNoOp, nil
			}
			return "", fmt.Errorf("resolve subscription %s: %w", evt.SubscriptionID, err)
		}
		// A deleted event only deactivates when the id still matches the
		// user's current subscription. A stale id left over from a
		// re-subscribe must not clobber the newer entitlement.
		if user.BillingSubscriptionID != evt.SubscriptionID {
			log.Printf("billing: %s carries stale subscription %s for user %d, ignoring", evt.Type, evt.SubscriptionID, user.ID)
			return OutcomeNoOp, nil
		}
		user.IsPremium = false
		user.BillingSubscriptionID = ""
		if err := s.repo.SaveUser(user); err != nil {
			return "", err
		}
		return OutcomeDeactivated, nil
	}

	log.Printf("billing: unhandled event type %s, ignoring", evt.Type)
	return OutcomeNoOp, nil
}

// LinkSubscription attaches external billing identifiers to a user so
// later webhook events can be resolved through the subscription id index.
func (s *Service) LinkSubscription(ctx context.Context, userID uint, customerID, subscriptionID string) (*models.User, error) {
	_ = ctx
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.BillingCustomerID = strings.TrimSpace(customerID)
	user.BillingSubscriptionID = strings.TrimSpace(subscriptionID)
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}
