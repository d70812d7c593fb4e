package billing

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	ProviderDefault = "processor"

	EventSubscriptionCreated = "subscription.created"
	EventSubscriptionUpdated = "subscription.updated"
	EventSubscriptionDeleted = "subscription.deleted"
)

// SubscriptionEvent is the provider-agnostic shape of a subscription
// lifecycle webhook payload.
type SubscriptionEvent struct {
	EventID        string `json:"id"`
	Type           string `json:"type"`
	SubscriptionID string `json:"-"`
	CustomerID     string `json:"-"`
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

type eventEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		SubscriptionID string `json:"subscription_id"`
		CustomerID     string `json:"customer_id"`
	} `json:"data"`
}

// ParseSubscriptionEvent decodes a provider webhook body into the
// normalized event shape.
func ParseSubscriptionEvent(payload []byte) (*SubscriptionEvent, error) {
	var env eventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, err
	}

	evt := &SubscriptionEvent{
		EventID:        strings.TrimSpace(env.ID),
		Type:           strings.ToLower(strings.TrimSpace(env.Type)),
		SubscriptionID: strings.TrimSpace(env.Data.SubscriptionID),
		CustomerID:     strings.TrimSpace(env.Data.CustomerID),
	}
	if evt.Type == "" {
		return nil, errors.New("event type is required")
	}
	if IsSubscriptionEvent(evt.Type) && evt.SubscriptionID == "" {
		return nil, errors.New("subscription_id is required for subscription events")
	}
	return evt, nil
}

// IsSubscriptionEvent reports whether an event type is part of the
// subscription lifecycle this bridge handles.
func IsSubscriptionEvent(eventType string) bool {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		return true
	default:
		return false
	}
}
