package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/internal/pkg/billing"
	"github.com/LarsJung/StillMind/internal/pkg/database"
	"github.com/LarsJung/StillMind/internal/pkg/env"
)

// HandleBillingWebhook receives subscription lifecycle events from the
// payment processor. Signature verification runs against the raw request
// body before any parsing. Every event is persisted first; a replayed
// event id short-circuits to an acknowledgement so retries stay safe.
func HandleBillingWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("BILLING_WEBHOOK_SECRET", "")
	if secret == "" {
		return respondBadRequest(c, "webhook endpoint is not configured")
	}

	body := c.Body()
	signature := c.Get("X-Webhook-Signature")
	if !billing.VerifyWebhookSignature(body, signature, secret) {
		return respondBadRequest(c, "invalid webhook signature")
	}

	evt, err := billing.ParseSubscriptionEvent(body)
	if err != nil {
		return respondBadRequest(c, "invalid webhook payload")
	}

	service := billing.NewServiceFromDB(database.GetDB())
	created, record, err := service.RecordWebhookEvent(c.Context(), billing.WebhookEventInput{
		Provider:        env.GetEnv("BILLING_PROVIDER", billing.ProviderDefault),
		ProviderEventID: evt.EventID,
		EventType:       evt.Type,
		PayloadJSON:     string(body),
		SignatureValid:  true,
	})
	if err != nil {
		return respondInternalError(c, err)
	}
	if !created {
		// Duplicate delivery. The first delivery already applied the
		// entitlement change, so acknowledge and do nothing.
		return c.JSON(fiber.Map{"received": true, "duplicate": true})
	}

	var outcome string
	if billing.IsSubscriptionEvent(evt.Type) {
		outcome, err = service.HandleSubscriptionEvent(c.Context(), evt)
	} else {
		outcome = billing.OutcomeNoOp
	}
	if markErr := service.MarkWebhookProcessed(c.Context(), record.ID, err); markErr != nil {
		return respondInternalError(c, markErr)
	}
	if err != nil {
		return respondInternalError(c, err)
	}

	return c.JSON(fiber.Map{"received": true, "outcome": outcome})
}
