package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriptionEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_42","type":"Subscription.Created","data":{"subscription_id":" sub_1 ","customer_id":"cus_1"}}`)

	evt, err := ParseSubscriptionEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_42", evt.EventID)
	assert.Equal(t, EventSubscriptionCreated, evt.Type)
	assert.Equal(t, "sub_1", evt.SubscriptionID)
	assert.Equal(t, "cus_1", evt.CustomerID)
}

func TestParseSubscriptionEventRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `not json`},
		{name: "missing type", payload: `{"id":"evt_1","data":{"subscription_id":"sub_1"}}`},
		{name: "subscription event without subscription id", payload: `{"type":"subscription.deleted","data":{}}`},
	}

	for _, tt := range tests {
		if _, err := ParseSubscriptionEvent([]byte(tt.payload)); err == nil {
			t.Fatalf("%s: expected parse error", tt.name)
		}
	}
}

func TestParseSubscriptionEventAllowsUnknownTypesWithoutSubscription(t *testing.T) {
	evt, err := ParseSubscriptionEvent([]byte(`{"id":"evt_2","type":"invoice.paid","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", evt.Type)
	assert.False(t, IsSubscriptionEvent(evt.Type))
}

func TestIsSubscriptionEvent(t *testing.T) {
	for _, eventType := range []string{"subscription.created", "Subscription.Updated", " subscription.deleted "} {
		if !IsSubscriptionEvent(eventType) {
			t.Fatalf("expected %q to be a subscription event", eventType)
		}
	}
	for _, eventType := range []string{"invoice.paid", "", "subscription"} {
		if IsSubscriptionEvent(eventType) {
			t.Fatalf("expected %q to not be a subscription event", eventType)
		}
	}
}
