package guard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

func loggedIn(userID uint, premium bool) usercontext.UserContext {
	return usercontext.UserContext{UserID: userID, IsLoggedIn: true, IsPremium: premium}
}

func TestRequireAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		uc   usercontext.UserContext
		want error
	}{
		{name: "anonymous", uc: usercontext.UserContext{}, want: ErrUnauthenticated},
		{name: "logged in flag without id", uc: usercontext.UserContext{IsLoggedIn: true}, want: ErrUnauthenticated},
		{name: "logged in", uc: loggedIn(1, false), want: nil},
	}

	for _, tt := range tests {
		if got := RequireAuthenticated(tt.uc); !errors.Is(got, tt.want) {
			t.Fatalf("%s: RequireAuthenticated() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	journal := &models.Journal{UserID: 10}

	tests := []struct {
		name string
		uc   usercontext.UserContext
		want error
	}{
		{name: "anonymous gets 401 not 403", uc: usercontext.UserContext{}, want: ErrUnauthenticated},
		{name: "other user", uc: loggedIn(11, false), want: ErrForbidden},
		{name: "owner", uc: loggedIn(10, false), want: nil},
	}

	for _, tt := range tests {
		if got := AuthorizeOwnership(tt.uc, journal); !errors.Is(got, tt.want) {
			t.Fatalf("%s: AuthorizeOwnership() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAuthorizeEntitlement(t *testing.T) {
	tests := []struct {
		name        string
		uc          usercontext.UserContext
		premiumOnly bool
		want        error
	}{
		{name: "anonymous", uc: usercontext.UserContext{}, premiumOnly: false, want: ErrUnauthenticated},
		{name: "free user free content", uc: loggedIn(1, false), premiumOnly: false, want: nil},
		{name: "free user premium content", uc: loggedIn(1, false), premiumOnly: true, want: ErrEntitlementRequired},
		{name: "premium user premium content", uc: loggedIn(1, true), premiumOnly: true, want: nil},
	}

	for _, tt := range tests {
		if got := AuthorizeEntitlement(tt.uc, tt.premiumOnly); !errors.Is(got, tt.want) {
			t.Fatalf("%s: AuthorizeEntitlement() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFilterEntitled(t *testing.T) {
	catalog := []models.MindfulnessSession{
		{ID: 1, Title: "Free One", IsPremium: false},
		{ID: 2, Title: "Premium One", IsPremium: true},
		{ID: 3, Title: "Free Two", IsPremium: false},
	}

	free := FilterEntitled(loggedIn(1, false), catalog)
	assert.Len(t, free, 2)
	for _, s := range free {
		assert.False(t, s.IsPremium)
	}

	premium := FilterEntitled(loggedIn(1, true), catalog)
	assert.Len(t, premium, 3)
}
