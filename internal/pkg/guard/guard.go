// Package guard is the single authorization predicate layer consumed by every
// entity handler. The order of checks is fixed: authentication first, then
// resource existence (handled by the caller via the repository), then
// ownership or entitlement. Reordering changes the observable error codes
// and is a contract violation.
package guard

import (
	"errors"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

var (
	// ErrUnauthenticated maps to HTTP 401.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden maps to HTTP 403 for non-owners.
	ErrForbidden = errors.New("you do not have access to this resource")
	// ErrEntitlementRequired maps to HTTP 403 for premium-gated content.
	ErrEntitlementRequired = errors.New("premium subscription required")
)

// Owned is implemented by owner-scoped resources (journals, moods).
type Owned interface {
	OwnerID() uint
}

// RequireAuthenticated confirms a logged-in principal.
func RequireAuthenticated(uc usercontext.UserContext) error {
	if !uc.IsLoggedIn || uc.UserID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// AuthorizeOwnership checks that the principal owns the resource. Callers
// must confirm existence first so a missing row yields 404, never 403.
func AuthorizeOwnership(uc usercontext.UserContext, resource Owned) error {
	if err := RequireAuthenticated(uc); err != nil {
		return err
	}
	if resource.OwnerID() != uc.UserID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeEntitlement gates premium catalog items on the principal's
// premium flag. Non-premium items are always allowed.
func AuthorizeEntitlement(uc usercontext.UserContext, premiumOnly bool) error {
	if err := RequireAuthenticated(uc); err != nil {
		return err
	}
	if premiumOnly && !uc.IsPremium {
		return ErrEntitlementRequired
	}
	return nil
}

// FilterEntitled narrows a catalog listing to what the principal may see.
// The list operation itself never fails with 403; premium entries are
// simply absent for non-premium principals.
func FilterEntitled(uc usercontext.UserContext, sessions []models.MindfulnessSession) []models.MindfulnessSession {
	if uc.IsPremium {
		return sessions
	}
	filtered := make([]models.MindfulnessSession, 0, len(sessions))
	for _, s := range sessions {
		if !s.IsPremium {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
