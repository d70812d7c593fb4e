package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/audiostore"
	"github.com/LarsJung/StillMind/internal/pkg/cache"
	"github.com/LarsJung/StillMind/internal/pkg/guard"
	"github.com/LarsJung/StillMind/internal/pkg/metrics/counter"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

const (
	catalogCacheKey = "mindfulness:catalog"
	catalogCacheTTL = 5 * time.Minute
	audioURLExpiry  = 15 * time.Minute
)

// HandleListMindfulness returns the catalog filtered by the principal's
// entitlement. Premium items are absent for free users; the list itself
// never fails with 403.
func HandleListMindfulness(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	sessions, err := loadCatalog()
	if err != nil {
		return respondInternalError(c, err)
	}

	return c.JSON(guard.FilterEntitled(userCtx, sessions))
}

// HandleGetMindfulnessSession returns a single catalog session. Premium
// entries require the premium entitlement. When S3 audio delivery is
// configured the audio URL is replaced with a short-lived presigned link.
func HandleGetMindfulnessSession(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	session, err := repository.GetGlobalFactory().GetMindfulnessRepository().GetByID(id)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "session")
		}
		return respondInternalError(c, err)
	}
	if err := guard.AuthorizeEntitlement(userCtx, session.IsPremium); err != nil {
		return respondGuardError(c, err)
	}

	if client := audiostore.GetDefaultClient(); client != nil {
		if url, err := client.PresignAudioURL(c.Context(), session.UUID, audioURLExpiry); err == nil {
			session.AudioURL = url
		} else {
			log.Printf("failed to presign audio url for session %d: %v", session.ID, err)
		}
	}

	// Play counters are best effort; a cache hiccup must not fail the fetch.
	if err := counter.AddSessionPlay(session.ID); err != nil {
		log.Printf("failed to count play for session %d: %v", session.ID, err)
	}

	return c.JSON(session)
}

// loadCatalog serves the full catalog from the Redis cache, falling back to
// the database and repopulating the cache on miss.
func loadCatalog() ([]models.MindfulnessSession, error) {
	if raw, err := cache.Get(catalogCacheKey); err == nil && raw != "" {
		var sessions []models.MindfulnessSession
		if err := json.Unmarshal([]byte(raw), &sessions); err == nil {
			return sessions, nil
		}
	}

	sessions, err := repository.GetGlobalFactory().GetMindfulnessRepository().List()
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(sessions); err == nil {
		if err := cache.Set(catalogCacheKey, string(encoded), catalogCacheTTL); err != nil {
			log.Printf("failed to cache mindfulness catalog: %v", err)
		}
	}
	return sessions, nil
}
