package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/guard"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

type createMoodRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Note   *string `json:"note" validate:"omitempty,max=2000"`
}

// HandleListMoods returns the principal's mood entries, newest first.
func HandleListMoods(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	moods, err := repository.GetGlobalFactory().GetMoodRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return respondInternalError(c, err)
	}
	return c.JSON(moods)
}

// HandleCreateMood records a mood rating. Ratings outside 1..5 are a
// validation failure, never clamped. An absent note is normalized to null.
func HandleCreateMood(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	var req createMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	note := req.Note
	if note != nil && strings.TrimSpace(*note) == "" {
		note = nil
	}

	mood := &models.Mood{
		UserID: userCtx.UserID,
		Rating: req.Rating,
		Note:   note,
	}
	if err := repository.GetGlobalFactory().GetMoodRepository().Create(mood); err != nil {
		return respondInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(mood)
}

// HandleListMoodsInRange returns moods within [startDate, endDate], oldest
// first for chronological charting. Both bounds must parse; an unparsable
// bound is a 400, never a silent empty result.
func HandleListMoodsInRange(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	start, err := parseRangeBound(c.Query("startDate"), false)
	if err != nil {
		return respondBadRequest(c, fmt.Sprintf("startDate: %v", err))
	}
	end, err := parseRangeBound(c.Query("endDate"), true)
	if err != nil {
		return respondBadRequest(c, fmt.Sprintf("endDate: %v", err))
	}
	if end.Before(start) {
		return respondBadRequest(c, "endDate must not be before startDate")
	}

	moods, err := repository.GetGlobalFactory().GetMoodRepository().ListByUserInRange(userCtx.UserID, start, end)
	if err != nil {
		return respondInternalError(c, err)
	}
	return c.JSON(moods)
}

// parseRangeBound accepts RFC3339 instants and bare dates. A bare end date
// is widened to the end of its day so a day range is inclusive.
func parseRangeBound(value string, isEnd bool) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable date %q", trimmed)
	}
	if isEnd {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
