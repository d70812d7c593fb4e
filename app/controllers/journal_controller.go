package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/guard"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

type createJournalRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required"`
	Mood    int    `json:"mood" validate:"required,min=1,max=5"`
}

type updateJournalRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Mood    *int    `json:"mood" validate:"omitempty,min=1,max=5"`
}

// HandleListJournals returns the principal's journal entries, newest first.
func HandleListJournals(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	journals, err := repository.GetGlobalFactory().GetJournalRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return respondInternalError(c, err)
	}
	return c.JSON(journals)
}

// HandleGetJournal returns a single journal entry of the principal.
func HandleGetJournal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	journal, err := repository.GetGlobalFactory().GetJournalRepository().GetByID(id)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "journal")
		}
		return respondInternalError(c, err)
	}
	if err := guard.AuthorizeOwnership(userCtx, journal); err != nil {
		return respondGuardError(c, err)
	}

	return c.JSON(journal)
}

// HandleCreateJournal creates a journal entry owned by the principal.
func HandleCreateJournal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	var req createJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	journal := &models.Journal{
		UserID:  userCtx.UserID,
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
	}
	if err := repository.GetGlobalFactory().GetJournalRepository().Create(journal); err != nil {
		return respondInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(journal)
}

// HandleUpdateJournal merges partial fields into an owned journal entry.
// user_id and id are never updatable.
func HandleUpdateJournal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	var req updateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	repo := repository.GetGlobalFactory().GetJournalRepository()
	journal, err := repo.GetByID(id)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "journal")
		}
		return respondInternalError(c, err)
	}
	if err := guard.AuthorizeOwnership(userCtx, journal); err != nil {
		return respondGuardError(c, err)
	}

	if req.Title != nil {
		journal.Title = *req.Title
	}
	if req.Content != nil {
		journal.Content = *req.Content
	}
	if req.Mood != nil {
		journal.Mood = *req.Mood
	}
	if err := repo.Update(journal); err != nil {
		return respondInternalError(c, err)
	}

	return c.JSON(journal)
}

// HandleDeleteJournal deletes an owned journal entry.
func HandleDeleteJournal(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadRequest(c, err.Error())
	}

	repo := repository.GetGlobalFactory().GetJournalRepository()
	journal, err := repo.GetByID(id)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "journal")
		}
		return respondInternalError(c, err)
	}
	if err := guard.AuthorizeOwnership(userCtx, journal); err != nil {
		return respondGuardError(c, err)
	}

	if _, err := repo.Delete(id); err != nil {
		return respondInternalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
