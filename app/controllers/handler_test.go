package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/database"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

// The harness runs handlers against an in-memory database with the request
// principal injected directly, so no Redis session store is needed.
var (
	handlerSetupOnce sync.Once
	testApp          *fiber.App
	testDB           *gorm.DB
	currentPrincipal usercontext.UserContext
)

func setupHandlerTest(t *testing.T) {
	t.Helper()

	handlerSetupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			panic(err)
		}
		// The users DDL is written out by hand because the model carries
		// MySQL column options.
		if err := db.Exec(`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			email TEXT,
			password TEXT,
			is_premium NUMERIC DEFAULT 0,
			billing_customer_id TEXT,
			billing_subscription_id TEXT,
			last_login_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`).Error; err != nil {
			panic(err)
		}
		if err := db.AutoMigrate(&models.Journal{}, &models.Mood{}); err != nil {
			panic(err)
		}

		database.SetDB(db)
		repository.InitializeFactory(db)
		testDB = db

		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(usercontext.KeyUserContext, currentPrincipal)
			return c.Next()
		})
		app.Get("/journals/:id", HandleGetJournal)
		app.Post("/journals", HandleCreateJournal)
		app.Put("/journals/:id", HandleUpdateJournal)
		app.Delete("/journals/:id", HandleDeleteJournal)
		app.Get("/user/profile", HandleGetProfile)
		app.Post("/premium/activate", HandleActivatePremium)
		testApp = app
	})
}

func createTestUser(t *testing.T, name string) *models.User {
	t.Helper()

	user, err := models.CreateUser(name, name+"@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repository.GetGlobalFactory().GetUserRepository().Create(user))
	return user
}

func actAs(user *models.User) {
	if user == nil {
		currentPrincipal = usercontext.UserContext{}
		return
	}
	currentPrincipal = usercontext.UserContext{
		UserID:     user.ID,
		Username:   user.Name,
		IsLoggedIn: true,
		IsPremium:  user.IsPremium,
	}
}

func doJSON(t *testing.T, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := testApp.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestJournalHandlerRoundTrip(t *testing.T) {
	setupHandlerTest(t)
	owner := createTestUser(t, "roundtripper")
	actAs(owner)

	resp, created := doJSON(t, fiber.MethodPost, "/journals", fiber.Map{
		"title":   "A good day",
		"content": "Sun was out, mind was quiet.",
		"mood":    4,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := uint(created["id"].(float64))
	require.NotZero(t, id)

	resp, got := doJSON(t, fiber.MethodGet, fmt.Sprintf("/journals/%d", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "A good day", got["title"])
	assert.Equal(t, "Sun was out, mind was quiet.", got["content"])
	assert.Equal(t, float64(4), got["mood"])
	assert.Equal(t, float64(owner.ID), got["user_id"])
}

func TestJournalHandlerAccessOrdering(t *testing.T) {
	setupHandlerTest(t)
	owner := createTestUser(t, "orderowner")
	intruder := createTestUser(t, "orderintruder")

	actAs(owner)
	resp, created := doJSON(t, fiber.MethodPost, "/journals", fiber.Map{
		"title": "mine", "content": "private", "mood": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := uint(created["id"].(float64))

	// Missing resource is 404 even for an authenticated caller.
	resp, _ = doJSON(t, fiber.MethodGet, "/journals/999999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Existing resource owned by someone else is 403, not 404.
	actAs(intruder)
	resp, _ = doJSON(t, fiber.MethodGet, fmt.Sprintf("/journals/%d", id), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, fiber.MethodPut, fmt.Sprintf("/journals/%d", id), fiber.Map{"title": "stolen"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, fiber.MethodDelete, fmt.Sprintf("/journals/%d", id), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// No principal at all short-circuits to 401 before any lookup.
	actAs(nil)
	resp, _ = doJSON(t, fiber.MethodGet, fmt.Sprintf("/journals/%d", id), nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp, _ = doJSON(t, fiber.MethodGet, "/journals/999999", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	actAs(owner)
	resp, got := doJSON(t, fiber.MethodGet, fmt.Sprintf("/journals/%d", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "mine", got["title"])
}

func TestActivatePremiumHandler(t *testing.T) {
	setupHandlerTest(t)
	user := createTestUser(t, "upgrader")
	actAs(user)

	resp, body := doJSON(t, fiber.MethodPost, "/premium/activate", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])

	stored, err := repository.GetGlobalFactory().GetUserRepository().GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPremium)

	// Activating again succeeds without change.
	resp, body = doJSON(t, fiber.MethodPost, "/premium/activate", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestProfileHandlerCounts(t *testing.T) {
	setupHandlerTest(t)
	user := createTestUser(t, "profiled")
	actAs(user)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, fiber.MethodPost, "/journals", fiber.Map{
			"title": "entry", "content": "text", "mood": 3,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	require.NoError(t, testDB.Create(&models.Mood{UserID: user.ID, Rating: 4}).Error)

	resp, body := doJSON(t, fiber.MethodGet, "/user/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["journal_count"])
	assert.Equal(t, float64(1), body["mood_count"])
	assert.Nil(t, body["last_login_at"])
}
