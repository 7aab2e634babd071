package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/middleware"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/routes"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/config"
	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// noopMailer satisfies the mailer interface without touching the network
type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, to, subject, text string) error { return nil }

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// Named shared-cache DSN: every pooled connection must land on the
	// same in-memory database, and each test gets its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := sessions.NewStore(client, time.Hour)

	cfg := &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{TTL: time.Hour},
		Cookie:  config.CookieConfig{SameSite: "lax"},
	}
	config.AppConfig = cfg

	notifier := services.NewNotificationService(repositories.NewOutboxRepository(db), noopMailer{})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, db, store, notifier, cfg)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookies ...*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                     "A",
		"address":                  "X",
		"phone_number":             "1",
		"electricity_board_number": "B1",
		"email":                    "a@x.com",
		"password":                 "pw",
	}
}

func TestUserRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully.", body["message"])

	// Wrong password
	resp, body = doJSON(t, app, http.MethodPost, "/user/login", map[string]interface{}{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password.", body["error"])

	// Correct credentials return a numeric userId
	resp, body = doJSON(t, app, http.MethodPost, "/user/login", map[string]interface{}{
		"email": "a@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful!", body["message"])
	userID, ok := body["userId"].(float64)
	require.True(t, ok)
	assert.Greater(t, userID, 0.0)
}

func TestUserRegisterMissingField(t *testing.T) {
	app, db := setupApp(t)

	body := registerBody()
	delete(body, "address")

	resp, decoded := doJSON(t, app, http.MethodPost, "/user/register", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are required", decoded["error"])

	// No row created
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The duplicate surfaces as a generic internal error
	resp, body := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestGenerateBill(t *testing.T) {
	app, db := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)

	resp, body := doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"userId": user.ID, "wattsUsed": 100,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bill generated successfully.", body["message"])

	bill, ok := body["bill"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1500.0, bill["billAmount"])
	assert.Equal(t, 100.0, bill["wattsUsed"])
	assert.Equal(t, "B1", bill["electricityBoardNumber"])
}

func TestGenerateBillInvalidUserID(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"wattsUsed": 100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid userId", body["error"])
}

func TestGenerateBillStringUserID(t *testing.T) {
	app, db := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)

	// userId as a numeric string is coerced
	resp, body := doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"userId": strconv.FormatUint(uint64(user.ID), 10), "wattsUsed": 100,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bill generated successfully.", body["message"])
}

func TestGenerateBillNegativeWatts(t *testing.T) {
	app, db := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"userId": 1, "wattsUsed": -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid wattsUsed", body["error"])

	var count int64
	db.Model(&models.Bill{}).Count(&count)
	assert.Zero(t, count)
}

func TestGenerateBillUnknownUser(t *testing.T) {
	app, db := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"userId": 42, "wattsUsed": 100,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["error"])

	var count int64
	db.Model(&models.Bill{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetLatestBill(t *testing.T) {
	app, db := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)

	// No bill yet: 404 with a message body
	resp, body := doJSON(t, app, http.MethodGet, "/user/1/bill", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No bill found for this user", body["message"])

	resp, _ = doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
		"userId": user.ID, "wattsUsed": 10,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/user/1/bill", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 150.0, body["bill_amount"])
	assert.Equal(t, "unpaid", body["payment_status"])
}

func TestGetLatestBillInvalidUserID(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/user/abc/bill", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid userId", body["error"])
}

func TestPayBill(t *testing.T) {
	app, db := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)

	// Two bills, both flipped by one pay call
	for i := 0; i < 2; i++ {
		resp, _ = doJSON(t, app, http.MethodPost, "/admin/generate-bill", map[string]interface{}{
			"userId": user.ID, "wattsUsed": 10,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodPost, "/user/pay", map[string]interface{}{
		"userId": user.ID,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Payment successful.", body["message"])

	var unpaid int64
	db.Model(&models.Bill{}).
		Where("user_id = ? AND payment_status = ?", user.ID, models.PaymentStatusUnpaid).
		Count(&unpaid)
	assert.Zero(t, unpaid)
}

func TestPayBillNoBills(t *testing.T) {
	app, _ := setupApp(t)

	// No existence check: still succeeds
	resp, body := doJSON(t, app, http.MethodPost, "/user/pay", map[string]interface{}{
		"userId": 99,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Payment successful.", body["message"])
}

func TestAdminUsersRequiresSession(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/admin/users", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestAdminRegisterEstablishesSession(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/user/register", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Registration implies login: the response carries the session cookie
	resp, body := doJSON(t, app, http.MethodPost, "/admin/register", map[string]interface{}{
		"name": "Root", "email": "admin@x.com", "password": "secret",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Administrator registered successfully.", body["message"])

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.NotEmpty(t, sessionCookie.Value)

	// The cookie opens the gated listing
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(sessionCookie)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var users []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0]["email"])
	// Password hashes never serialize
	_, exposed := users[0]["password"]
	assert.False(t, exposed)
}

func TestAdminLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/admin/register", map[string]interface{}{
		"email": "admin@x.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/admin/login", map[string]interface{}{
		"email": "admin@x.com", "password": "secret",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful!", body["message"])

	found := false
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found)

	resp, body = doJSON(t, app, http.MethodPost, "/admin/login", map[string]interface{}{
		"email": "admin@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password.", body["error"])
}
