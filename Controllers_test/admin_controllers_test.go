package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/table-order/config"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/router"
	"github.com/yeremiapane/table-order/services"
	"github.com/yeremiapane/table-order/utils"
)

func setupFullRouter(t *testing.T, db *gorm.DB, authRequired bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AuthRequired:       authRequired,
		CORSOrigin:         "*",
		RateLimit:          1000,
		RateWindow:         time.Second,
		LoginRatePerMinute: 3,
		TokenTTL:           time.Hour,
	}
	admin, err := models.NewAdminUser("admin", "password")
	require.NoError(t, err)
	tokens := utils.NewTokenManager("test-secret", cfg.TokenTTL, nil)
	return router.SetupRouter(cfg, router.NewDeps(db, cfg, admin, tokens, services.NopPublisher{}))
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
	}
	decode(t, w, &res)
	require.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	return res.Token
}

func TestLoginLogoutSession(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, false), true)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := login(t, r)
	bearer := []string{"Authorization", "Bearer " + token}

	w = doJSON(t, r, http.MethodGet, "/api/admin/session", nil, bearer...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)

	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, bearer...).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/admin/session", nil, bearer...).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/admin/session", nil).Code)
}

func TestLoginRateLimited(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, false), false)
	bad := map[string]string{"username": "admin", "password": "nope"}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/admin/login", bad).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doJSON(t, r, http.MethodPost, "/api/admin/login", bad).Code)
}

func TestAdminGateProtectsWrites(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, true), true)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/menu", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPatch, "/api/orders/ORD001", map[string]string{"status": "ready"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodDelete, "/api/tables/T1", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/api/admin/dashboard", nil).Code)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	bearer := []string{"Authorization", "Bearer " + login(t, r)}
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPatch, "/api/orders/ORD001", map[string]string{"status": "ready"}, bearer...).Code)
}

func TestDashboardSummary(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, true), false)

	w := doJSON(t, r, http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.OrderSummary
	decode(t, w, &summary)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 1, summary.CompletedOrders)
	assert.Equal(t, 315000.0, summary.Revenue)
	assert.Equal(t, 315000.0, summary.AverageCompletedValue)
	assert.Equal(t, 3, summary.UniqueTables)
	assert.Equal(t, 1, summary.ByStatus[models.StatusPreparing])
}

func TestPingAndHeaders(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, false), false)
	w := doJSON(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestLogoutRevokesAcceptedToken(t *testing.T) {
	r := setupFullRouter(t, setupTestDB(t, false), false)

	w := doJSON(t, r, http.MethodPost, "/api/admin/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authorization header missing"}`, w.Body.String())

	bad := []string{"Authorization", "Bearer not-a-token"}
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, bad...).Code)

	bearer := []string{"Authorization", "Bearer " + login(t, r)}
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, bearer...).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, bearer...).Code)
}
