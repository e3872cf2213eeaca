package server

import (
	"net/http"
	"testing"
	"time"

	"trendsmith/internal/config"
	"trendsmith/internal/middleware"
	"trendsmith/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOperatorSecret = "test-operator-secret-with-enough-length"

func withOperatorSecret(cfg *config.Config) {
	cfg.OperatorTokenSecret = testOperatorSecret
}

func TestOperatorAuth_GuardsMutations(t *testing.T) {
	env := newTestEnv(t, withOperatorSecret)
	body := map[string]string{"name": "AI Agents", "keywords": "ai agents"}

	var errResp models.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/trends", body, &errResp))
	assert.Equal(t, models.CodeUnauthorized, errResp.Code)

	assert.Equal(t, http.StatusUnauthorized,
		env.do(t, http.MethodPost, "/api/trends", body, &errResp, "Authorization", "Bearer not-a-token"))
	assert.Equal(t, http.StatusUnauthorized,
		env.do(t, http.MethodPost, "/api/trends", body, &errResp, "Authorization", "Token abc"))

	wrongSecret, err := middleware.IssueOperatorToken("some-other-secret", "ops", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized,
		env.do(t, http.MethodPost, "/api/trends", body, &errResp, "Authorization", "Bearer "+wrongSecret))

	expired, err := middleware.IssueOperatorToken(testOperatorSecret, "ops", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized,
		env.do(t, http.MethodPost, "/api/trends", body, &errResp, "Authorization", "Bearer "+expired))

	token, err := middleware.IssueOperatorToken(testOperatorSecret, "ops", time.Hour)
	require.NoError(t, err)
	var trend models.Trend
	assert.Equal(t, http.StatusCreated,
		env.do(t, http.MethodPost, "/api/trends", body, &trend, "Authorization", "Bearer "+token))
	assert.NotEmpty(t, trend.ID)
}

func TestOperatorAuth_ReadsArePublic(t *testing.T) {
	env := newTestEnv(t, withOperatorSecret)

	var trends []models.TrendDetail
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/trends", nil, &trends))
	assert.Empty(t, trends)
}

func TestIssueOperatorToken_RequiresSecretAndName(t *testing.T) {
	t.Parallel()

	_, err := middleware.IssueOperatorToken("", "ops", time.Hour)
	assert.Error(t, err)
	_, err = middleware.IssueOperatorToken(testOperatorSecret, "", time.Hour)
	assert.Error(t, err)
}

func TestStageSwitch_DisablesPublishing(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.FeatureFlags = "publish=off" })
	trend := env.createTrend(t)
	post := models.Post{TrendID: trend.ID, Content: "ready", Status: models.PostStatusApproved}
	require.NoError(t, env.db.Create(&post).Error)

	var errResp models.ErrorResponse
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodPost, "/api/publish/"+post.ID, nil, &errResp))
	assert.Equal(t, models.CodeDisabled, errResp.Code)
	assert.Equal(t, "publish is disabled", errResp.Error)
	env.publisher.AssertNotCalled(t, "Publish")

	var flags map[string]bool
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/features", nil, &flags))
	assert.False(t, flags["publish"])
	assert.True(t, flags["scrape"])

	var ready struct {
		DisabledStages []string `json:"disabledStages"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", nil, &ready))
	assert.Equal(t, []string{"publish"}, ready.DisabledStages)
}

func TestReadiness_DegradedWithoutRedis(t *testing.T) {
	env := newTestEnv(t)

	var body struct {
		Status         string            `json:"status"`
		Checks         map[string]string `json:"checks"`
		DisabledStages []string          `json:"disabledStages"`
	}
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/ready", nil, &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"])
	assert.Equal(t, "unavailable", body.Checks["redis"])
	assert.NotNil(t, body.DisabledStages)
	assert.Empty(t, body.DisabledStages)

	var live map[string]any
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health/live", nil, &live))
	assert.Equal(t, "up", live["status"])
}

func TestUnknownRoute_ReturnsErrorEnvelope(t *testing.T) {
	env := newTestEnv(t)

	var errResp models.ErrorResponse
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/nope", nil, &errResp))
	assert.Equal(t, models.CodeNotFound, errResp.Code)
}

func TestResponses_CarrySecurityHeadersAndRequestID(t *testing.T) {
	env := newTestEnv(t)

	req := httpRequest(t, http.MethodGet, "/health/live")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}
