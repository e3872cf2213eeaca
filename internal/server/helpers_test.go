package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"trendsmith/internal/config"
	"trendsmith/internal/models"
	"trendsmith/internal/search"
	"trendsmith/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockSearcher is a mock of the ContentSearcher interface
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, q search.Query) ([]models.CandidatePost, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CandidatePost), args.Error(1)
}

// MockLLM is a mock of the StyleAnalyzer and PostComposer interfaces
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) AnalyzeStyle(ctx context.Context, topic string, samples []models.StyleSample, hoursBack int) (models.StyleProfile, error) {
	args := m.Called(ctx, topic, samples, hoursBack)
	return args.Get(0).(models.StyleProfile), args.Error(1)
}

func (m *MockLLM) ComposePost(ctx context.Context, topic string, style models.StyleProfile, recent []string) (string, error) {
	args := m.Called(ctx, topic, style, recent)
	return args.String(0), args.Error(1)
}

// MockPublisher is a mock of the Publisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, text string) (models.PublishedTweet, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(models.PublishedTweet), args.Error(1)
}

type testEnv struct {
	db        *gorm.DB
	app       *fiber.App
	searcher  *MockSearcher
	llm       *MockLLM
	publisher *MockPublisher
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{Env: "test", Port: "0"}
	for _, m := range mutate {
		m(cfg)
	}

	env := &testEnv{
		db:        testutil.NewDB(t),
		searcher:  new(MockSearcher),
		llm:       new(MockLLM),
		publisher: new(MockPublisher),
	}
	srv, err := NewServerWithDeps(cfg, Deps{
		DB:        env.db,
		Searcher:  env.searcher,
		Analyzer:  env.llm,
		Composer:  env.llm,
		Publisher: env.publisher,
	})
	require.NoError(t, err)
	env.app = srv.App()
	return env
}

// do sends a request with an optional JSON body and decodes the JSON reply into out.
func (e *testEnv) do(t *testing.T, method, path string, body any, out any, headers ...string) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func (e *testEnv) createTrend(t *testing.T) models.Trend {
	t.Helper()
	var trend models.Trend
	status := e.do(t, http.MethodPost, "/api/trends", map[string]string{
		"name":     "AI Agents",
		"keywords": "ai agents, agentic",
	}, &trend)
	require.Equal(t, http.StatusCreated, status)
	return trend
}

func candidates(n int) []models.CandidatePost {
	out := make([]models.CandidatePost, n)
	for i := range out {
		out[i] = models.CandidatePost{
			URI:          "at://did:plc:test/app.bsky.feed.post/" + string(rune('a'+i)),
			AuthorHandle: "tester.bsky.social",
			Content:      "agents are eating the world " + string(rune('a'+i)),
			Likes:        (i + 1) * 10,
			Reposts:      i,
		}
	}
	return out
}

func sampleProfile() models.StyleProfile {
	return models.StyleProfile{
		Tone:     "dry",
		Format:   "hot take + evidence",
		MinWords: 10,
		MaxWords: 40,
		Hooks:    []string{"Unpopular opinion:"},
		Avoid:    []string{"hashtags"},
		Examples: []string{"Agents are cron jobs with ambition."},
	}
}
