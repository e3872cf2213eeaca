package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePost struct {
	URI         string         `json:"uri"`
	Author      map[string]any `json:"author"`
	Record      map[string]any `json:"record"`
	LikeCount   int            `json:"likeCount"`
	RepostCount int            `json:"repostCount"`
	ReplyCount  int            `json:"replyCount"`
}

func makePosts(start, n int) []fakePost {
	out := make([]fakePost, 0, n)
	for i := start; i < start+n; i++ {
		out = append(out, fakePost{
			URI:       fmt.Sprintf("at://did:plc:%d/app.bsky.feed.post/%d", i, i),
			Author:    map[string]any{"did": fmt.Sprintf("did:plc:%d", i), "handle": fmt.Sprintf("user%d.bsky.social", i)},
			Record:    map[string]any{"text": fmt.Sprintf("post %d", i), "createdAt": "2026-05-01T12:00:00.000Z"},
			LikeCount: i,
		})
	}
	return out
}

func TestSearch_PagesUntilLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, searchPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ai agents", q.Get("q"))
		assert.Equal(t, "top", q.Get("sort"))
		assert.Equal(t, "2026-05-01T00:00:00Z", q.Get("since"))
		assert.Equal(t, "100", q.Get("limit"))

		start := 0
		if c := q.Get("cursor"); c != "" {
			start, _ = strconv.Atoi(c)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"posts":  makePosts(start, 100),
			"cursor": strconv.Itoa(start + 100),
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	posts, err := client.Search(context.Background(), Query{
		Text:  "ai agents",
		Since: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Limit: 250,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, posts, 300, "the last page is kept whole; callers truncate after ranking")

	first := posts[0]
	assert.Equal(t, "did:plc:0", first.AuthorDID)
	assert.Equal(t, "user0.bsky.social", first.AuthorHandle)
	assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), first.PostedAt)
}

func TestSearch_StopsOnShortPageOrMissingCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
		size   int
	}{
		{"short page", "next", 3},
		{"no cursor", "", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, "10", r.URL.Query().Get("limit"))
				_ = json.NewEncoder(w).Encode(map[string]any{"posts": makePosts(0, tt.size), "cursor": tt.cursor})
			}))
			defer srv.Close()

			posts, err := NewClient(srv.URL, time.Second).Search(context.Background(), Query{Text: "x", Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int32(1), calls.Load())
			assert.Len(t, posts, tt.size)
		})
	}
}

func TestSearch_HTTPErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"InvalidRequest"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Search(context.Background(), Query{Text: "x", Limit: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 50*time.Millisecond).Search(context.Background(), Query{Text: "x", Limit: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearch_ZeroLimitSkipsRequest(t *testing.T) {
	posts, err := NewClient("http://127.0.0.1:0", time.Second).Search(context.Background(), Query{Text: "x"})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParseTimestamp_FallsBack(t *testing.T) {
	got := parseTimestamp("not-a-time", "2026-05-02T08:30:00Z")
	assert.Equal(t, time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC), got)
	assert.True(t, parseTimestamp("", "").IsZero())
}
