// Package search fetches trending posts from the Bluesky public AppView.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultBaseURL is the public Bluesky AppView.
const DefaultBaseURL = "https://public.api.bsky.app"

// maxPageSize is the largest page app.bsky.feed.searchPosts accepts.
const maxPageSize = 100

const searchPath = "/xrpc/app.bsky.feed.searchPosts"

// Query describes one search run.
type Query struct {
	Text  string
	Since time.Time
	Limit int
}

// Client searches Bluesky posts.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient creates a search client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

type searchPostsResponse struct {
	Posts []struct {
		URI    string `json:"uri"`
		Author struct {
			DID    string `json:"did"`
			Handle string `json:"handle"`
		} `json:"author"`
		Record struct {
			Text      string `json:"text"`
			CreatedAt string `json:"createdAt"`
		} `json:"record"`
		LikeCount   int    `json:"likeCount"`
		RepostCount int    `json:"repostCount"`
		ReplyCount  int    `json:"replyCount"`
		IndexedAt   string `json:"indexedAt"`
	} `json:"posts"`
	Cursor string `json:"cursor"`
}

// Search returns up to q.Limit top posts matching q.Text posted after q.Since.
// Pages are requested until the limit is reached, the cursor runs out or a page comes back short.
// The whole run shares one timeout.
func (c *Client) Search(ctx context.Context, q Query) (posts []models.CandidatePost, err error) {
	if q.Limit <= 0 {
		return []models.CandidatePost{}, nil
	}

	ctx, span := observability.GetTraceLayer().TraceUpstreamCall(ctx, observability.ServiceBluesky, "searchPosts")
	defer span.End()
	done := observability.TrackUpstream(observability.ServiceBluesky, "searchPosts")
	defer func() {
		done(err)
		observability.RecordErrorInContext(ctx, err)
	}()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	perPage := min(q.Limit, maxPageSize)
	posts = make([]models.CandidatePost, 0, q.Limit)
	cursor := ""
	pages := 0

	for len(posts) < q.Limit {
		page, err := c.fetchPage(ctx, q, perPage, cursor)
		if err != nil {
			return nil, err
		}
		pages++

		for _, p := range page.Posts {
			posts = append(posts, models.CandidatePost{
				URI:          p.URI,
				AuthorDID:    p.Author.DID,
				AuthorHandle: p.Author.Handle,
				Content:      p.Record.Text,
				Likes:        p.LikeCount,
				Reposts:      p.RepostCount,
				Replies:      p.ReplyCount,
				PostedAt:     parseTimestamp(p.Record.CreatedAt, p.IndexedAt),
			})
		}

		cursor = page.Cursor
		if cursor == "" || len(page.Posts) < perPage {
			break
		}
	}

	span.SetAttributes(attribute.Int("search.pages", pages), attribute.Int("search.results", len(posts)))
	return posts, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query, perPage int, cursor string) (*searchPostsResponse, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("sort", "top")
	params.Set("since", q.Since.UTC().Format(time.RFC3339))
	params.Set("limit", strconv.Itoa(perPage))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build bluesky request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bluesky search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bluesky search failed: %d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	var page searchPostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode bluesky search response: %w", err)
	}
	return &page, nil
}

// parseTimestamp reads the record's createdAt, falling back to the AppView's indexedAt.
func parseTimestamp(values ...string) time.Time {
	for _, v := range values {
		if v == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
