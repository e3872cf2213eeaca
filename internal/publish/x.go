// Package publish posts approved content to X.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"

	"github.com/dghubble/oauth1"
	twitter "github.com/g8rswimmer/go-twitter/v2"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultHost is the X API host.
const DefaultHost = "https://api.twitter.com"

// TweetURL returns the public URL of a tweet.
func TweetURL(id string) string {
	return "https://x.com/i/status/" + id
}

// Credentials are the OAuth 1.0a user-context keys of the posting account.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Missing returns the names of unset credentials.
func (c Credentials) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "X_API_KEY")
	}
	if c.APISecret == "" {
		missing = append(missing, "X_API_SECRET")
	}
	if c.AccessToken == "" {
		missing = append(missing, "X_ACCESS_TOKEN")
	}
	if c.AccessTokenSecret == "" {
		missing = append(missing, "X_ACCESS_TOKEN_SECRET")
	}
	return missing
}

// ErrMissingCredentials is returned when any X credential is unset.
var ErrMissingCredentials = errors.New("x credentials are not configured")

// signedRequests is a no-op twitter.Authorizer: requests are signed by the
// oauth1 transport underneath the client instead of a bearer header.
type signedRequests struct{}

func (signedRequests) Add(*http.Request) {}

// XPublisher creates tweets on behalf of one account.
type XPublisher struct {
	creds   Credentials
	host    string
	timeout time.Duration
}

// NewXPublisher creates a publisher. An empty host selects DefaultHost.
// Credentials are checked on each call, not here.
func NewXPublisher(creds Credentials, host string, timeout time.Duration) *XPublisher {
	if host == "" {
		host = DefaultHost
	}
	return &XPublisher{creds: creds, host: strings.TrimRight(host, "/"), timeout: timeout}
}

func (p *XPublisher) client(ctx context.Context) *twitter.Client {
	config := oauth1.NewConfig(p.creds.APIKey, p.creds.APISecret)
	httpClient := config.Client(ctx, oauth1.NewToken(p.creds.AccessToken, p.creds.AccessTokenSecret))
	httpClient.Timeout = p.timeout
	return &twitter.Client{
		Authorizer: signedRequests{},
		Client:     httpClient,
		Host:       p.host,
	}
}

// Publish posts text as a new tweet. There is no retry.
func (p *XPublisher) Publish(ctx context.Context, text string) (tweet models.PublishedTweet, err error) {
	ctx, span := observability.GetTraceLayer().TraceUpstreamCall(ctx, observability.ServiceX, "createTweet")
	defer span.End()
	done := observability.TrackUpstream(observability.ServiceX, "createTweet")
	defer func() {
		done(err)
		observability.RecordErrorInContext(ctx, err)
	}()

	if missing := p.creds.Missing(); len(missing) > 0 {
		return models.PublishedTweet{}, fmt.Errorf("%w: missing %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client(ctx).CreateTweet(ctx, twitter.CreateTweetRequest{Text: text})
	if err != nil {
		return models.PublishedTweet{}, fmt.Errorf("create tweet: %w", err)
	}
	if resp == nil || resp.Tweet == nil || resp.Tweet.ID == "" {
		return models.PublishedTweet{}, errors.New("create tweet: response has no tweet id")
	}

	span.SetAttributes(attribute.String("x.tweet_id", resp.Tweet.ID))
	return models.PublishedTweet{ID: resp.Tweet.ID, URL: TweetURL(resp.Tweet.ID)}, nil
}
