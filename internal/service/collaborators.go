// Package service holds the content workflow: trends are scraped, styled,
// composed and published through the operations defined here.
package service

import (
	"context"
	"log/slog"

	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/search"
)

// ContentSearcher finds candidate posts for a keyword query.
type ContentSearcher interface {
	Search(ctx context.Context, q search.Query) ([]models.CandidatePost, error)
}

// StyleAnalyzer derives a style profile from top posts.
type StyleAnalyzer interface {
	AnalyzeStyle(ctx context.Context, topic string, samples []models.StyleSample, hoursBack int) (models.StyleProfile, error)
}

// PostComposer writes one post in a given style.
type PostComposer interface {
	ComposePost(ctx context.Context, topic string, style models.StyleProfile, recent []string) (string, error)
}

// Publisher posts text to the publishing platform.
type Publisher interface {
	Publish(ctx context.Context, text string) (models.PublishedTweet, error)
}

// recordAdvance logs and counts a trend status change when one happened.
func recordAdvance(ctx context.Context, trendID string, to models.TrendStatus, advanced bool) {
	if !advanced {
		return
	}
	observability.TrendTransitions.WithLabelValues(string(to)).Inc()
	observability.Log().InfoContext(ctx, "trend status advanced",
		slog.String("trend_id", trendID),
		slog.String("status", string(to)),
	)
}
