// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"trendsmith/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the fixture loader and tests.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	opts  Options
	now   time.Time
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// A zero opts.RandSeed draws a time-based seed.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, faker: gofakeit.New(seed), opts: opts, now: time.Now()}
}

// BuildScrapedPost constructs a scraped post that mentions one of the trend's
// keywords. It is not persisted.
func (f *Factory) BuildScrapedPost(trend *models.Trend, overrides ...func(*models.ScrapedPost)) models.ScrapedPost {
	did := "did:plc:" + strings.ToLower(f.faker.LetterN(24))
	rkey := strings.ToLower(f.faker.LetterN(13))

	candidate := models.CandidatePost{
		URI:          fmt.Sprintf("at://%s/app.bsky.feed.post/%s", did, rkey),
		AuthorDID:    did,
		AuthorHandle: strings.ToLower(f.faker.Username()) + ".bsky.social",
		Content:      fmt.Sprintf("%s %s", keywordFor(trend, f.faker), f.faker.HipsterSentence(f.faker.Number(8, 30))),
		Likes:        f.faker.Number(0, 5000),
		Reposts:      f.faker.Number(0, 800),
		Replies:      f.faker.Number(0, 300),
		PostedAt:     f.faker.DateRange(f.now.Add(-time.Duration(f.hoursBack())*time.Hour), f.now),
	}
	post := candidate.ToScrapedPost(trend.ID)

	for _, override := range overrides {
		override(&post)
	}
	return post
}

// CreateScrapedPosts persists n generated posts for trend in a single batch.
func (f *Factory) CreateScrapedPosts(trend *models.Trend, n int) ([]models.ScrapedPost, error) {
	if n <= 0 {
		return nil, nil
	}
	posts := make([]models.ScrapedPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, f.BuildScrapedPost(trend))
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateScrapedPosts: %d posts for %q (no DB write)", n, trend.Name)
		return posts, nil
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateStyleCard persists a card for trend from a fixture. Missing examples
// are filled with generated sentences.
func (f *Factory) CreateStyleCard(trend *models.Trend, sf StyleFixture) (*models.StyleCard, error) {
	examples := sf.Examples
	if len(examples) == 0 {
		for i := 0; i < 3; i++ {
			examples = append(examples, f.faker.Sentence(f.faker.Number(sf.MinWords, sf.MaxWords)))
		}
	}

	card := &models.StyleCard{
		TrendID:  trend.ID,
		Tone:     sf.Tone,
		Format:   sf.Format,
		MinWords: sf.MinWords,
		MaxWords: sf.MaxWords,
		Hooks:    datatypes.JSONSlice[string](sf.Hooks),
		Avoid:    datatypes.JSONSlice[string](sf.Avoid),
		Examples: datatypes.JSONSlice[string](examples),
		Locked:   sf.Locked,
	}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateStyleCard: trend=%q locked=%v", trend.Name, card.Locked)
		return card, nil
	}
	if err := f.db.Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// CreateDraft persists a draft post for trend.
func (f *Factory) CreateDraft(trend *models.Trend, content string) (*models.Post, error) {
	post := &models.Post{TrendID: trend.ID, Content: content, Status: models.PostStatusDraft}

	if f.opts.DryRun {
		log.Printf("[dry-run] CreateDraft: trend=%q", trend.Name)
		return post, nil
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (f *Factory) hoursBack() int {
	if f.opts.HoursBack > 0 {
		return f.opts.HoursBack
	}
	return 48
}

// keywordFor picks one of the trend's comma-separated keywords.
func keywordFor(trend *models.Trend, faker *gofakeit.Faker) string {
	var words []string
	for _, k := range strings.Split(trend.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			words = append(words, k)
		}
	}
	if len(words) == 0 {
		return trend.Name
	}
	return words[faker.Number(0, len(words)-1)]
}
