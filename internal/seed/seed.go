package seed

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"trendsmith/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures.yml
var defaultFixtures []byte

// Options configuration for the seeder
type Options struct {
	// PostsPerTrend is the number of scraped posts generated per trend.
	PostsPerTrend int
	// HoursBack bounds the generated post times.
	HoursBack int
	// Clean removes every trend and its dependents first.
	Clean bool
	// OnlyIfEmpty skips seeding when any trend exists.
	OnlyIfEmpty bool
	// DryRun builds entities without writing them.
	DryRun bool
	// RandSeed makes generated content reproducible when non-zero.
	RandSeed int64
	// Fixtures overrides the embedded fixture document.
	Fixtures []byte
}

// TrendFixture describes a sample trend and how far along the workflow it is.
type TrendFixture struct {
	Name        string        `yaml:"name"`
	Keywords    string        `yaml:"keywords"`
	Description string        `yaml:"description"`
	Scrape      bool          `yaml:"scrape"`
	Style       *StyleFixture `yaml:"style"`
	Drafts      []string      `yaml:"drafts"`
}

// StyleFixture is the style card attached to a fixture trend.
type StyleFixture struct {
	Tone     string   `yaml:"tone"`
	Format   string   `yaml:"format"`
	MinWords int      `yaml:"min_words"`
	MaxWords int      `yaml:"max_words"`
	Hooks    []string `yaml:"hooks"`
	Avoid    []string `yaml:"avoid"`
	Examples []string `yaml:"examples"`
	Locked   bool     `yaml:"locked"`
}

type fixtureFile struct {
	Trends []TrendFixture `yaml:"trends"`
}

// Summary reports what a seeding run created.
type Summary struct {
	Skipped      bool
	Trends       int
	ScrapedPosts int
	StyleCards   int
	Drafts       int
}

// ParseFixtures decodes a fixture document and checks each entry.
func ParseFixtures(raw []byte) ([]TrendFixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, tf := range file.Trends {
		if tf.Name == "" || tf.Keywords == "" {
			return nil, fmt.Errorf("fixture %d: name and keywords are required", i)
		}
		if tf.Style != nil {
			if tf.Style.MinWords < 0 || tf.Style.MinWords > tf.Style.MaxWords {
				return nil, fmt.Errorf("fixture %q: invalid word range %d-%d", tf.Name, tf.Style.MinWords, tf.Style.MaxWords)
			}
			if tf.Style.Tone == "" || tf.Style.Format == "" {
				return nil, fmt.Errorf("fixture %q: style needs tone and format", tf.Name)
			}
		}
		if len(tf.Drafts) > 0 && (tf.Style == nil || !tf.Style.Locked) {
			return nil, fmt.Errorf("fixture %q: drafts require a locked style card", tf.Name)
		}
	}
	return file.Trends, nil
}

// ReadFixtures reads a fixture document from path and validates it.
func ReadFixtures(path string) ([]byte, error) {
	// #nosec G304: path comes from a CLI flag in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := ParseFixtures(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Fixtures loads the sample trends. Each trend is created in its own
// transaction with a status matching how far its fixture goes.
func Fixtures(db *gorm.DB, opts Options) (Summary, error) {
	var summary Summary

	raw := opts.Fixtures
	if raw == nil {
		raw = defaultFixtures
	}
	fixtures, err := ParseFixtures(raw)
	if err != nil {
		return summary, err
	}
	if opts.PostsPerTrend <= 0 {
		opts.PostsPerTrend = 25
	}

	if opts.Clean && !opts.DryRun {
		if err := ClearAll(db); err != nil {
			return summary, err
		}
	}

	if opts.OnlyIfEmpty {
		var count int64
		if err := db.Model(&models.Trend{}).Count(&count).Error; err != nil {
			return summary, fmt.Errorf("count trends: %w", err)
		}
		if count > 0 {
			summary.Skipped = true
			return summary, nil
		}
	}

	for _, tf := range fixtures {
		err := db.Transaction(func(tx *gorm.DB) error {
			return seedTrend(NewFactory(tx, opts), tx, tf, opts, &summary)
		})
		if err != nil {
			return summary, fmt.Errorf("seed trend %q: %w", tf.Name, err)
		}
	}

	log.Printf("seeded %d trends, %d scraped posts, %d style cards, %d drafts",
		summary.Trends, summary.ScrapedPosts, summary.StyleCards, summary.Drafts)
	return summary, nil
}

func seedTrend(f *Factory, tx *gorm.DB, tf TrendFixture, opts Options, summary *Summary) error {
	trend := &models.Trend{Name: tf.Name, Keywords: tf.Keywords, Status: models.TrendStatusNew}
	if tf.Description != "" {
		desc := tf.Description
		trend.Description = &desc
	}
	if tf.Scrape || tf.Style != nil {
		trend.Status = trend.Status.Advance(models.TrendStatusScraped)
	}
	if tf.Style != nil && tf.Style.Locked {
		trend.Status = trend.Status.Advance(models.TrendStatusStyled)
	}
	if len(tf.Drafts) > 0 {
		trend.Status = trend.Status.Advance(models.TrendStatusActive)
	}

	if !opts.DryRun {
		if err := tx.Create(trend).Error; err != nil {
			return err
		}
	}
	summary.Trends++

	if trend.Status != models.TrendStatusNew {
		posts, err := f.CreateScrapedPosts(trend, opts.PostsPerTrend)
		if err != nil {
			return err
		}
		summary.ScrapedPosts += len(posts)
	}

	if tf.Style != nil {
		if _, err := f.CreateStyleCard(trend, *tf.Style); err != nil {
			return err
		}
		summary.StyleCards++
	}

	for _, content := range tf.Drafts {
		if _, err := f.CreateDraft(trend, content); err != nil {
			return err
		}
		summary.Drafts++
	}
	return nil
}

// ClearAll removes all trends and everything that references them.
func ClearAll(db *gorm.DB) error {
	log.Println("cleaning existing data...")
	for _, model := range []interface{}{&models.Post{}, &models.StyleCard{}, &models.ScrapedPost{}, &models.Trend{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}
