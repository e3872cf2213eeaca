// Command main loads sample trends into the trendsmith database.
package main

import (
	"flag"
	"log"

	"trendsmith/internal/config"
	"trendsmith/internal/database"
	"trendsmith/internal/seed"
)

func main() {
	postsPerTrend := flag.Int("posts", 25, "Scraped posts to generate per trend")
	hoursBack := flag.Int("hours", 48, "Spread generated post times over this many hours")
	shouldClean := flag.Bool("clean", false, "Remove all trends before seeding")
	dryRun := flag.Bool("dry-run", false, "Build fixtures without writing them")
	randSeed := flag.Int64("rand-seed", 0, "Seed for generated content (0 = random)")
	fixturesPath := flag.String("fixtures", "", "YAML fixture file (defaults to the built-in set)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		PostsPerTrend: *postsPerTrend,
		HoursBack:     *hoursBack,
		Clean:         *shouldClean,
		DryRun:        *dryRun,
		RandSeed:      *randSeed,
	}
	if *fixturesPath != "" {
		opts.Fixtures, err = seed.ReadFixtures(*fixturesPath)
		if err != nil {
			log.Fatalf("Failed to read fixtures: %v", err)
		}
	}

	summary, err := seed.Fixtures(db, opts)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Done: %d trends, %d scraped posts, %d style cards, %d drafts",
		summary.Trends, summary.ScrapedPosts, summary.StyleCards, summary.Drafts)
}
