// Package main provides operator utilities for trendsmith.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"trendsmith/internal/config"
	"trendsmith/internal/database"
	"trendsmith/internal/middleware"
	"trendsmith/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch command := os.Args[1]; command {
	case "token":
		fs := flag.NewFlagSet("token", flag.ExitOnError)
		ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
		_ = fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			fmt.Println("Usage: admin token [-ttl 24h] <operator>")
			os.Exit(1)
		}
		issueToken(cfg, fs.Arg(0), *ttl)

	case "list-trends":
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		listTrends(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  admin token [-ttl 24h] <operator>   - Issue an operator bearer token")
	fmt.Println("  admin list-trends                   - List trends with their status and counts")
}

func issueToken(cfg *config.Config, operator string, ttl time.Duration) {
	if cfg.OperatorTokenSecret == "" {
		log.Fatal("OPERATOR_TOKEN_SECRET is not set; the API accepts unauthenticated requests")
	}
	token, err := middleware.IssueOperatorToken(cfg.OperatorTokenSecret, operator, ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}

func listTrends(db *gorm.DB) {
	ctx := context.Background()
	repo := repository.NewTrendRepository(db)

	trends, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch trends: %v", err)
	}
	if len(trends) == 0 {
		fmt.Println("No trends found")
		return
	}

	ids := make([]string, len(trends))
	for i, t := range trends {
		ids[i] = t.ID
	}
	counts, err := repo.CountsForTrends(ctx, ids)
	if err != nil {
		log.Fatalf("Failed to count trend posts: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSCRAPED\tPOSTS")
	for _, t := range trends {
		c := counts[t.ID]
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", t.ID, t.Name, t.Status, c.ScrapedPosts, c.Posts)
	}
	_ = w.Flush()
}
