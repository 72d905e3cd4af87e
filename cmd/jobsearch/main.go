package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"resume-coach/internal/config"
	"resume-coach/internal/infrastructure/jobsearch"

	"github.com/joho/godotenv"
)

func main() {
	query := flag.String("q", "", "job search keywords")
	location := flag.String("l", "", "job location")
	page := flag.Int("page", 1, "result page, starting at 1")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	q := strings.TrimSpace(*query)
	loc := strings.TrimSpace(*location)
	if q == "" && loc == "" {
		log.Fatalf("provide -q and/or -l")
	}
	if *page < 1 {
		log.Fatalf("-page must be a positive integer")
	}

	client := jobsearch.NewClient(cfg.Jobs, log.Default())
	if client == nil {
		log.Fatalf("JOBS_API_APP_ID and JOBS_API_APP_KEY are not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := client.Search(ctx, jobsearch.Query{Keywords: q, Location: loc, Page: *page})
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
