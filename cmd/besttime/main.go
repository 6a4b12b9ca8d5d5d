// Package main implements the besttime CLI: it estimates the best time of
// day to post to a subreddit from the timing of its popular posts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/triclops200/besttime/internal/config"
	"github.com/triclops200/besttime/pkg/besttime"
	"github.com/triclops200/besttime/pkg/histogram"
	"github.com/triclops200/besttime/pkg/pagecache"
	"github.com/triclops200/besttime/pkg/reddit"
)

var (
	configPath    = flag.String("config", config.DefaultConfigPath, "Config file path")
	window        = flag.String("window", "", "Ranking window: hour, day, week, month, year, all")
	sections      = flag.Int("sections", 0, "Number of time-of-day sections to divide the day into")
	threshold     = flag.Int("threshold", 0, "Minimum upvote count for a post to count as popular")
	pages         = flag.Int("pages", 0, "Listing pages to aggregate (100 posts each)")
	showHistogram = flag.Bool("histogram", false, "Print the full section histogram instead of the best section")
	showMedian    = flag.Bool("median", false, "Print the median posting time instead of the best section")
	noCache       = flag.Bool("no-cache", false, "Disable the on-disk page cache")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	version       = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("besttime v1.0.0")
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <subreddit>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	subreddit := args[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "besttime: %v\n", err)
		os.Exit(1)
	}

	// Flags override config.
	if *window != "" {
		cfg.Query.Window = *window
	}
	if *sections > 0 {
		cfg.Query.Sections = *sections
	}
	if *threshold > 0 {
		cfg.Query.Threshold = *threshold
	}
	if *pages > 0 {
		cfg.Query.Pages = *pages
	}

	level := parseLevel(cfg.Logging.Level)
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Deferred cleanup (notably the page cache snapshot) must run even when
	// the query fails, so the exit decision stays out here.
	if err := run(cfg, logger, subreddit); err != nil {
		logger.Error("query failed", "subreddit", subreddit, "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, subreddit string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	clientOpts := []reddit.Option{
		reddit.WithUserAgent(cfg.HTTP.UserAgent),
		reddit.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		}),
	}
	if cfg.Cache.Enabled && !*noCache {
		dir, err := config.ExpandPath(cfg.Cache.Dir)
		if err != nil {
			return fmt.Errorf("resolving cache dir: %w", err)
		}
		cache, err := pagecache.New(ctx, dir, time.Duration(cfg.Cache.TTLHours)*time.Hour, logger)
		if err != nil {
			logger.Warn("page cache unavailable, continuing without it", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Error("failed to save page cache", "error", err)
				}
			}()
			clientOpts = append(clientOpts, reddit.WithCache(cache))
		}
	}

	client := reddit.NewClient(logger, clientOpts...)
	analyzer := besttime.New(client,
		besttime.WithLogger(logger),
		besttime.WithThreshold(cfg.Query.Threshold),
		besttime.WithPageCount(cfg.Query.Pages),
	)

	switch {
	case *showHistogram:
		report, err := analyzer.PostTimeHistogram(ctx, subreddit, cfg.Query.Window, cfg.Query.Sections)
		if err != nil {
			return err
		}
		fmt.Print(histogram.Render(report))
	case *showMedian:
		median, err := analyzer.MedianPostTime(ctx, subreddit, cfg.Query.Window)
		if err != nil {
			return err
		}
		fmt.Printf("Median popular post time for r/%s (UTC): %s\n", subreddit, median)
	default:
		best, err := analyzer.BestTime(ctx, subreddit, cfg.Query.Window, cfg.Query.Sections)
		if err != nil {
			return err
		}
		fmt.Printf("Best time to post to r/%s (UTC): %s\n", subreddit, best)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
