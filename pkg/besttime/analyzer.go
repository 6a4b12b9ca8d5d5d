// Package besttime estimates the best time of day to publish to a subreddit
// from the creation times of its historically popular posts.
package besttime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/triclops200/besttime/pkg/histogram"
	"github.com/triclops200/besttime/pkg/reddit"
	"github.com/triclops200/besttime/pkg/stats"
	"github.com/triclops200/besttime/pkg/timeofday"
)

// Supplier yields one page of post records per call. *reddit.Client is the
// production implementation; tests inject fakes.
type Supplier interface {
	Listing(ctx context.Context, req reddit.ListingRequest) (reddit.Page, error)
}

// Check interface implementation at compile time.
var _ Supplier = (*reddit.Client)(nil)

// CompressedPost is an order-preserving projection of a post down to the
// fields the pipeline consumes.
type CompressedPost struct {
	Title     string
	CreatedAt time.Time
	Ups       int
}

// Analyzer runs the posting-time pipeline against an injected Supplier.
// It holds no per-query state; one Analyzer may serve concurrent queries as
// long as its Supplier is reentrant.
type Analyzer struct {
	supplier  Supplier
	logger    *slog.Logger
	cmp       Comparator
	threshold int
	pageCount int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithThreshold sets the upvote threshold. Defaults to 100.
func WithThreshold(threshold int) Option {
	return func(a *Analyzer) { a.threshold = threshold }
}

// WithComparator sets the popularity comparator. Defaults to GreaterThan.
func WithComparator(cmp Comparator) Option {
	return func(a *Analyzer) { a.cmp = cmp }
}

// WithPageCount sets how many listing pages to aggregate per query.
// Defaults to 1.
func WithPageCount(pages int) Option {
	return func(a *Analyzer) { a.pageCount = pages }
}

// New creates an Analyzer over a Supplier.
func New(supplier Supplier, opts ...Option) *Analyzer {
	a := &Analyzer{
		supplier:  supplier,
		logger:    slog.Default(),
		cmp:       GreaterThan,
		threshold: 100,
		pageCount: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fetchTopPosts aggregates up to pageCount pages of the subreddit's top
// listing into one flat sequence. Pagination is sequential: the cursor for
// page k+1 is the fullname of page k's last record, falling back to the
// server-supplied cursor when the record carries none. An empty page ends
// pagination early rather than failing the query; a sparse subreddit simply
// has fewer top posts than requested.
func (a *Analyzer) fetchTopPosts(ctx context.Context, forum string, window reddit.Window) ([]reddit.Post, error) {
	var all []reddit.Post
	after := ""
	for page := 1; page <= a.pageCount; page++ {
		pg, err := a.supplier.Listing(ctx, reddit.ListingRequest{
			Subreddit: forum,
			Sort:      reddit.SortTop,
			Window:    window,
			After:     after,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching page %d for r/%s: %w", page, forum, err)
		}
		if len(pg.Posts) == 0 {
			a.logger.Debug("empty listing page, stopping pagination",
				"subreddit", forum, "page", page)
			break
		}
		all = append(all, pg.Posts...)

		after = pg.Posts[len(pg.Posts)-1].Name
		if after == "" {
			after = pg.After
		}
		if after == "" {
			a.logger.Debug("no cursor derivable, stopping pagination",
				"subreddit", forum, "page", page)
			break
		}
	}
	return all, nil
}

// compress projects posts down to (title, instant, ups) tuples, in order.
func compress(posts []reddit.Post) []CompressedPost {
	out := make([]CompressedPost, len(posts))
	for i, p := range posts {
		out[i] = CompressedPost{
			Title:     p.Title,
			CreatedAt: p.CreatedAt(),
			Ups:       p.Ups,
		}
	}
	return out
}

// popularMinutes runs the shared front of the pipeline: aggregate, filter,
// extract, encode. The returned minutes are unsorted, in listing order.
func (a *Analyzer) popularMinutes(ctx context.Context, forum, window string) ([]int, error) {
	w, err := reddit.ParseWindow(window)
	if err != nil {
		// Already tagged with ErrInvalidArgument by the parser.
		return nil, fmt.Errorf("r/%s: %w", forum, err)
	}

	posts, err := a.fetchTopPosts(ctx, forum, w)
	if err != nil {
		return nil, err
	}

	kept := FilterByUps(posts, a.threshold, a.cmp)
	a.logger.Debug("filtered posts", "subreddit", forum,
		"fetched", len(posts), "kept", len(kept), "threshold", a.threshold)
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: r/%s has no posts passing threshold %d over the last %s",
			ErrEmptyResult, forum, a.threshold, w)
	}

	minutes := make([]int, 0, len(kept))
	for _, cp := range compress(kept) {
		minutes = append(minutes, int(timeofday.FromTime(cp.CreatedAt)))
	}
	return minutes, nil
}

// BestTime returns the start of the time-of-day section containing the most
// popular posts, after dividing the day into the given number of sections.
func (a *Analyzer) BestTime(ctx context.Context, forum, window string, sections int) (timeofday.Minute, error) {
	if sections <= 1 {
		return 0, fmt.Errorf("%w: section count must be greater than 1, got %d", ErrInvalidArgument, sections)
	}
	minutes, err := a.popularMinutes(ctx, forum, window)
	if err != nil {
		return 0, err
	}
	best, err := histogram.Best(minutes, sections)
	if err != nil {
		return 0, fmt.Errorf("bucketing r/%s post times: %w", forum, err)
	}
	return best, nil
}

// PostTimeHistogram returns every section's start time and popular-post
// count, in ascending time-of-day order.
func (a *Analyzer) PostTimeHistogram(ctx context.Context, forum, window string, sections int) ([]histogram.Section, error) {
	if sections <= 1 {
		return nil, fmt.Errorf("%w: section count must be greater than 1, got %d", ErrInvalidArgument, sections)
	}
	minutes, err := a.popularMinutes(ctx, forum, window)
	if err != nil {
		return nil, err
	}
	report, err := histogram.Sections(minutes, sections)
	if err != nil {
		return nil, fmt.Errorf("bucketing r/%s post times: %w", forum, err)
	}
	return report, nil
}

// MedianPostTime returns the median posting time of the subreddit's popular
// posts.
func (a *Analyzer) MedianPostTime(ctx context.Context, forum, window string) (timeofday.Minute, error) {
	minutes, err := a.popularMinutes(ctx, forum, window)
	if err != nil {
		return 0, err
	}
	sort.Ints(minutes)
	median, err := stats.MedianMinute(minutes)
	if err != nil {
		return 0, fmt.Errorf("median post time for r/%s: %w", forum, err)
	}
	return median, nil
}
