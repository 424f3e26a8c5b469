// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"ghreview/internal/domain"
	"ghreview/internal/gateway"
	"ghreview/internal/review"
	"golang.org/x/sync/errgroup"
)

const (
	// languageFetchGroup bounds peak concurrent language requests. Groups
	// run strictly one after another; only fetches within a group overlap.
	languageFetchGroup = 5
	// activityWindow is the trailing window for the push-commit estimate.
	activityWindow = 30 * 24 * time.Hour
)

// Analyzer is the use case for analyzing a GitHub profile.
// It orchestrates the fetching, aggregation and narration of one run.
type Analyzer struct {
	fetcher gateway.Fetcher
	logger  *log.Logger

	mu     sync.Mutex
	gen    atomic.Uint64
	latest *domain.Analysis
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Analyze performs one full analysis for the given login. The profile and
// repository fetches are fatal on failure; language and event fetches are
// best-effort. now is the single reference time for every time-based
// figure in the run, so identical fixed inputs produce identical output.
func (a *Analyzer) Analyze(ctx context.Context, login string, now time.Time) (*domain.Analysis, error) {
	gen := a.gen.Add(1)
	a.logger.Printf("Usecase: starting analysis #%d for %s...", gen, login)

	var profile domain.Profile
	var repos []domain.Repository

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		profile, err = a.fetcher.FetchProfile(egCtx, login)
		return err
	})
	eg.Go(func() error {
		var err error
		repos, err = a.fetcher.FetchRepositories(egCtx, login)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("analysis of %s aborted: %w", login, err)
	}

	owned := domain.OwnRepositories(repos)
	a.logger.Printf("Usecase: %d repositories fetched, %d owned.", len(repos), len(owned))

	histogram, skipped := a.aggregateLanguages(ctx, login, owned)
	pushes := a.estimateActivity(ctx, login, now)
	metrics := domain.ComputeMetrics(owned, histogram, now)
	report := review.Narrate(profile, owned, metrics, pushes)

	analysis := &domain.Analysis{
		Login:            login,
		Profile:          profile,
		Repositories:     owned,
		Languages:        histogram,
		SkippedLanguages: skipped,
		Pushes30d:        pushes,
		Metrics:          metrics,
		Review:           report,
	}
	if a.commit(gen, analysis) {
		a.logger.Printf("Usecase: analysis #%d committed.", gen)
	} else {
		a.logger.Printf("Usecase: analysis #%d is stale, result discarded.", gen)
	}
	return analysis, nil
}

// Latest returns the most recently committed analysis, or nil when no run
// has completed yet.
func (a *Analyzer) Latest() *domain.Analysis {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}

// commit stores the result unless a newer analysis has started since this
// one began. A slow stale run can therefore never overwrite a newer one.
func (a *Analyzer) commit(gen uint64, analysis *domain.Analysis) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen.Load() {
		return false
	}
	a.latest = analysis
	return true
}

// languageResult is the outcome of one per-repo language fetch: either a
// byte-count map or a recorded skip.
type languageResult struct {
	languages map[string]int
	err       error
}

// aggregateLanguages merges per-repo language maps for the largest owned
// repositories into one histogram. Fetches run concurrently within groups
// of languageFetchGroup repositories, one group at a time. A failed fetch
// is counted as a skip and contributes nothing; it never aborts the run.
func (a *Analyzer) aggregateLanguages(ctx context.Context, login string, owned []domain.Repository) (domain.LanguageHistogram, int) {
	sample := domain.LanguageSample(owned)
	a.logger.Printf("[3/4] Fetching languages for %d repositories...", len(sample))

	histogram := domain.LanguageHistogram{}
	skipped := 0
	for start := 0; start < len(sample); start += languageFetchGroup {
		group := sample[start:min(start+languageFetchGroup, len(sample))]
		results := make([]languageResult, len(group))

		var eg errgroup.Group
		for i, repo := range group {
			eg.Go(func() error {
				languages, err := a.fetcher.FetchLanguages(ctx, login, repo.Name)
				results[i] = languageResult{languages: languages, err: err}
				return nil
			})
		}
		// Goroutines never return errors; Wait only joins the group.
		_ = eg.Wait()

		for i, result := range results {
			if result.err != nil {
				skipped++
				a.logger.Printf("  Skipping languages for %s: %v", group[i].Name, result.err)
				continue
			}
			histogram.Merge(result.languages)
		}
	}
	if skipped > 0 {
		a.logger.Printf("Completed language aggregation with %d repositories skipped.", skipped)
	}
	return histogram, skipped
}

// estimateActivity counts commits in push events within the trailing
// activity window. The event feed is itself bounded, so this is a lower
// bound, and any fetch failure degrades to zero rather than aborting.
func (a *Analyzer) estimateActivity(ctx context.Context, login string, now time.Time) int {
	events, err := a.fetcher.FetchPushEvents(ctx, login)
	if err != nil {
		a.logger.Printf("Push activity unavailable for %s: %v", login, err)
		return 0
	}
	cutoff := now.Add(-activityWindow)
	total := 0
	for _, event := range events {
		if event.CreatedAt.After(cutoff) {
			total += event.Commits
		}
	}
	return total
}
