package domain

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

const (
	// languageSampleSize bounds how many repositories contribute to the
	// language histogram.
	languageSampleSize = 30
	// staleAfter is how long a repository can go without an update before
	// it counts as stale.
	staleAfter = 180 * 24 * time.Hour
	// descriptionSampleSize bounds the missing-description check to the
	// most recently updated repositories. This is a deliberate
	// approximation to avoid extra API calls, not a full scan.
	descriptionSampleSize = 10
	// topByStarsLimit is the size of the bar-chart view.
	topByStarsLimit = 8
	// tableLimit is the size of the tabular view.
	tableLimit = 20
)

// BarData is a bar-chart-ready view of the top repositories by stars.
type BarData struct {
	Names []string `json:"names"`
	Stars []int    `json:"stars"`
}

// Metrics holds everything derived from one repository collection and one
// language histogram. The reference time is injected by the caller and
// used consistently for every time-based figure.
type Metrics struct {
	TotalStars          int             `json:"total_stars"`
	TotalForks          int             `json:"total_forks"`
	TopLanguages        []LanguageShare `json:"top_languages"`
	TopByStars          []Repository    `json:"top_by_stars"`
	Table               []Repository    `json:"table"`
	StaleCount          int             `json:"stale_count"`
	LatestUpdate        time.Time       `json:"latest_update,omitzero"`
	MissingDescriptions int             `json:"missing_descriptions"`
	StarMean            float64         `json:"star_mean"`
	StarMedian          float64         `json:"star_median"`
}

// ComputeMetrics derives all metrics from an owned (fork-free) repository
// collection and the merged language histogram. repos must be in fetch
// order (most recently updated first); the tabular view preserves that
// order while the top-by-stars view re-sorts an independent copy.
func ComputeMetrics(repos []Repository, languages LanguageHistogram, now time.Time) Metrics {
	m := Metrics{
		TopLanguages: languages.Shares(),
	}

	starValues := make([]float64, 0, len(repos))
	for _, repo := range repos {
		m.TotalStars += repo.Stars
		m.TotalForks += repo.Forks
		starValues = append(starValues, float64(repo.Stars))
		if now.Sub(repo.UpdatedAt) > staleAfter {
			m.StaleCount++
		}
		if repo.UpdatedAt.After(m.LatestUpdate) {
			m.LatestUpdate = repo.UpdatedAt
		}
	}

	byStars := make([]Repository, len(repos))
	copy(byStars, repos)
	sort.SliceStable(byStars, func(i, j int) bool {
		return byStars[i].Stars > byStars[j].Stars
	})
	m.TopByStars = byStars[:min(topByStarsLimit, len(byStars))]
	m.Table = repos[:min(tableLimit, len(repos))]

	for _, repo := range repos[:min(descriptionSampleSize, len(repos))] {
		if repo.Description == "" {
			m.MissingDescriptions++
		}
	}

	// stats returns an error only for empty input; zero is the right
	// value for an empty collection.
	if mean, err := stats.Mean(starValues); err == nil {
		m.StarMean = mean
	}
	if median, err := stats.Median(starValues); err == nil {
		m.StarMedian = median
	}

	return m
}

// StarsBar converts the top-by-stars view to chart data.
func (m Metrics) StarsBar() BarData {
	data := BarData{
		Names: make([]string, 0, len(m.TopByStars)),
		Stars: make([]int, 0, len(m.TopByStars)),
	}
	for _, repo := range m.TopByStars {
		data.Names = append(data.Names, repo.Name)
		data.Stars = append(data.Stars, repo.Stars)
	}
	return data
}
