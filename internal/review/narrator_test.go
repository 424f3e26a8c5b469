package review

import (
	"strings"
	"testing"
	"time"

	"ghreview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestActivityLabel_Boundaries(t *testing.T) {
	testCases := []struct {
		pushes   int
		expected string
	}{
		{0, "relatively quiet"},
		{4, "relatively quiet"},
		{5, "moderately active"},
		{19, "moderately active"},
		{20, "highly active"},
		{100, "highly active"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ActivityLabel(tc.pushes), "pushes=%d", tc.pushes)
	}
}

// narrate is a test helper that derives metrics the same way the analyzer
// does before handing them to the narrator.
func narrate(profile domain.Profile, repos []domain.Repository, hist domain.LanguageHistogram, pushes int) domain.ReviewReport {
	metrics := domain.ComputeMetrics(repos, hist, testNow)
	return Narrate(profile, repos, metrics, pushes)
}

func TestNarrate_EndToEndScenario(t *testing.T) {
	// Two documented, recently updated repos, bio and location present,
	// no pushes: summary, recency, bio and location paragraphs plus the
	// closing one. No documentation paragraph (descriptions present) and
	// no visibility paragraph (repo-count gate fails).
	profile := domain.Profile{
		Login:    "octocat",
		Bio:      "I build things.",
		Location: "Berlin",
	}
	repos := []domain.Repository{
		{Name: "web", Stars: 10, Forks: 2, SizeKB: 500, UpdatedAt: testNow.Add(-5 * 24 * time.Hour), Description: "frontend"},
		{Name: "api", Stars: 5, Forks: 1, SizeKB: 200, UpdatedAt: testNow.Add(-10 * 24 * time.Hour), Description: "backend"},
	}
	hist := domain.LanguageHistogram{"JavaScript": 400000, "CSS": 100000, "Python": 200000}

	metrics := domain.ComputeMetrics(repos, hist, testNow)
	require.Equal(t, 15, metrics.TotalStars)
	require.Equal(t, 3, metrics.TotalForks)
	require.Equal(t, 0, metrics.StaleCount)
	require.Equal(t, []string{"JavaScript", "Python", "CSS"}, shareNames(metrics.TopLanguages))

	report := Narrate(profile, repos, metrics, 0)

	require.Len(t, report.Paragraphs, 5)
	assert.Contains(t, report.Paragraphs[0], "2 public repositories")
	assert.Contains(t, report.Paragraphs[0], "15 stars")
	assert.Contains(t, report.Paragraphs[0], "3 forks")
	assert.Contains(t, report.Paragraphs[0], "JavaScript, Python, CSS")
	assert.Contains(t, report.Paragraphs[0], "relatively quiet")
	assert.Contains(t, report.Paragraphs[1], "most recent repository update")
	assert.Contains(t, report.Paragraphs[2], "bio is a good start")
	assert.Contains(t, report.Paragraphs[3], `"Berlin"`)
	assert.Contains(t, report.Paragraphs[4], "Next steps")
}

func TestNarrate_VisibilityGate(t *testing.T) {
	testCases := []struct {
		name      string
		stars     int
		repoCount int
		expected  bool
	}{
		{"low stars, enough repos", 19, 5, true},
		{"stars at ceiling", 20, 5, false},
		{"too few repos", 5, 4, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repos := make([]domain.Repository, tc.repoCount)
			for i := range repos {
				repos[i] = domain.Repository{Name: "r", UpdatedAt: testNow, Description: "d"}
			}
			repos[0].Stars = tc.stars

			report := narrate(domain.Profile{}, repos, nil, 0)

			assert.Equal(t, tc.expected, containsParagraph(report, "not very visible"))
		})
	}
}

func TestNarrate_BioBranchIsMutuallyExclusive(t *testing.T) {
	withBio := narrate(domain.Profile{Bio: "hello"}, nil, nil, 0)
	assert.True(t, containsParagraph(withBio, "bio is a good start"))
	assert.False(t, containsParagraph(withBio, "no bio yet"))

	withoutBio := narrate(domain.Profile{}, nil, nil, 0)
	assert.False(t, containsParagraph(withoutBio, "bio is a good start"))
	assert.True(t, containsParagraph(withoutBio, "no bio yet"))
}

func TestNarrate_EmptyRepositoryCollection(t *testing.T) {
	report := narrate(domain.Profile{}, nil, nil, 0)

	// Summary, no-bio and closing paragraphs only; the language list
	// falls back to the diverse-stack wording.
	require.Len(t, report.Paragraphs, 3)
	assert.Contains(t, report.Paragraphs[0], "a diverse stack")
	assert.Contains(t, report.Paragraphs[0], "0 public repositories")
	assert.NotContains(t, report.String(), "most recent repository update")
}

func TestNarrate_DocumentationParagraph(t *testing.T) {
	repos := []domain.Repository{
		{Name: "undocumented", Stars: 100, UpdatedAt: testNow},
	}

	report := narrate(domain.Profile{}, repos, nil, 0)

	assert.True(t, containsParagraph(report, "have no description"))
}

func TestNarrate_OrderIsFixed(t *testing.T) {
	// A profile that triggers every conditional paragraph.
	profile := domain.Profile{Bio: "b", Location: "Lisbon"}
	repos := make([]domain.Repository, 6)
	for i := range repos {
		repos[i] = domain.Repository{Name: "r", UpdatedAt: testNow.Add(-200 * 24 * time.Hour)}
	}

	report := narrate(profile, repos, domain.LanguageHistogram{"Go": 10}, 25)

	require.Len(t, report.Paragraphs, 7)
	markers := []string{
		"public repositories",
		"most recent repository update",
		"have no description",
		"not very visible",
		"bio is a good start",
		"Lisbon",
		"Next steps",
	}
	for i, marker := range markers {
		assert.Contains(t, report.Paragraphs[i], marker, "paragraph %d", i)
	}
	assert.Contains(t, report.Paragraphs[0], "highly active")
}

func TestNarrate_IsDeterministic(t *testing.T) {
	profile := domain.Profile{Login: "o", Bio: "b", Location: "l"}
	repos := []domain.Repository{
		{Name: "a", Stars: 3, UpdatedAt: testNow.Add(-24 * time.Hour), Description: "d"},
	}
	hist := domain.LanguageHistogram{"Go": 100, "Shell": 100}

	first := narrate(profile, repos, hist, 7).String()
	for range 10 {
		assert.Equal(t, first, narrate(profile, repos, hist, 7).String())
	}
	assert.Equal(t, strings.Count(first, "\n\n"), len(narrate(profile, repos, hist, 7).Paragraphs)-1)
}

func containsParagraph(report domain.ReviewReport, marker string) bool {
	for _, p := range report.Paragraphs {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

func shareNames(shares []domain.LanguageShare) []string {
	names := make([]string, 0, len(shares))
	for _, s := range shares {
		names = append(names, s.Name)
	}
	return names
}
