// Package review synthesizes a heuristic textual review of an analyzed
// profile. Narration is a pure function of its inputs: no randomness, no
// wall-clock reads, so identical inputs always produce identical text.
package review

import (
	"fmt"
	"strings"

	"ghreview/internal/domain"
)

// Activity labels and their push-count thresholds.
const (
	highlyActiveThreshold     = 20
	moderatelyActiveThreshold = 5
)

// ActivityLabel classifies a 30-day push-commit count.
func ActivityLabel(pushes30d int) string {
	switch {
	case pushes30d >= highlyActiveThreshold:
		return "highly active"
	case pushes30d >= moderatelyActiveThreshold:
		return "moderately active"
	default:
		return "relatively quiet"
	}
}

// Gates for the optional paragraphs.
const (
	visibilityStarCeiling  = 20
	visibilityMinRepoCount = 5
)

// Narrate builds the review report. Each paragraph is evaluated
// independently and appended in a fixed order when its condition holds;
// paragraphs are never reordered or repeated.
func Narrate(profile domain.Profile, owned []domain.Repository, metrics domain.Metrics, pushes30d int) domain.ReviewReport {
	var paragraphs []string

	paragraphs = append(paragraphs, summaryParagraph(len(owned), metrics, pushes30d))

	if len(owned) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"The most recent repository update was on %s. %d of the repositories have not been touched in over six months; archiving or tagging legacy projects keeps the profile focused on current work.",
			metrics.LatestUpdate.Format("January 2, 2006"), metrics.StaleCount))
	}

	if metrics.MissingDescriptions > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"%d of the most recently updated repositories have no description. A one-sentence description and a short README make a repository far easier to evaluate at a glance.",
			metrics.MissingDescriptions))
	}

	if metrics.TotalStars < visibilityStarCeiling && len(owned) >= visibilityMinRepoCount {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Across %d repositories the work has collected under %d stars, so it is not very visible yet. Demo links, screenshots and the occasional blog post help projects find an audience.",
			len(owned), visibilityStarCeiling))
	}

	if profile.Bio != "" {
		paragraphs = append(paragraphs,
			"The bio is a good start; sharpening it into a one-line value proposition makes the profile easier to place in seconds.")
	} else {
		paragraphs = append(paragraphs,
			"There is no bio yet. A single line stating what you build and which technologies you focus on is the quickest profile improvement available.")
	}

	if profile.Location != "" {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"The location is set to %q; make sure it lines up with the job markets or communities being targeted.",
			profile.Location))
	}

	paragraphs = append(paragraphs,
		"Next steps: pin the strongest repositories, keep READMEs current, and push small improvements regularly. Steady activity reads better than isolated bursts.")

	return domain.ReviewReport{Paragraphs: paragraphs}
}

// summaryParagraph is the always-emitted opener: counts, totals, top
// languages and the activity classification.
func summaryParagraph(repoCount int, metrics domain.Metrics, pushes30d int) string {
	languages := "a diverse stack"
	if len(metrics.TopLanguages) > 0 {
		names := make([]string, 0, 3)
		for _, share := range metrics.TopLanguages[:min(3, len(metrics.TopLanguages))] {
			names = append(names, share.Name)
		}
		languages = strings.Join(names, ", ")
	}
	return fmt.Sprintf(
		"This profile has %d public repositories with %d stars and %d forks in total. The codebase leans on %s across %d distinct languages. With %d pushed commits in the last 30 days the profile looks %s.",
		repoCount, metrics.TotalStars, metrics.TotalForks,
		languages, len(metrics.TopLanguages),
		pushes30d, ActivityLabel(pushes30d))
}
