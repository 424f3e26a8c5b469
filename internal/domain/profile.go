// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// Profile is an immutable snapshot of a GitHub user record, fetched once
// per analysis run. Optional fields are empty strings when absent.
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Location    string    `json:"location,omitempty"`
	Company     string    `json:"company,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Followers   int       `json:"followers"`
	PublicRepos int       `json:"public_repos"`
}

// Repository is one public repository belonging to the analyzed profile.
// SizeKB is only used for language-sample selection.
type Repository struct {
	Name        string    `json:"name"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language,omitempty"`
	SizeKB      int       `json:"size_kb"`
	UpdatedAt   time.Time `json:"updated_at"`
	Fork        bool      `json:"fork"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url,omitempty"`
}

// PushEvent is one push-type event from the user's public event feed.
// Commits is the length of the event's commit list (zero when absent).
type PushEvent struct {
	CreatedAt time.Time `json:"created_at"`
	Commits   int       `json:"commits"`
}

// ReviewReport is the ordered sequence of review paragraphs. The order is
// fixed by the narrator and paragraphs are never duplicated.
type ReviewReport struct {
	Paragraphs []string `json:"paragraphs"`
}

// String joins the paragraphs with a blank-line separator.
func (r ReviewReport) String() string {
	return strings.Join(r.Paragraphs, "\n\n")
}

// Analysis is the full result of one analyze run. All fields are built
// fresh per run; nothing is carried over between runs.
type Analysis struct {
	Login            string            `json:"login"`
	Profile          Profile           `json:"profile"`
	Repositories     []Repository      `json:"repositories"`
	Languages        LanguageHistogram `json:"languages"`
	SkippedLanguages int               `json:"skipped_languages,omitempty"`
	Pushes30d        int               `json:"pushes_30d"`
	Metrics          Metrics           `json:"metrics"`
	Review           ReviewReport      `json:"review"`
}

// OwnRepositories filters out forked repositories, preserving fetch order.
// Everything downstream of the fetch operates on this collection only.
func OwnRepositories(repos []Repository) []Repository {
	owned := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			owned = append(owned, repo)
		}
	}
	return owned
}
