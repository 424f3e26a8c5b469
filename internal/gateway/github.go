// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"ghreview/internal/domain"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Sentinel errors used to classify fatal fetch failures. They are wrapped
// into the error chain so callers can test with errors.Is while the
// upstream message stays intact for display.
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
)

// Fetcher defines the behavior of a gateway for fetching profile data from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, login string) (domain.Profile, error)
	FetchRepositories(ctx context.Context, login string) ([]domain.Repository, error)
	FetchLanguages(ctx context.Context, login, repo string) (map[string]int, error)
	FetchPushEvents(ctx context.Context, login string) ([]domain.PushEvent, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is an explicit parameter, never process-wide state; an empty
// token yields an unauthenticated client with GitHub's lower rate limit.
func NewGitHubGateway(token string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// FetchProfile retrieves the user record for the given login.
func (g *GitHubGateway) FetchProfile(ctx context.Context, login string) (domain.Profile, error) {
	g.logger.Printf("[1/4] Fetching profile for %s...", login)
	user, _, err := g.client.Users.Get(ctx, login)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to fetch user %s: %w", login, classify(err))
	}
	return domain.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		Company:     user.GetCompany(),
		CreatedAt:   user.GetCreatedAt().Time,
		Followers:   user.GetFollowers(),
		PublicRepos: user.GetPublicRepos(),
	}, nil
}

// FetchRepositories retrieves up to 100 repositories for the given login,
// most recently updated first. Forks are not filtered here; the caller
// decides what counts as owned.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, login string) ([]domain.Repository, error) {
	g.logger.Printf("[2/4] Fetching repositories for %s...", login)
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos, _, err := g.client.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", login, classify(err))
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, domain.Repository{
			Name:        repo.GetName(),
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
			Language:    repo.GetLanguage(),
			SizeKB:      repo.GetSize(),
			UpdatedAt:   repo.GetUpdatedAt().Time,
			Fork:        repo.GetFork(),
			Description: repo.GetDescription(),
			HTMLURL:     repo.GetHTMLURL(),
		})
	}
	return result, nil
}

// FetchLanguages retrieves the language byte-count map for one repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, login, repo string) (map[string]int, error) {
	languages, _, err := g.client.Repositories.ListLanguages(ctx, login, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s/%s: %w", login, repo, classify(err))
	}
	return languages, nil
}

// FetchPushEvents retrieves up to 100 recent public events for the login
// and reduces them to push events with their commit counts. Events whose
// payload fails to parse contribute zero commits rather than an error.
func (g *GitHubGateway) FetchPushEvents(ctx context.Context, login string) ([]domain.PushEvent, error) {
	g.logger.Printf("[4/4] Fetching recent events for %s...", login)
	opts := &github.ListOptions{PerPage: 100}
	events, _, err := g.client.Activity.ListEventsPerformedByUser(ctx, login, true, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for %s: %w", login, classify(err))
	}
	pushes := make([]domain.PushEvent, 0, len(events))
	for _, event := range events {
		if event.GetType() != "PushEvent" {
			continue
		}
		push := domain.PushEvent{CreatedAt: event.GetCreatedAt().Time}
		if payload, err := event.ParsePayload(); err == nil {
			if p, ok := payload.(*github.PushEvent); ok {
				push.Commits = len(p.Commits)
			}
		}
		pushes = append(pushes, push)
	}
	return pushes, nil
}

// classify maps client errors onto the gateway's sentinel errors while
// keeping the upstream API message in the chain.
func classify(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		if respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return err
}

// UserMessage extracts the most specific human-readable message from a
// fetch error: the upstream API message when present, then the sentinel
// classification, then the transport error text, then "Unknown error".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unknown error"
}
