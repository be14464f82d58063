// Package github implements the SourceClient and TrackerClient ports using
// the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
	"github.com/ericfisherdev/reviewsync/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.SourceClient  = (*Client)(nil)
	_ driven.TrackerClient = (*Client)(nil)
)

// Client implements both GitHub-facing ports: read-only access to the
// upstream repository and append-only access to the downstream tracker.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchOpenPullRequests lists open pull requests targeting baseBranch in the
// upstream repository. It handles pagination automatically and maps go-github
// types to domain model types.
func (c *Client) FetchOpenPullRequests(ctx context.Context, repoFullName, baseBranch string) ([]model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:     "open",
		Base:      baseBranch,
		Sort:      "created",
		Direction: "asc",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var allPRs []model.PullRequest

	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing pull requests for %s (page %d): %w", repoFullName, opts.Page, err)
		}

		logRateLimit(resp, repoFullName, opts.Page, len(prs))

		for _, pr := range prs {
			allPRs = append(allPRs, mapPullRequest(pr))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// FetchReviewComments retrieves all inline (diff-anchored) review comments
// for a pull request.
func (c *Client) FetchReviewComments(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []model.ReviewComment

	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing review comments for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		for _, comment := range comments {
			allComments = append(allComments, mapReviewComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// FetchIssueComments retrieves all PR-level comments (from the Issues API)
// for a pull request.
func (c *Client) FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []model.IssueComment

	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issue comments for %s#%d (page %d): %w", repoFullName, prNumber, opts.Page, err)
		}

		for _, comment := range comments {
			allComments = append(allComments, mapIssueComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// SearchIssues finds issues of any state in the downstream repository whose
// title contains titleQuery. Search result bodies may be truncated by the
// GitHub search API; callers must re-fetch via GetIssue before trusting them.
func (c *Client) SearchIssues(ctx context.Context, repoFullName, titleQuery string) ([]model.TrackingIssue, error) {
	query := fmt.Sprintf("repo:%s is:issue in:title %q", repoFullName, titleQuery)

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allIssues []model.TrackingIssue

	for {
		result, resp, err := c.gh.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("searching issues in %s (page %d): %w", repoFullName, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/search", opts.Page, len(result.Issues))

		for _, issue := range result.Issues {
			allIssues = append(allIssues, mapIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allIssues, nil
}

// GetIssue fetches a single issue with its full, untruncated body.
func (c *Client) GetIssue(ctx context.Context, repoFullName string, number int) (*model.TrackingIssue, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	issue, resp, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s#%d: %w", repoFullName, number, err)
	}

	logRateLimit(resp, repoFullName+"/issue", 0, 1)

	mapped := mapIssue(issue)
	return &mapped, nil
}

// CreateIssue creates an issue in the downstream repository and returns its
// server-assigned number.
func (c *Client) CreateIssue(ctx context.Context, repoFullName, title, body string) (int, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, &gh.IssueRequest{
		Title: gh.Ptr(title),
		Body:  gh.Ptr(body),
	})
	if err != nil {
		return 0, fmt.Errorf("creating issue %q in %s: %w", title, repoFullName, err)
	}

	return issue.GetNumber(), nil
}

// CreateIssueComment appends a comment to an existing issue.
func (c *Client) CreateIssueComment(ctx context.Context, repoFullName string, issueNumber int, body string) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	_, _, err = c.gh.Issues.CreateComment(ctx, owner, repo, issueNumber, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return fmt.Errorf("creating comment on %s#%d: %w", repoFullName, issueNumber, err)
	}

	return nil
}

// mapPullRequest converts a go-github PullRequest to a domain model
// PullRequest. It uses GetXxx() helper methods exclusively to avoid nil
// pointer panics.
func mapPullRequest(pr *gh.PullRequest) model.PullRequest {
	return model.PullRequest{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Author:     pr.GetUser().GetLogin(),
		Branch:     pr.GetHead().GetRef(),
		BaseBranch: pr.GetBase().GetRef(),
		URL:        pr.GetHTMLURL(),
	}
}

// mapReviewComment converts a go-github PullRequestComment to a domain model
// ReviewComment. GitHub's Line is the end of the range; StartLine is zero for
// single-line comments.
func mapReviewComment(c *gh.PullRequestComment) model.ReviewComment {
	return model.ReviewComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		Path:      c.GetPath(),
		StartLine: c.GetStartLine(),
		EndLine:   c.GetLine(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// mapIssueComment converts a go-github IssueComment to a domain model IssueComment.
func mapIssueComment(c *gh.IssueComment) model.IssueComment {
	return model.IssueComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// mapIssue converts a go-github Issue to a domain model TrackingIssue.
func mapIssue(issue *gh.Issue) model.TrackingIssue {
	return model.TrackingIssue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		Body:   issue.GetBody(),
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
