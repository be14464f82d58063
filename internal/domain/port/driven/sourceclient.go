package driven

import (
	"context"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// SourceClient defines the driven port for reading the upstream repository.
// All methods are read-only; the upstream side is never mutated.
type SourceClient interface {
	// FetchOpenPullRequests lists open pull requests targeting baseBranch.
	FetchOpenPullRequests(ctx context.Context, repoFullName, baseBranch string) ([]model.PullRequest, error)
	// FetchReviewComments lists all inline (diff-anchored) review comments on a PR.
	FetchReviewComments(ctx context.Context, repoFullName string, prNumber int) ([]model.ReviewComment, error)
	// FetchIssueComments lists all PR-level comments (Issues API stream) on a PR.
	FetchIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)
}
