package driven

import (
	"context"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// TrackerClient defines the driven port for the downstream issue tracker.
// Writes are append-only: issues and comments are created, never edited or
// deleted.
type TrackerClient interface {
	// SearchIssues finds issues (any state) whose title contains titleQuery.
	// Bodies in search results may be truncated by the platform; callers must
	// re-fetch via GetIssue before trusting body contents.
	SearchIssues(ctx context.Context, repoFullName, titleQuery string) ([]model.TrackingIssue, error)
	// GetIssue fetches a single issue with its full, untruncated body.
	GetIssue(ctx context.Context, repoFullName string, number int) (*model.TrackingIssue, error)
	// CreateIssue creates an issue and returns its server-assigned number.
	CreateIssue(ctx context.Context, repoFullName, title, body string) (int, error)
	// CreateIssueComment appends a comment to an existing issue.
	CreateIssueComment(ctx context.Context, repoFullName string, issueNumber int, body string) error
}
