package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/reviewsync/internal/domain/port/driven"
)

// Poster posts tracker comments with bounded retry and linear backoff.
// Every comment gets its own fresh attempt budget; exhausting it is reported
// as an error but must not block subsequent comments.
type Poster struct {
	tracker     driven.TrackerClient
	maxAttempts int
	backoffUnit time.Duration
}

// NewPoster creates a Poster. maxAttempts values below 1 are raised to 1.
func NewPoster(tracker driven.TrackerClient, maxAttempts int, backoffUnit time.Duration) *Poster {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Poster{
		tracker:     tracker,
		maxAttempts: maxAttempts,
		backoffUnit: backoffUnit,
	}
}

// Post creates one comment on the given issue, retrying transient failures
// with a wait of attempt * backoffUnit between tries (2, 4, ... time units).
func (p *Poster) Post(ctx context.Context, repoFullName string, issueNumber int, body string) error {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		lastErr = p.tracker.CreateIssueComment(ctx, repoFullName, issueNumber, body)
		if lastErr == nil {
			return nil
		}

		slog.Warn("comment post failed",
			"repo", repoFullName,
			"issue", issueNumber,
			"attempt", attempt,
			"max_attempts", p.maxAttempts,
			"error", lastErr,
		)

		if attempt < p.maxAttempts {
			if err := sleepCtx(ctx, time.Duration(attempt)*p.backoffUnit); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("posting comment to %s#%d after %d attempts: %w", repoFullName, issueNumber, p.maxAttempts, lastErr)
}

// sleepCtx sleeps for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
