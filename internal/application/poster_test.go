package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// flakyTracker fails CreateIssueComment a configurable number of times before
// succeeding, recording every call.
type flakyTracker struct {
	failures int
	calls    int
	bodies   []string
}

func (m *flakyTracker) SearchIssues(_ context.Context, _, _ string) ([]model.TrackingIssue, error) {
	return nil, nil
}

func (m *flakyTracker) GetIssue(_ context.Context, _ string, _ int) (*model.TrackingIssue, error) {
	return nil, errors.New("not implemented")
}

func (m *flakyTracker) CreateIssue(_ context.Context, _, _, _ string) (int, error) {
	return 0, errors.New("not implemented")
}

func (m *flakyTracker) CreateIssueComment(_ context.Context, _ string, _ int, body string) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("secondary rate limit")
	}
	m.bodies = append(m.bodies, body)
	return nil
}

func TestPoster_SucceedsFirstAttempt(t *testing.T) {
	tracker := &flakyTracker{}
	poster := NewPoster(tracker, 3, time.Millisecond)

	err := poster.Post(context.Background(), "org/tracker", 1, "hello")

	require.NoError(t, err)
	assert.Equal(t, 1, tracker.calls)
}

func TestPoster_RetriesThenSucceeds(t *testing.T) {
	tracker := &flakyTracker{failures: 2}
	poster := NewPoster(tracker, 3, time.Millisecond)

	err := poster.Post(context.Background(), "org/tracker", 1, "hello")

	require.NoError(t, err)
	assert.Equal(t, 3, tracker.calls)
	assert.Equal(t, []string{"hello"}, tracker.bodies)
}

func TestPoster_ExhaustsAttempts(t *testing.T) {
	tracker := &flakyTracker{failures: 10}
	poster := NewPoster(tracker, 3, time.Millisecond)

	err := poster.Post(context.Background(), "org/tracker", 1, "hello")

	require.Error(t, err)
	assert.Equal(t, 3, tracker.calls)
	assert.ErrorContains(t, err, "after 3 attempts")
}

func TestPoster_FreshBudgetPerComment(t *testing.T) {
	tracker := &flakyTracker{failures: 5}
	poster := NewPoster(tracker, 3, time.Millisecond)

	require.Error(t, poster.Post(context.Background(), "org/tracker", 1, "first"))
	// 5 failures total, 3 burned: the next comment gets three new attempts
	// and succeeds on its third.
	require.NoError(t, poster.Post(context.Background(), "org/tracker", 1, "second"))
	assert.Equal(t, 6, tracker.calls)
}

func TestPoster_ContextCancelStopsBackoff(t *testing.T) {
	tracker := &flakyTracker{failures: 10}
	poster := NewPoster(tracker, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poster.Post(ctx, "org/tracker", 1, "hello") }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("poster did not honor context cancellation")
	}
}
