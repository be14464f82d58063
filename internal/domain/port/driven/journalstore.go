package driven

import (
	"context"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// JournalStore defines the driven port for the local sync journal.
type JournalStore interface {
	// Record appends one per-PR outcome row.
	Record(ctx context.Context, rec model.SyncRecord) error
	// ListRecent returns the most recent records, newest first. prNumber
	// filters to a single pull request when > 0.
	ListRecent(ctx context.Context, prNumber, limit int) ([]model.SyncRecord, error)
}
