package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
	"github.com/ericfisherdev/reviewsync/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.JournalStore = (*JournalRepo)(nil)

// JournalRepo is the SQLite implementation of the JournalStore port interface.
type JournalRepo struct {
	db *DB
}

// NewJournalRepo creates a new JournalRepo backed by the given DB.
func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Record appends one per-PR outcome row.
func (r *JournalRepo) Record(ctx context.Context, rec model.SyncRecord) error {
	const query = `
		INSERT INTO sync_records (repo, pr_number, branch, outcome, version, content_hash, issue_number, posted, total, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		rec.Repo, rec.PRNumber, rec.Branch, string(rec.Outcome),
		rec.Version, rec.ContentHash, rec.IssueNumber, rec.Posted, rec.Total,
		rec.SyncedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert sync record for %s#%d: %w", rec.Repo, rec.PRNumber, err)
	}

	return nil
}

// ListRecent returns the most recent records, newest first. prNumber filters
// to a single pull request when > 0.
func (r *JournalRepo) ListRecent(ctx context.Context, prNumber, limit int) ([]model.SyncRecord, error) {
	query := `
		SELECT id, repo, pr_number, branch, outcome, version, content_hash, issue_number, posted, total, synced_at
		FROM sync_records
	`
	args := []any{}
	if prNumber > 0 {
		query += ` WHERE pr_number = ?`
		args = append(args, prNumber)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sync records: %w", err)
	}
	defer rows.Close()

	var records []model.SyncRecord
	for rows.Next() {
		var rec model.SyncRecord
		var outcome, syncedAt string
		if err := rows.Scan(
			&rec.ID, &rec.Repo, &rec.PRNumber, &rec.Branch, &outcome,
			&rec.Version, &rec.ContentHash, &rec.IssueNumber, &rec.Posted, &rec.Total,
			&syncedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sync record: %w", err)
		}
		rec.Outcome = model.SyncOutcome(outcome)
		if rec.SyncedAt, err = parseTime(syncedAt); err != nil {
			return nil, fmt.Errorf("parse synced_at: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync records: %w", err)
	}

	return records, nil
}

// parseTime handles the timestamp layouts SQLite may hand back depending on
// how the value was bound.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
