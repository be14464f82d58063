package model

import "time"

// SyncState is the last-synced state for a branch, reconstructed on every
// pass from the highest-version tracking issue. It has no existence between
// runs except as embedded in issue bodies.
type SyncState struct {
	Version      int // 0 when no prior tracking issue exists.
	IssueNumber  int
	IssueState   string
	LastHash     string
	LastSyncedAt time.Time // Zero when no prior sync (or metadata missing).
}

// HasPriorSync reports whether any tracking issue exists for the branch.
func (s SyncState) HasPriorSync() bool {
	return s.Version > 0
}
