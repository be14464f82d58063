package model

import "time"

// SyncRecord is one journal row describing the outcome of a single pull
// request's sync pass. The journal is observability only; the downstream
// tracker remains the sole source of sync state.
type SyncRecord struct {
	ID          int64
	Repo        string
	PRNumber    int
	Branch      string
	Outcome     SyncOutcome
	Version     int
	ContentHash string
	IssueNumber int
	Posted      int
	Total       int
	SyncedAt    time.Time
}
