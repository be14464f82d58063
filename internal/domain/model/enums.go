package model

// SyncOutcome is the terminal state of one pull request's sync pass.
type SyncOutcome string

const (
	// OutcomeSynced means a new tracking issue was created and comments posted.
	OutcomeSynced SyncOutcome = "synced"
	// OutcomeSkippedUnchanged means the content hash matched the prior sync.
	OutcomeSkippedUnchanged SyncOutcome = "skipped_unchanged"
	// OutcomeSkippedEmpty means the hash differed but nothing new exists to show.
	OutcomeSkippedEmpty SyncOutcome = "skipped_empty"
	// OutcomeDryRun means a sync was warranted but suppressed by dry-run mode.
	OutcomeDryRun SyncOutcome = "dry_run"
	// OutcomeFailed means an API failure aborted this pull request's pass.
	OutcomeFailed SyncOutcome = "failed"
)

// IssueState mirrors the tracker's open/closed issue states.
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)
