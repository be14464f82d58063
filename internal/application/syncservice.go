// Package application contains the sync use-case services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
	"github.com/ericfisherdev/reviewsync/internal/domain/port/driven"
)

// SyncOptions carries the fixed parameters of a sync pass.
type SyncOptions struct {
	SourceRepo    string // Upstream "owner/repo" whose PRs are read.
	TargetRepo    string // Downstream "owner/repo" receiving tracking issues.
	BaseBranch    string // Only PRs targeting this branch qualify.
	PRAuthor      string // Only PRs by this author qualify.
	BotLogin      string // Only comments by this login are mirrored.
	SummaryMarker string // Substring identifying a bot summary comment.
	FooterMarker  string // Substring identifying footer lines to strip.
	PostPace      time.Duration
	DryRun        bool
}

// PRResult is the terminal state of one pull request's pass.
type PRResult struct {
	PR          model.PullRequest
	Outcome     model.SyncOutcome
	Version     int
	IssueNumber int
	ContentHash string
	Posted      int
	Total       int
	Err         error
}

// Summary aggregates the results of one full sync pass.
type Summary struct {
	Results []PRResult
}

// Count returns how many results ended in the given outcome.
func (s Summary) Count(outcome model.SyncOutcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// SyncService mirrors bot review comments from the upstream repository into
// versioned tracking issues in the downstream repository.
type SyncService struct {
	source  driven.SourceClient
	tracker driven.TrackerClient
	journal driven.JournalStore // Optional; nil disables the journal.
	poster  *Poster
	opts    SyncOptions
	now     func() time.Time
}

// NewSyncService creates a SyncService with all required dependencies.
// journal may be nil when the local journal is disabled.
func NewSyncService(
	source driven.SourceClient,
	tracker driven.TrackerClient,
	journal driven.JournalStore,
	poster *Poster,
	opts SyncOptions,
) *SyncService {
	return &SyncService{
		source:  source,
		tracker: tracker,
		journal: journal,
		poster:  poster,
		opts:    opts,
		now:     time.Now,
	}
}

// Run performs one sync pass over every qualifying pull request. Each PR is
// its own failure domain: an error aborts that PR only and the loop
// continues. Run returns an error only when the initial PR listing fails.
func (s *SyncService) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	prs, err := s.source.FetchOpenPullRequests(ctx, s.opts.SourceRepo, s.opts.BaseBranch)
	if err != nil {
		return Summary{}, fmt.Errorf("listing open pull requests for %s: %w", s.opts.SourceRepo, err)
	}

	var summary Summary
	for _, pr := range prs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if !strings.EqualFold(pr.Author, s.opts.PRAuthor) {
			continue
		}

		res := s.syncPullRequest(ctx, pr)
		if res.Err != nil {
			slog.Error("pull request sync failed",
				"repo", s.opts.SourceRepo,
				"pr", pr.Number,
				"branch", pr.Branch,
				"error", res.Err,
			)
		}
		s.record(ctx, res)
		summary.Results = append(summary.Results, res)
	}

	slog.Info("sync pass complete",
		"fetched", len(prs),
		"processed", len(summary.Results),
		"synced", summary.Count(model.OutcomeSynced),
		"skipped_unchanged", summary.Count(model.OutcomeSkippedUnchanged),
		"skipped_empty", summary.Count(model.OutcomeSkippedEmpty),
		"failed", summary.Count(model.OutcomeFailed),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return summary, nil
}

// syncPullRequest runs the full state machine for one pull request:
// resolve -> hash -> skip or create issue and post comments.
func (s *SyncService) syncPullRequest(ctx context.Context, pr model.PullRequest) PRResult {
	res := PRResult{PR: pr, Outcome: model.OutcomeFailed}

	state, err := s.resolveState(ctx, pr.Branch)
	if err != nil {
		res.Err = err
		return res
	}

	inline, err := s.source.FetchReviewComments(ctx, s.opts.SourceRepo, pr.Number)
	if err != nil {
		res.Err = fmt.Errorf("fetching review comments for #%d: %w", pr.Number, err)
		return res
	}
	issueComments, err := s.source.FetchIssueComments(ctx, s.opts.SourceRepo, pr.Number)
	if err != nil {
		res.Err = fmt.Errorf("fetching issue comments for #%d: %w", pr.Number, err)
		return res
	}

	botInline := filterInlineByAuthor(inline, s.opts.BotLogin)
	botComments := filterIssueByAuthor(issueComments, s.opts.BotLogin)

	// Two selector passes with identical reduction logic: "all" feeds the
	// hash, "new" feeds display and posting. With no prior sync timestamp
	// the new pass degenerates to the all pass.
	all := SelectBatch(botInline, botComments, time.Time{}, s.opts.SummaryMarker, s.opts.FooterMarker)
	fresh := SelectBatch(botInline, botComments, state.LastSyncedAt, s.opts.SummaryMarker, s.opts.FooterMarker)

	hash := Fingerprint(all.Inline, all.Additional)
	res.Version = state.Version
	res.ContentHash = hash

	if state.LastHash != "" && hash == state.LastHash {
		slog.Info("skipping: content unchanged since last sync",
			"pr", pr.Number,
			"branch", pr.Branch,
			"version", state.Version,
		)
		res.Outcome = model.OutcomeSkippedUnchanged
		return res
	}

	if fresh.Total() == 0 {
		slog.Info("skipping: no new comments to mirror",
			"pr", pr.Number,
			"branch", pr.Branch,
			"version", state.Version,
		)
		res.Outcome = model.OutcomeSkippedEmpty
		return res
	}

	version := state.Version + 1
	meta := model.SyncMetadata{
		PRNumber:           pr.Number,
		ContentHash:        hash,
		InlineComments:     len(fresh.Inline),
		AdditionalComments: boolToInt(fresh.HasAdditional),
		TotalComments:      fresh.Total(),
		SyncedAt:           s.now().UTC(),
		Version:            version,
	}
	title := model.TrackingIssueTitle(version, pr.Branch)
	res.Version = version
	res.Total = fresh.Total()

	if s.opts.DryRun {
		slog.Info("dry run: would create tracking issue",
			"pr", pr.Number,
			"title", title,
			"inline", len(fresh.Inline),
			"additional", boolToInt(fresh.HasAdditional),
		)
		res.Outcome = model.OutcomeDryRun
		return res
	}

	issueNumber, err := s.tracker.CreateIssue(ctx, s.opts.TargetRepo, title, meta.Marshal())
	if err != nil {
		res.Err = fmt.Errorf("creating tracking issue %q: %w", title, err)
		return res
	}
	res.IssueNumber = issueNumber
	slog.Info("tracking issue created",
		"issue", issueNumber,
		"title", title,
		"hash", hash,
	)

	// Comments are posted sequentially with a deliberate pace between posts.
	// A failed comment is a shortfall, never a reason to stop.
	posted := 0
	for i, c := range fresh.Inline {
		if i > 0 {
			if err := sleepCtx(ctx, s.opts.PostPace); err != nil {
				res.Err = err
				res.Posted = posted
				return res
			}
		}
		if err := s.poster.Post(ctx, s.opts.TargetRepo, issueNumber, FormatInlineComment(c)); err != nil {
			slog.Error("inline comment not posted", "issue", issueNumber, "path", c.Path, "error", err)
			continue
		}
		posted++
	}
	if fresh.HasAdditional {
		if len(fresh.Inline) > 0 {
			if err := sleepCtx(ctx, s.opts.PostPace); err != nil {
				res.Err = err
				res.Posted = posted
				return res
			}
		}
		if err := s.poster.Post(ctx, s.opts.TargetRepo, issueNumber, fresh.Additional); err != nil {
			slog.Error("additional comment not posted", "issue", issueNumber, "error", err)
		} else {
			posted++
		}
	}

	res.Posted = posted
	res.Outcome = model.OutcomeSynced

	slog.Info("comments posted",
		"pr", pr.Number,
		"issue", issueNumber,
		"posted", posted,
		"total", res.Total,
	)
	if posted < res.Total {
		slog.Warn("partial posting: some comments were not mirrored",
			"pr", pr.Number,
			"issue", issueNumber,
			"posted", posted,
			"total", res.Total,
		)
	}

	return res
}

// resolveState finds the highest-version tracking issue for a branch and
// extracts its sync metadata. Search result bodies may be truncated by the
// platform, so the winning issue is re-fetched by number before the metadata
// block is trusted.
func (s *SyncService) resolveState(ctx context.Context, branch string) (model.SyncState, error) {
	issues, err := s.tracker.SearchIssues(ctx, s.opts.TargetRepo, branch)
	if err != nil {
		return model.SyncState{}, fmt.Errorf("searching tracking issues for branch %q: %w", branch, err)
	}

	var state model.SyncState
	for _, issue := range issues {
		version, ok := model.ParseTrackingIssueTitle(issue.Title, branch)
		if !ok || version <= state.Version {
			continue
		}
		state.Version = version
		state.IssueNumber = issue.Number
		state.IssueState = issue.State
	}

	if !state.HasPriorSync() {
		return state, nil
	}

	full, err := s.tracker.GetIssue(ctx, s.opts.TargetRepo, state.IssueNumber)
	if err != nil {
		return model.SyncState{}, fmt.Errorf("fetching tracking issue #%d: %w", state.IssueNumber, err)
	}
	meta := model.ParseSyncMetadata(full.Body)
	state.LastHash = meta.ContentHash
	state.LastSyncedAt = meta.SyncedAt

	return state, nil
}

// record appends the result to the local journal when one is configured.
// Journal failures are logged, never fatal.
func (s *SyncService) record(ctx context.Context, res PRResult) {
	if s.journal == nil {
		return
	}
	rec := model.SyncRecord{
		Repo:        s.opts.SourceRepo,
		PRNumber:    res.PR.Number,
		Branch:      res.PR.Branch,
		Outcome:     res.Outcome,
		Version:     res.Version,
		ContentHash: res.ContentHash,
		IssueNumber: res.IssueNumber,
		Posted:      res.Posted,
		Total:       res.Total,
		SyncedAt:    s.now().UTC(),
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		slog.Error("journal write failed", "pr", res.PR.Number, "error", err)
	}
}

// FormatInlineComment renders the tracker comment body for one inline
// comment: a path/line header, a blank line, then the original body verbatim.
func FormatInlineComment(c model.ReviewComment) string {
	header := fmt.Sprintf("`%s` (line %d)", c.Path, c.EndLine)
	if c.IsMultiLine() {
		header = fmt.Sprintf("`%s` (lines %d-%d)", c.Path, c.StartLine, c.EndLine)
	}
	return header + "\n\n" + c.Body
}

func filterInlineByAuthor(comments []model.ReviewComment, login string) []model.ReviewComment {
	var out []model.ReviewComment
	for _, c := range comments {
		if strings.EqualFold(c.Author, login) {
			out = append(out, c)
		}
	}
	return out
}

func filterIssueByAuthor(comments []model.IssueComment, login string) []model.IssueComment {
	var out []model.IssueComment
	for _, c := range comments {
		if strings.EqualFold(c.Author, login) {
			out = append(out, c)
		}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
