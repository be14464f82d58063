package model

import (
	"fmt"
	"regexp"
)

// TrackingIssue is an issue in the downstream repository holding one
// versioned snapshot of review feedback for a branch. Issues are append-only:
// the body (metadata block) is written once at creation and never edited.
type TrackingIssue struct {
	Number int
	Title  string
	State  string
	Body   string
}

// TrackingIssueTitle formats the title for a tracking issue. The literal
// spacing and hyphen are load-bearing: the resolver matches titles against
// this exact grammar.
func TrackingIssueTitle(version int, branch string) string {
	return fmt.Sprintf("Code Review %d - %s", version, branch)
}

// ParseTrackingIssueTitle extracts the version from a tracking issue title
// for the given branch. The branch is treated as an opaque literal (regex
// metacharacters escaped) and must match the full remainder of the title, so
// "feature-a" never matches a "feature-ab" issue. Returns ok=false for
// malformed titles or titles belonging to other branches.
func ParseTrackingIssueTitle(title, branch string) (version int, ok bool) {
	pattern := regexp.MustCompile(`^Code Review (\d+) - ` + regexp.QuoteMeta(branch) + `$`)
	m := pattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	if _, err := fmt.Sscanf(m[1], "%d", &version); err != nil || version < 1 {
		return 0, false
	}
	return version, true
}
