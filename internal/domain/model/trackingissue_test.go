package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingIssueTitle(t *testing.T) {
	assert.Equal(t, "Code Review 1 - feature-a", TrackingIssueTitle(1, "feature-a"))
	assert.Equal(t, "Code Review 12 - fix/nested/branch", TrackingIssueTitle(12, "fix/nested/branch"))
}

func TestParseTrackingIssueTitle(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		branch      string
		wantVersion int
		wantOK      bool
	}{
		{"simple match", "Code Review 3 - feature-a", "feature-a", 3, true},
		{"multi digit version", "Code Review 42 - feature-a", "feature-a", 42, true},
		{"branch is a prefix of another", "Code Review 1 - feature-ab", "feature-a", 0, false},
		{"other branch", "Code Review 1 - feature-b", "feature-a", 0, false},
		{"missing version", "Code Review - feature-a", "feature-a", 0, false},
		{"version zero rejected", "Code Review 0 - feature-a", "feature-a", 0, false},
		{"trailing text", "Code Review 1 - feature-a (old)", "feature-a", 0, false},
		{"leading text", "RE: Code Review 1 - feature-a", "feature-a", 0, false},
		{"wrong separator", "Code Review 1 – feature-a", "feature-a", 0, false},
		{"unrelated title", "Deploy checklist", "feature-a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, ok := ParseTrackingIssueTitle(tt.title, tt.branch)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}

func TestParseTrackingIssueTitle_EscapesRegexMetacharacters(t *testing.T) {
	branch := "release/v1.2+hotfix(3)"

	version, ok := ParseTrackingIssueTitle(TrackingIssueTitle(5, branch), branch)
	assert.True(t, ok)
	assert.Equal(t, 5, version)

	// The dot must not act as a wildcard.
	_, ok = ParseTrackingIssueTitle("Code Review 5 - release/v1X2+hotfix(3)", branch)
	assert.False(t, ok)
}
