package model

import "time"

// IssueComment is a PR-level narrative comment (from the GitHub Issues API,
// not the review comments API).
type IssueComment struct {
	ID        int64
	Author    string
	Body      string
	CreatedAt time.Time
}
