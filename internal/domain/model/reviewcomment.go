package model

import "time"

// ReviewComment is an inline (diff-anchored) review comment on a pull request.
// EndLine is always set; StartLine is zero for single-line comments.
type ReviewComment struct {
	ID        int64
	Author    string
	Body      string
	Path      string
	StartLine int
	EndLine   int
	CreatedAt time.Time
}

// IsMultiLine reports whether the comment spans a line range rather than a
// single line.
func (c ReviewComment) IsMultiLine() bool {
	return c.StartLine > 0 && c.StartLine != c.EndLine
}
