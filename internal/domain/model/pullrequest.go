package model

// PullRequest represents an upstream pull request qualifying for a sync pass.
type PullRequest struct {
	Number     int
	Title      string
	Author     string
	Branch     string
	BaseBranch string
	URL        string
}
