package application

import (
	"strings"
	"time"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// CommentBatch is the output of one selector pass: the inline comments to
// consider plus at most one reduced additional (summary) comment.
type CommentBatch struct {
	Inline        []model.ReviewComment
	Additional    string
	HasAdditional bool
}

// Total returns the number of items the batch would post: inline comments
// plus the 0-or-1 additional comment.
func (b CommentBatch) Total() int {
	n := len(b.Inline)
	if b.HasAdditional {
		n++
	}
	return n
}

// SelectBatch splits the bot's comment streams into one batch. With a zero
// since it selects everything (the "all" pass, and the first-ever sync);
// otherwise only comments created strictly after since (the "new" pass).
//
// Additional-comment reduction, identical in both passes: among candidates,
// keep those containing summaryMarker, strip lines containing footerMarker,
// and let the last non-empty survivor (in listing order) win. At most one
// additional comment is ever retained.
func SelectBatch(inline []model.ReviewComment, comments []model.IssueComment, since time.Time, summaryMarker, footerMarker string) CommentBatch {
	var batch CommentBatch

	for _, c := range inline {
		if !since.IsZero() && !c.CreatedAt.After(since) {
			continue
		}
		batch.Inline = append(batch.Inline, c)
	}

	for _, c := range comments {
		if !since.IsZero() && !c.CreatedAt.After(since) {
			continue
		}
		if !strings.Contains(c.Body, summaryMarker) {
			continue
		}
		body := stripFooter(c.Body, footerMarker)
		if body == "" {
			continue
		}
		batch.Additional = body
		batch.HasAdditional = true
	}

	return batch
}

// stripFooter removes every line containing marker and trims surrounding
// whitespace. An empty marker strips nothing.
func stripFooter(body, marker string) string {
	if marker == "" {
		return strings.TrimSpace(body)
	}
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, marker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
