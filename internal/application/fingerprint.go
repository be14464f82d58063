package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/ericfisherdev/reviewsync/internal/domain/model"
)

// Fingerprint computes the content hash used to detect "nothing new to sync".
// It takes the complete inline comment set (not just new comments) plus the
// active additional-comment body, canonicalizes, and digests with SHA-256.
//
// The inline set is sorted before serialization so that identical comment
// sets hash identically regardless of the upstream listing order, which is
// not deterministic. The sort key includes start line and body as tie
// breakers so two comments on the same path and end line still serialize in
// a stable order.
func Fingerprint(inline []model.ReviewComment, additional string) string {
	sorted := slices.Clone(inline)
	slices.SortFunc(sorted, func(a, b model.ReviewComment) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if a.EndLine != b.EndLine {
			return a.EndLine - b.EndLine
		}
		if a.StartLine != b.StartLine {
			return a.StartLine - b.StartLine
		}
		return strings.Compare(a.Body, b.Body)
	})

	var b strings.Builder
	for _, c := range sorted {
		fmt.Fprintf(&b, "%s\x00%d\x00%d\x00%s\x1e", c.Path, c.StartLine, c.EndLine, c.Body)
	}
	b.WriteString(additional)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
