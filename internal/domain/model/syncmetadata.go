package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Metadata block delimiters. The block is embedded as a hidden HTML comment
// so it never renders in the issue view.
const (
	metadataBegin = "<!-- REVIEW-SYNC-METADATA"
	metadataEnd   = "-->"
)

// Metadata block keys.
const (
	keyPRNumber           = "PR_NUMBER"
	keyContentHash        = "CONTENT_HASH"
	keyInlineComments     = "INLINE_COMMENTS"
	keyAdditionalComments = "ADDITIONAL_COMMENTS"
	keyTotalComments      = "TOTAL_COMMENTS"
	keySyncedAt           = "SYNCED_AT"
	keyVersion            = "VERSION"
)

// SyncMetadata is the key-value provenance block embedded in a tracking
// issue's body. Written exactly once at issue creation, never mutated.
type SyncMetadata struct {
	PRNumber           int
	ContentHash        string
	InlineComments     int
	AdditionalComments int
	TotalComments      int
	SyncedAt           time.Time
	Version            int
}

// Marshal renders the metadata block in its wire format: line-oriented
// "KEY: value" pairs bracketed by fixed start/end markers.
func (m SyncMetadata) Marshal() string {
	var b strings.Builder
	b.WriteString(metadataBegin + "\n")
	fmt.Fprintf(&b, "%s: %d\n", keyPRNumber, m.PRNumber)
	fmt.Fprintf(&b, "%s: %s\n", keyContentHash, m.ContentHash)
	fmt.Fprintf(&b, "%s: %d\n", keyInlineComments, m.InlineComments)
	fmt.Fprintf(&b, "%s: %d\n", keyAdditionalComments, m.AdditionalComments)
	fmt.Fprintf(&b, "%s: %d\n", keyTotalComments, m.TotalComments)
	fmt.Fprintf(&b, "%s: %s\n", keySyncedAt, m.SyncedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s: %d\n", keyVersion, m.Version)
	b.WriteString(metadataEnd)
	return b.String()
}

// ParseSyncMetadata extracts the metadata block from an issue body. A missing
// key is not an error: the corresponding field stays at its zero value, which
// downstream logic treats as "no prior value". Carriage returns are tolerated.
func ParseSyncMetadata(body string) SyncMetadata {
	var m SyncMetadata
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, keyPRNumber+":"):
			m.PRNumber = parseIntValue(line, keyPRNumber)
		case strings.HasPrefix(line, keyContentHash+":"):
			m.ContentHash = parseStringValue(line, keyContentHash)
		case strings.HasPrefix(line, keyInlineComments+":"):
			m.InlineComments = parseIntValue(line, keyInlineComments)
		case strings.HasPrefix(line, keyAdditionalComments+":"):
			m.AdditionalComments = parseIntValue(line, keyAdditionalComments)
		case strings.HasPrefix(line, keyTotalComments+":"):
			m.TotalComments = parseIntValue(line, keyTotalComments)
		case strings.HasPrefix(line, keySyncedAt+":"):
			if t, err := time.Parse(time.RFC3339, parseStringValue(line, keySyncedAt)); err == nil {
				m.SyncedAt = t
			}
		case strings.HasPrefix(line, keyVersion+":"):
			m.Version = parseIntValue(line, keyVersion)
		}
	}
	return m
}

func parseStringValue(line, key string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, key+":"))
}

func parseIntValue(line, key string) int {
	n, err := strconv.Atoi(parseStringValue(line, key))
	if err != nil {
		return 0
	}
	return n
}
