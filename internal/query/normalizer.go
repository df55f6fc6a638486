package query

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateResolver resolves a free-text date phrase. ok is false when the text
// does not parse as a date; that is never an error.
type DateResolver func(text string) (time.Time, bool)

// ResolveDate is the default resolver. It follows the whole-string contract
// of the upstream data: either the entire text reads as a date, or nothing
// is resolved.
func ResolveDate(text string) (time.Time, bool) {
	t, err := dateparse.ParseAny(strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize canonicalizes a query: when the text resolves as a date phrase
// it becomes YYYY-MM-DD, otherwise it is returned lower-cased and trimmed.
// Normalize never fails.
func Normalize(text string, resolve DateResolver) string {
	if resolve != nil {
		if t, ok := resolve(text); ok {
			return t.Format("2006-01-02")
		}
	}
	return strings.ToLower(strings.TrimSpace(text))
}
