package retrieval

import (
	"strings"

	"github.com/occulog/occulog/internal/models"
)

// Evaluate returns every record satisfying ALL constraints in the filter
// set, preserving corpus order. The orchestrator never calls this with an
// empty set; an empty set means "use semantic search", not "match all".
func Evaluate(records []models.Record, filters *models.FilterSet) []models.Record {
	if filters == nil || filters.Empty() {
		return nil
	}

	var out []models.Record
	for _, r := range records {
		if matches(r, filters) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Record, filters *models.FilterSet) bool {
	for _, key := range filters.Keys() {
		want, _ := filters.Get(key)
		switch key {
		case models.FilterLocationCode:
			if strings.ToUpper(r.Location()) != want {
				return false
			}
		case models.FilterTimeSlot:
			if normalizeSlot(r.TimeSlot) != normalizeSlot(want) {
				return false
			}
		default:
			if !strings.EqualFold(r.Attr(key), want) {
				return false
			}
		}
	}
	return true
}

// normalizeSlot strips whitespace and folds the en-dash some exports use
// into a plain hyphen.
func normalizeSlot(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "–", "-")
}
