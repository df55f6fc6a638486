package query

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/occulog/occulog/internal/models"
)

// Extractor pulls at most one exact-match constraint out of a normalized
// query. Extractors are independent; a query may trigger several at once.
type Extractor interface {
	Key() string
	TryExtract(text string) (value string, ok bool)
}

var (
	dateRe  = regexp.MustCompile(`\b(20\d{2}-\d{2}-\d{2})\b`)
	timeRe  = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?::\d{2})?)\b`)
	slotRe  = regexp.MustCompile(`(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})`)
	floorRe = regexp.MustCompile(`(\d+(?:st|nd|rd|th)\s+floor|ground floor)`)
)

var (
	cities   = []string{"pune", "mumbai", "bangalore", "kalwa"}
	sites    = []string{"tech park", "innovation hub", "rnd building", "admin block"}
	weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	dayTypes = []string{"weekday", "weekend"}
)

type regexExtractor struct {
	key       string
	re        *regexp.Regexp
	transform func(string) string
}

func (e regexExtractor) Key() string { return e.key }

func (e regexExtractor) TryExtract(text string) (string, bool) {
	m := e.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := m[1]
	if e.transform != nil {
		v = e.transform(v)
	}
	return v, true
}

type vocabExtractor struct {
	key       string
	terms     []string
	transform func(string) string
}

func (e vocabExtractor) Key() string { return e.key }

func (e vocabExtractor) TryExtract(text string) (string, bool) {
	for _, term := range e.terms {
		if strings.Contains(text, term) {
			if e.transform != nil {
				return e.transform(term), true
			}
			return term, true
		}
	}
	return "", false
}

// timeExtractor matches a wall-clock time, but not one that is part of a
// time-slot range; the slot extractor owns those.
type timeExtractor struct{}

func (timeExtractor) Key() string { return models.FilterTime }

func (timeExtractor) TryExtract(text string) (string, bool) {
	slots := slotRe.FindAllStringIndex(text, -1)
	for _, m := range timeRe.FindAllStringSubmatchIndex(text, -1) {
		if withinAny(m[0], m[1], slots) {
			continue
		}
		return text[m[2]:m[3]], true
	}
	return "", false
}

func withinAny(start, end int, spans [][]int) bool {
	for _, s := range spans {
		if start >= s[0] && end <= s[1] {
			return true
		}
	}
	return false
}

// slotExtractor matches "H:MM - H:MM" with optional whitespace and stores
// the slot with whitespace stripped.
type slotExtractor struct{}

func (slotExtractor) Key() string { return models.FilterTimeSlot }

func (slotExtractor) TryExtract(text string) (string, bool) {
	m := slotRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + "-" + m[2], true
}

// defaultExtractors is the full rule set, one per attribute. Order only
// affects logging; the rules are independent.
var defaultExtractors = []Extractor{
	regexExtractor{key: models.FilterRecordDate, re: dateRe},
	timeExtractor{},
	slotExtractor{},
	vocabExtractor{key: models.FilterLocationCode, terms: cities, transform: strings.ToUpper},
	regexExtractor{key: models.FilterFloor, re: floorRe, transform: title},
	vocabExtractor{key: models.FilterSiteDetails, terms: sites, transform: title},
	vocabExtractor{key: models.FilterDayOfWeek, terms: weekdays, transform: title},
	vocabExtractor{key: models.FilterDayType, terms: dayTypes, transform: title},
}

// ExtractFilters runs every extractor over a normalized query. An empty
// result means no structured constraint was recognized and the caller
// should fall back to semantic search.
func ExtractFilters(text string) *models.FilterSet {
	fs := models.NewFilterSet()
	for _, ex := range defaultExtractors {
		if v, ok := ex.TryExtract(text); ok {
			fs.Set(ex.Key(), v)
		}
	}
	return fs
}

// title upper-cases every letter that follows a non-letter, like the
// title-casing the raw exports use ("tech park" -> "Tech Park").
func title(s string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		out := r
		if !unicode.IsLetter(prev) && unicode.IsLetter(r) {
			out = unicode.ToUpper(r)
		}
		prev = r
		return out
	}, s)
}
