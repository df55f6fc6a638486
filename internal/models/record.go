package models

import (
	"fmt"
	"time"
)

// SitePrefix is carried by every LocationCode in the raw exports and is
// stripped before any comparison or rendering.
const SitePrefix = "LOC-IN-"

// Filter keys match the raw export column names.
const (
	FilterRecordDate   = "RecordDate"
	FilterTime         = "Time"
	FilterTimeSlot     = "TimeSlot"
	FilterDayOfWeek    = "DayOfWeek"
	FilterDayType      = "DayType"
	FilterLocationCode = "LocationCode"
	FilterFloor        = "Floor"
	FilterSiteDetails  = "SiteDetails"
)

// Record is one occupancy log entry. Records are immutable once loaded;
// retrieval never mutates them.
type Record struct {
	RecordDate         string `json:"RecordDate"`
	Time               string `json:"Time,omitempty"`
	TimeSlot           string `json:"TimeSlot"`
	DayOfWeek          string `json:"DayOfWeek"`
	DayType            string `json:"DayType"`
	LocationCode       string `json:"LocationCode"`
	Floor              string `json:"Floor"`
	SiteDetails        string `json:"SiteDetails"`
	WiFiCount          *int   `json:"WiFiCount,omitempty"`
	AccessControlCount *int   `json:"AccessControlCount,omitempty"`
}

// Location returns the location code without the site prefix.
func (r Record) Location() string {
	if len(r.LocationCode) >= len(SitePrefix) && r.LocationCode[:len(SitePrefix)] == SitePrefix {
		return r.LocationCode[len(SitePrefix):]
	}
	return r.LocationCode
}

// PartOfDay buckets the record's wall-clock time: [5,12) morning,
// [12,17) afternoon, [17,21) evening, else night. Empty when no time is set.
func (r Record) PartOfDay() string {
	if r.Time == "" {
		return ""
	}
	t, err := time.Parse("15:04:05", r.Time)
	if err != nil {
		t, err = time.Parse("15:04", r.Time)
		if err != nil {
			return ""
		}
	}
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}

// ProjectedText renders the record as the canonical sentence that gets
// embedded at index time and handed to the generation prompt. It is
// recomputed on demand, never stored.
func (r Record) ProjectedText() string {
	date := r.RecordDate
	if date == "" {
		date = "unknown date"
	}
	return fmt.Sprintf(
		"On %s, %s at %s (%s, %s), WiFi count: %s, Access count: %s, Type: %s, TimeSlot: %s. Part of day: %s.",
		r.DayOfWeek, date, r.SiteDetails, r.Floor, r.Location(),
		countOrNA(r.WiFiCount), countOrNA(r.AccessControlCount),
		r.DayType, r.TimeSlot, r.PartOfDay(),
	)
}

// Attr coerces the named attribute to text for filter comparison.
// Absent counts coerce to empty string, so a non-empty filter on them
// never matches.
func (r Record) Attr(key string) string {
	switch key {
	case FilterRecordDate:
		return r.RecordDate
	case FilterTime:
		return r.Time
	case FilterTimeSlot:
		return r.TimeSlot
	case FilterDayOfWeek:
		return r.DayOfWeek
	case FilterDayType:
		return r.DayType
	case FilterLocationCode:
		return r.LocationCode
	case FilterFloor:
		return r.Floor
	case FilterSiteDetails:
		return r.SiteDetails
	case "WiFiCount":
		return intOrEmpty(r.WiFiCount)
	case "AccessControlCount":
		return intOrEmpty(r.AccessControlCount)
	default:
		return ""
	}
}

func countOrNA(n *int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
