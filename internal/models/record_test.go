package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(n int) *int { return &n }

func TestLocationStripsSitePrefix(t *testing.T) {
	r := Record{LocationCode: "LOC-IN-KALWA"}
	assert.Equal(t, "KALWA", r.Location())

	r = Record{LocationCode: "KALWA"}
	assert.Equal(t, "KALWA", r.Location())
}

func TestPartOfDayBuckets(t *testing.T) {
	cases := []struct {
		time string
		want string
	}{
		{"05:00:00", "morning"},
		{"11:59:00", "morning"},
		{"12:00:00", "afternoon"},
		{"16:59:00", "afternoon"},
		{"17:00:00", "evening"},
		{"20:59:00", "evening"},
		{"21:00:00", "night"},
		{"04:59:00", "night"},
		{"01:45", "night"},
		{"", ""},
		{"not a time", ""},
	}
	for _, tc := range cases {
		r := Record{Time: tc.time}
		assert.Equal(t, tc.want, r.PartOfDay(), "time %q", tc.time)
	}
}

func TestProjectedText(t *testing.T) {
	r := Record{
		RecordDate:         "2025-06-14",
		Time:               "09:15:00",
		TimeSlot:           "09:15-09:30",
		DayOfWeek:          "Saturday",
		DayType:            "Weekend",
		LocationCode:       "LOC-IN-KALWA",
		Floor:              "2nd Floor",
		SiteDetails:        "Tech Park",
		WiFiCount:          intp(42),
		AccessControlCount: nil,
	}

	got := r.ProjectedText()
	assert.Equal(t,
		"On Saturday, 2025-06-14 at Tech Park (2nd Floor, KALWA), WiFi count: 42, "+
			"Access count: N/A, Type: Weekend, TimeSlot: 09:15-09:30. Part of day: morning.",
		got)
}

func TestProjectedTextUnknownDate(t *testing.T) {
	got := Record{DayOfWeek: "Monday"}.ProjectedText()
	assert.Contains(t, got, "unknown date")
}

func TestAttrCoercion(t *testing.T) {
	r := Record{RecordDate: "2025-06-14", WiFiCount: intp(7)}

	assert.Equal(t, "2025-06-14", r.Attr(FilterRecordDate))
	assert.Equal(t, "7", r.Attr("WiFiCount"))
	assert.Equal(t, "", r.Attr("AccessControlCount"))
	assert.Equal(t, "", r.Attr("nope"))
}
