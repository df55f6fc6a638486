package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occulog/occulog/internal/utils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"RecordDate":"2025-06-14","Time":"01:45:00","TimeSlot":"01:45-02:00",
		 "DayOfWeek":"Saturday","DayType":"Weekend","LocationCode":"LOC-IN-KALWA",
		 "Floor":"Ground Floor","SiteDetails":"TECH PARK","WiFiCount":12},
		{"RecordDate":"2025-06-15","LocationCode":"LOC-IN-PUNE"}
	]`)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "KALWA", first.Location())
	assert.Equal(t, "Ground Floor", first.Floor)
	require.NotNil(t, first.WiFiCount)
	assert.Equal(t, 12, *first.WiFiCount)
	assert.Nil(t, first.AccessControlCount)
	assert.Nil(t, records[1].WiFiCount)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "data.csv",
		"RecordDate,Time,TimeSlot,DayOfWeek,DayType,LocationCode,Floor,SiteDetails,WiFiCount,AccessControlCount\n"+
			"2025-06-14,01:45:00,01:45-02:00,Saturday,Weekend,LOC-IN-KALWA,Ground Floor,TECH PARK,12,8\n"+
			"2025-06-15,02:00:00,02:00-02:15,Sunday,Weekend,LOC-IN-PUNE,3rd Floor,INNOVATION HUB,N/A,\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].WiFiCount)
	assert.Equal(t, 12, *records[0].WiFiCount)
	require.NotNil(t, records[0].AccessControlCount)
	assert.Equal(t, 8, *records[0].AccessControlCount)

	assert.Nil(t, records[1].WiFiCount, `"N/A" counts load as absent`)
	assert.Nil(t, records[1].AccessControlCount, "blank counts load as absent")
	assert.Equal(t, "PUNE", records[1].Location())
}

func TestLoadCSVNegativeCountAbsent(t *testing.T) {
	path := writeFile(t, "data.csv",
		"RecordDate,LocationCode,WiFiCount\n2025-06-14,LOC-IN-KALWA,-3\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].WiFiCount)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "data.parquet", "x")

	_, err := Load(path)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeFile(t, "data.json", `{"not":"an array"`)

	_, err := Load(path)
	assert.True(t, utils.IsCode(err, utils.CodeIntegrity))
}
