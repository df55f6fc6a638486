package corpus

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/occulog/occulog/internal/models"
	"github.com/occulog/occulog/internal/utils"
)

// Load reads the record corpus from path, dispatching on extension.
// The corpus is immutable for the process lifetime once returned.
func Load(path string) ([]models.Record, error) {
	const op = "corpus.Load"

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, utils.E(utils.CodeInvalidArgument, op, "unsupported corpus format: "+filepath.Ext(path), nil)
	}
}

// LoadJSON reads a JSON array of records (the data.json export format).
func LoadJSON(path string) ([]models.Record, error) {
	const op = "corpus.LoadJSON"

	f, err := os.Open(path)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "failed to open corpus file", err)
	}
	defer f.Close()

	var records []models.Record
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, utils.E(utils.CodeIntegrity, op, "failed to decode corpus JSON", err)
	}
	return records, nil
}

// LoadCSV reads a header-mapped CSV export. Count columns that are blank or
// "N/A" load as absent.
func LoadCSV(path string) ([]models.Record, error) {
	const op = "corpus.LoadCSV"

	f, err := os.Open(path)
	if err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "failed to open corpus file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, utils.E(utils.CodeIntegrity, op, "failed to read CSV header", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []models.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, utils.E(utils.CodeIntegrity, op, "failed to read CSV row", err)
		}

		records = append(records, models.Record{
			RecordDate:         field(row, "RecordDate"),
			Time:               field(row, "Time"),
			TimeSlot:           field(row, "TimeSlot"),
			DayOfWeek:          field(row, "DayOfWeek"),
			DayType:            field(row, "DayType"),
			LocationCode:       field(row, "LocationCode"),
			Floor:              field(row, "Floor"),
			SiteDetails:        field(row, "SiteDetails"),
			WiFiCount:          parseCount(field(row, "WiFiCount")),
			AccessControlCount: parseCount(field(row, "AccessControlCount")),
		})
	}
	return records, nil
}

func parseCount(s string) *int {
	if s == "" || strings.EqualFold(s, "N/A") {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
