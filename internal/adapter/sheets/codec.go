package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

// Canonical sheet column names, in destination order. The header row is
// written on every full write and consulted on every read, so a manually
// reordered sheet still decodes correctly.
var header = []string{
	"incident_id",
	"name",
	"county",
	"county_unverified",
	"acres_burned",
	"acres_defaulted",
	"containment_pct",
	"containment_reported",
	"start_date",
	"last_update_date",
	"is_final",
	"status",
	"duration_bucket",
	"season",
}

const dateLayout = time.RFC3339

// encodeRow converts a record into one sheet row of string cells, in header
// order. Everything is written as RAW strings so the sheet never reformats
// values behind the engine's back.
func encodeRow(rec domain.IncidentRecord) []any {
	return []any{
		rec.IncidentID,
		rec.Name,
		rec.County,
		strconv.FormatBool(rec.CountyUnverified),
		formatFloat(rec.AcresBurned),
		strconv.FormatBool(rec.AcresDefaulted),
		formatFloat(rec.ContainmentPct),
		strconv.FormatBool(rec.ContainmentReported),
		rec.StartDate.UTC().Format(dateLayout),
		rec.LastUpdateDate.UTC().Format(dateLayout),
		strconv.FormatBool(rec.IsFinal),
		string(rec.Status),
		string(rec.DurationBucket),
		string(rec.Season),
	}
}

// decodeRow converts one sheet row back into a record using the sheet's own
// header for column positions. Short (ragged) rows read as empty cells; the
// Sheets API drops trailing empty cells on read.
func decodeRow(cols map[string]int, row []any) (domain.IncidentRecord, error) {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		s, _ := row[idx].(string)
		return strings.TrimSpace(s)
	}

	id := cell("incident_id")
	if id == "" {
		return domain.IncidentRecord{}, fmt.Errorf("row has no incident_id")
	}

	startDate, err := parseCellDate(cell("start_date"))
	if err != nil {
		return domain.IncidentRecord{}, fmt.Errorf("row %s: start_date: %w", id, err)
	}
	lastUpdate, err := parseCellDate(cell("last_update_date"))
	if err != nil {
		return domain.IncidentRecord{}, fmt.Errorf("row %s: last_update_date: %w", id, err)
	}

	return domain.IncidentRecord{
		IncidentID:          id,
		Name:                cell("name"),
		County:              cell("county"),
		CountyUnverified:    cell("county_unverified") == "true",
		AcresBurned:         parseCellFloat(cell("acres_burned")),
		AcresDefaulted:      cell("acres_defaulted") == "true",
		ContainmentPct:      parseCellFloat(cell("containment_pct")),
		ContainmentReported: cell("containment_reported") == "true",
		StartDate:           startDate,
		LastUpdateDate:      lastUpdate,
		IsFinal:             cell("is_final") == "true",
		Status:              domain.Status(cell("status")),
		DurationBucket:      domain.DurationBucket(cell("duration_bucket")),
		Season:              domain.Season(cell("season")),
	}, nil
}

// columnIndex maps a sheet's header row to column positions.
func columnIndex(headerRow []any) map[string]int {
	cols := make(map[string]int, len(headerRow))
	for i, cell := range headerRow {
		if name, ok := cell.(string); ok {
			cols[strings.TrimSpace(name)] = i
		}
	}
	return cols
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCellFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCellDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
