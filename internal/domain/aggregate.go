package domain

import "sort"

// YearStats is one calendar year's aggregate KPIs over the reconciled store.
// The YoY fields are nil for the earliest year and when the previous year's
// figure is zero (a percentage change from zero is undefined).
type YearStats struct {
	Year            int      `json:"year"`
	Incidents       int      `json:"incidents"`
	AcresBurned     float64  `json:"acres_burned"`
	IncidentsYoYPct *float64 `json:"incidents_yoy_pct,omitempty"`
	AcresYoYPct     *float64 `json:"acres_yoy_pct,omitempty"`
}

// YearOverYear groups the full store image by the calendar year of each
// incident's start date and computes per-year incident counts and acres
// burned with year-over-year deltas. It is a pure read-side computation:
// nothing here is ever persisted, so the numbers are always recomputable
// from raw records alone.
func YearOverYear(records []IncidentRecord) []YearStats {
	byYear := make(map[int]*YearStats)
	for _, rec := range records {
		year := rec.StartDate.Year()
		s, ok := byYear[year]
		if !ok {
			s = &YearStats{Year: year}
			byYear[year] = s
		}
		s.Incidents++
		s.AcresBurned += rec.AcresBurned
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	out := make([]YearStats, 0, len(years))
	for _, year := range years {
		s := *byYear[year]
		if prev, ok := byYear[year-1]; ok {
			s.IncidentsYoYPct = pctChange(float64(prev.Incidents), float64(s.Incidents))
			s.AcresYoYPct = pctChange(prev.AcresBurned, s.AcresBurned)
		}
		out = append(out, s)
	}
	return out
}

func pctChange(prev, cur float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := (cur - prev) / prev * 100
	return &v
}
