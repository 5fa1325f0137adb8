package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the timestamp shapes the feed has been observed to
// emit: full ISO-8601 with and without zone, and bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeIncident maps one raw feed payload to a canonical IncidentRecord.
// UniqueId and Started are the only fields the engine refuses to default;
// their absence returns a *SchemaError and the record is skipped upstream.
// Every other field applies the null-handling rules documented on
// IncidentRecord. Derived fields (status, duration bucket, season) are left
// zero; DeriveKPIs fills them.
func NormalizeIncident(raw RawIncident, counties *CountySet) (IncidentRecord, error) {
	id := strings.TrimSpace(raw.UniqueID)
	if id == "" {
		return IncidentRecord{}, &SchemaError{Field: "incident_id", Detail: "feed record has no UniqueId"}
	}

	started, ok := parseDate(raw.Started)
	if !ok {
		return IncidentRecord{}, &SchemaError{
			Field:      "start_date",
			IncidentID: id,
			Detail:     "unparseable Started value " + strconv.Quote(raw.Started),
		}
	}

	// Updated defaults to the start date and is corrected to it when the
	// feed emits an update timestamp older than the fire's start.
	updated, ok := parseDate(raw.Updated)
	if !ok || updated.Before(started) {
		updated = started
	}

	rec := IncidentRecord{
		IncidentID:     id,
		Name:           strings.TrimSpace(raw.Name),
		StartDate:      started,
		LastUpdateDate: updated,
		IsFinal:        raw.Final,
	}

	if canonical, matched := counties.Match(raw.County); matched {
		rec.County = canonical
	} else {
		rec.County = strings.TrimSpace(raw.County)
		rec.CountyUnverified = true
	}

	rec.AcresBurned, rec.AcresDefaulted = normalizeAcres(raw.AcresBurned)
	rec.ContainmentPct, rec.ContainmentReported = normalizeContainment(raw.PercentContained)

	return rec, nil
}

// normalizeAcres defaults missing, NaN, or negative acreage to 0 and flags
// the default so downstream consumers can tell "no fire" from "not yet
// surveyed".
func normalizeAcres(acres *float64) (float64, bool) {
	if acres == nil || math.IsNaN(*acres) {
		return 0, true
	}
	if *acres < 0 {
		return 0, true
	}
	return *acres, false
}

// normalizeContainment treats null as 0% unreported and clamps reported
// values into [0, 100].
func normalizeContainment(pct *float64) (float64, bool) {
	if pct == nil || math.IsNaN(*pct) {
		return 0, false
	}
	v := *pct
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v, true
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
