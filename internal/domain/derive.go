package domain

import "time"

// outAfterQuietDays is how long an uncontained incident may go without a
// feed update before it is treated as resolved. The feed stops reporting
// fires it no longer tracks instead of marking them out.
const outAfterQuietDays = 14

// DeriveKPIs fills the derived fields of a normalized record: status,
// duration bucket, and season. Status is derived first because the duration
// of a still-active incident runs to now rather than to its last update.
func DeriveKPIs(rec IncidentRecord) IncidentRecord {
	now := clock.Now().UTC()
	rec.Status = deriveStatus(rec, now)
	rec.DurationBucket = deriveDurationBucket(rec, now)
	rec.Season = deriveSeason(rec.StartDate)
	return rec
}

// deriveStatus classifies the incident's lifecycle state.
// Full containment wins regardless of elapsed time. An incident at 0%
// containment (reported or not) that the feed has been silent on for more
// than outAfterQuietDays is treated as out.
func deriveStatus(rec IncidentRecord, now time.Time) Status {
	if rec.ContainmentPct >= 100 {
		return StatusContained
	}
	if rec.ContainmentPct == 0 && elapsedDays(rec.LastUpdateDate, now) > outAfterQuietDays {
		return StatusOut
	}
	return StatusActive
}

// deriveDurationBucket buckets the incident's burn duration in whole days:
// <=7 SHORT, 8-30 MEDIUM, 31-90 LONG, >90 EXTENDED.
func deriveDurationBucket(rec IncidentRecord, now time.Time) DurationBucket {
	end := rec.LastUpdateDate
	if rec.Status == StatusActive {
		end = now
	}

	days := elapsedDays(rec.StartDate, end)
	switch {
	case days <= 7:
		return DurationShort
	case days <= 30:
		return DurationMedium
	case days <= 90:
		return DurationLong
	default:
		return DurationExtended
	}
}

func deriveSeason(start time.Time) Season {
	switch start.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// elapsedDays returns the whole days between two instants, never negative.
func elapsedDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
