package domain

import "time"

// RawIncident is one feature's "properties" object as returned by the
// CAL FIRE incident API. Numeric fields are pointers because the feed emits
// null while a fire is still being surveyed.
type RawIncident struct {
	UniqueID         string   `json:"UniqueId"`
	Name             string   `json:"Name"`
	County           string   `json:"County"`
	Location         string   `json:"Location"`
	AcresBurned      *float64 `json:"AcresBurned"`
	PercentContained *float64 `json:"PercentContained"`
	Started          string   `json:"Started"`
	Updated          string   `json:"Updated"`
	AdminUnit        string   `json:"AdminUnit"`
	Type             string   `json:"Type"`
	URL              string   `json:"Url"`
	IsActive         bool     `json:"IsActive"`
	Final            bool     `json:"Final"`
}

// Status is the lifecycle state derived from containment and feed activity.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusContained Status = "CONTAINED"
	StatusOut       Status = "OUT"
)

// DurationBucket classifies how long an incident has been burning.
type DurationBucket string

const (
	DurationShort    DurationBucket = "SHORT"    // <= 7 days
	DurationMedium   DurationBucket = "MEDIUM"   // 8-30 days
	DurationLong     DurationBucket = "LONG"     // 31-90 days
	DurationExtended DurationBucket = "EXTENDED" // > 90 days
)

// Season is derived from the incident's start month.
type Season string

const (
	SeasonWinter Season = "WINTER"
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonFall   Season = "FALL"
)

// IncidentRecord is the canonical, normalized representation of one wildfire
// incident. IncidentID is the primary key for reconciliation: a record is
// only ever created once and updated in place afterwards, never duplicated
// and never deleted by the engine.
type IncidentRecord struct {
	IncidentID string `json:"incident_id"`
	Name       string `json:"name"`

	// County is the canonical county name when matched, or the verbatim
	// feed value with CountyUnverified set when not.
	County           string `json:"county"`
	CountyUnverified bool   `json:"county_unverified"`

	// AcresBurned is never negative. AcresDefaulted marks values that were
	// missing or unparseable upstream and defaulted to 0.
	AcresBurned    float64 `json:"acres_burned"`
	AcresDefaulted bool    `json:"acres_defaulted"`

	// ContainmentPct is in [0, 100]. ContainmentReported distinguishes a
	// reported 0% from an unreported (null) containment.
	ContainmentPct      float64 `json:"containment_pct"`
	ContainmentReported bool    `json:"containment_reported"`

	StartDate      time.Time `json:"start_date"`
	LastUpdateDate time.Time `json:"last_update_date"`

	// IsFinal is the feed's own "no further updates expected" flag,
	// retained as a data column.
	IsFinal bool `json:"is_final"`

	Status         Status         `json:"status"`
	DurationBucket DurationBucket `json:"duration_bucket"`
	Season         Season         `json:"season"`
}
