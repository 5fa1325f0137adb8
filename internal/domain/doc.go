// Package domain models CAL FIRE wildfire incident data.
//
// # Data Source
//
// Incident records originate from the CAL FIRE public incident API. The feed
// returns a GeoJSON-style collection: each feature carries the incident
// fields in its "properties" object. Snapshots are requested per calendar
// year with inactive incidents included, and are partial and rolling: an
// incident absent from today's snapshot may reappear tomorrow, so absence
// never means deletion.
//
// # Feed Conventions
//
// Identity:
//
//	"UniqueId" is the stable incident identifier and the reconciliation key.
//	Records without it cannot be merged and are rejected during
//	normalization.
//
// Dates:
//
//	"Started" and "Updated" are ISO-8601 timestamps, sometimes date-only.
//	"Started" is required; "Updated" defaults to the start date when blank
//	and is corrected to the start date when it precedes it (the feed
//	occasionally emits update timestamps older than the fire's start).
//
// Numbers:
//
//	"AcresBurned" and "PercentContained" may be null while a fire is being
//	surveyed. Null acreage normalizes to 0 with a data-quality flag. Null
//	containment normalizes to 0 but is distinguished from a reported 0%,
//	which means crews are on scene and containment genuinely stands at zero.
//
// Counties:
//
//	"County" is free text upstream. Values are matched case-insensitively
//	against the fixed enumeration of the 58 California counties; unmatched
//	values are kept verbatim and flagged county_unverified rather than
//	dropped.
//
// # Derived Fields
//
// Status:
//
//	containment >= 100%                          -> CONTAINED
//	containment == 0% and >14 days since update  -> OUT (feed went quiet)
//	otherwise                                    -> ACTIVE
//
// Duration bucket, from elapsed days between start and last update (or now,
// while the incident is still active):
//
//	<=7 SHORT | 8-30 MEDIUM | 31-90 LONG | >90 EXTENDED
//
// Season, from the start month: Dec-Feb WINTER, Mar-May SPRING,
// Jun-Aug SUMMER, Sep-Nov FALL.
//
// Aggregate KPIs (per-year incident counts and acres burned with
// year-over-year deltas) are recomputed from the full store on demand and
// never persisted, so a cached aggregate can never silently diverge from
// the raw records.
package domain
