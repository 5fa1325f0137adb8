package domain

// MergeStats summarizes what a reconciliation changed.
type MergeStats struct {
	Created   int // ids in the batch but not in the prior image
	Updated   int // ids in both whose row content changed
	Unchanged int // ids in both whose row content was identical
	Retained  int // ids in the prior image absent from the batch
}

// Reconcile merges a freshly derived batch into the prior store image and
// returns the new image. It is a pure function of its inputs:
//
//   - every incident id in the batch has its row fully replaced by the new
//     values (last-writer-wins per run, not per field),
//   - rows present in the prior image but absent from the batch are
//     preserved unchanged (feed snapshots are partial, absence is not
//     deletion),
//   - existing rows keep their position and new rows are appended in batch
//     order, so consumers never see a resort.
//
// Replacing a row with identical values yields an identical image, which is
// what makes rerunning the same batch a no-op: for any prior image S and
// batch B, Reconcile(Reconcile(S, B), B) == Reconcile(S, B).
//
// When the same id appears more than once within a batch, the last
// occurrence wins, mirroring the per-run last-writer-wins rule.
func Reconcile(prior, batch []IncidentRecord) ([]IncidentRecord, MergeStats) {
	latest := make(map[string]IncidentRecord, len(batch))
	order := make([]string, 0, len(batch))
	for _, rec := range batch {
		if _, seen := latest[rec.IncidentID]; !seen {
			order = append(order, rec.IncidentID)
		}
		latest[rec.IncidentID] = rec
	}

	var stats MergeStats
	merged := make([]IncidentRecord, 0, len(prior)+len(batch))

	for _, existing := range prior {
		incoming, ok := latest[existing.IncidentID]
		if !ok {
			stats.Retained++
			merged = append(merged, existing)
			continue
		}
		if incoming == existing {
			stats.Unchanged++
		} else {
			stats.Updated++
		}
		merged = append(merged, incoming)
		delete(latest, existing.IncidentID)
	}

	for _, id := range order {
		rec, ok := latest[id]
		if !ok {
			continue // consumed by an in-place replacement above
		}
		stats.Created++
		merged = append(merged, rec)
	}

	return merged, stats
}
