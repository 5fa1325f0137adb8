package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
	"github.com/emberwatch/calfire-incident-etl/internal/observability"
)

// SnapshotFetcher retrieves the current feed snapshot of incidents.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) ([]domain.RawIncident, error)
}

// Store is the destination boundary. The engine always reads the full
// tabular contents and writes the full merged image back; no partial-row
// API is assumed.
type Store interface {
	ReadAll(ctx context.Context) ([]domain.IncidentRecord, error)
	WriteAll(ctx context.Context, records []domain.IncidentRecord) error
}

// RunStatus is the terminal state of one sync invocation.
type RunStatus string

const (
	RunSuccess RunStatus = "SUCCESS"
	RunFailure RunStatus = "FAILURE"
)

// RunSummary reports what one invocation saw and changed.
type RunSummary struct {
	RunID          string        `json:"run_id"`
	Status         RunStatus     `json:"status"`
	RecordsSeen    int           `json:"records_seen"`
	RecordsCreated int           `json:"records_created"`
	RecordsUpdated int           `json:"records_updated"`
	RecordsSkipped int           `json:"records_skipped"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Error          string        `json:"error,omitempty"`
}

// Engine runs the fetch-normalize-derive-reconcile-write cycle. Each Run is
// synchronous and run-to-completion; no state survives between invocations
// other than the store itself. Concurrent runs are not coordinated here;
// the external scheduler is assumed to enforce at most one at a time.
type Engine struct {
	fetcher  SnapshotFetcher
	store    Store
	counties *domain.CountySet
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates an Engine with the given boundaries and observability.
func New(f SnapshotFetcher, s Store, counties *domain.CountySet, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		fetcher:  f,
		store:    s,
		counties: counties,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the engine has completed at least one
// successful run, or an error describing why the service is not yet ready.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("engine has not completed a sync run yet")
	}
	return nil
}

// Run executes one complete sync invocation and returns its summary.
// Per-record schema failures are skipped and counted; boundary failures
// (fetch, store read, store write) abort the run before any write so the
// destination is left in its last-known-good state. The returned error is
// non-nil exactly when Status is FAILURE.
func (e *Engine) Run(ctx context.Context) (summary RunSummary, err error) {
	summary = RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger := e.logger.With("run_id", summary.RunID)

	e.metrics.RunActive.Set(1)
	defer e.metrics.RunActive.Set(0)
	defer func() {
		summary.Duration = time.Since(summary.StartedAt)
		e.metrics.RunDuration.Observe(summary.Duration.Seconds())
	}()

	logger.Info("sync run started")

	snapshot, err := e.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return e.fail(logger, summary, "fetch snapshot failed", err)
	}

	summary.RecordsSeen = len(snapshot)
	e.metrics.RecordsSeen.Add(float64(len(snapshot)))
	e.metrics.SnapshotSize.Observe(float64(len(snapshot)))

	batch := e.normalizeBatch(logger, snapshot, &summary)

	if len(snapshot) == 0 {
		// An empty snapshot is not a failure: the feed simply has nothing
		// for the requested window. The store stays untouched.
		logger.Info("feed snapshot empty, nothing to reconcile")
		return e.succeed(logger, summary)
	}

	prior, err := e.store.ReadAll(ctx)
	if err != nil {
		// Never merge against an unknown prior state: a write here could
		// silently lose history.
		return e.fail(logger, summary, "store read failed, aborting before write", err)
	}

	merged, stats := domain.Reconcile(prior, batch)
	summary.RecordsCreated = stats.Created
	summary.RecordsUpdated = stats.Updated

	if err := e.store.WriteAll(ctx, merged); err != nil {
		return e.fail(logger, summary, "store write failed", err)
	}

	e.metrics.RecordsCreated.Add(float64(stats.Created))
	e.metrics.RecordsUpdated.Add(float64(stats.Updated))

	logger.Info("store reconciled",
		"rows_total", len(merged),
		"created", stats.Created,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"retained", stats.Retained,
	)
	return e.succeed(logger, summary)
}

// normalizeBatch maps raw feed payloads to derived records, isolating
// per-record schema failures.
func (e *Engine) normalizeBatch(logger *slog.Logger, snapshot []domain.RawIncident, summary *RunSummary) []domain.IncidentRecord {
	batch := make([]domain.IncidentRecord, 0, len(snapshot))
	for _, raw := range snapshot {
		rec, err := domain.NormalizeIncident(raw, e.counties)
		if err != nil {
			summary.RecordsSkipped++
			e.metrics.RecordsSkipped.Inc()
			logger.Warn("skipping malformed feed record", "error", err)
			continue
		}
		batch = append(batch, domain.DeriveKPIs(rec))
	}
	return batch
}

// YearOverYear recomputes the aggregate KPIs from the store's current
// contents. It is read-only and safe to call at any time, including while
// no sync has ever run.
func (e *Engine) YearOverYear(ctx context.Context) ([]domain.YearStats, error) {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.YearOverYear(records), nil
}

func (e *Engine) succeed(logger *slog.Logger, summary RunSummary) (RunSummary, error) {
	summary.Status = RunSuccess
	e.metrics.RunsTotal.WithLabelValues("success").Inc()
	e.ready.Store(true)
	logger.Info("sync run finished",
		"status", summary.Status,
		"records_seen", summary.RecordsSeen,
		"records_created", summary.RecordsCreated,
		"records_updated", summary.RecordsUpdated,
		"records_skipped", summary.RecordsSkipped,
		"duration", time.Since(summary.StartedAt),
	)
	return summary, nil
}

func (e *Engine) fail(logger *slog.Logger, summary RunSummary, msg string, err error) (RunSummary, error) {
	summary.Status = RunFailure
	summary.Error = err.Error()
	e.metrics.RunsTotal.WithLabelValues("failure").Inc()
	logger.Error(msg, "error", err,
		"records_seen", summary.RecordsSeen,
		"records_skipped", summary.RecordsSkipped,
	)
	return summary, err
}
