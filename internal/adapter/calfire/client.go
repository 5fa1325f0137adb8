// Package calfire implements the feed boundary: an HTTP client for the
// CAL FIRE public incident API.
package calfire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

// Client fetches incident snapshots from the CAL FIRE API.
// It implements pipeline.SnapshotFetcher.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewClient creates a feed client for the given API base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		clock:  clockwork.NewRealClock(),
	}
}

// FetchSnapshot retrieves the current snapshot of incidents, inactive ones
// included. Early in January the feed's current-year window is routinely
// empty, so an empty current-year response falls back once to the previous
// year before the snapshot is reported empty. Any transport or decode
// failure returns a *domain.FetchError; there is no retry loop here, the
// scheduler's next trigger is the retry.
func (c *Client) FetchSnapshot(ctx context.Context) ([]domain.RawIncident, error) {
	year := c.clock.Now().UTC().Year()

	incidents, err := c.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(incidents) == 0 {
		c.logger.Info("no incidents for current year, trying previous", "year", year)
		return c.fetchYear(ctx, year-1)
	}
	return incidents, nil
}

func (c *Client) fetchYear(ctx context.Context, year int) ([]domain.RawIncident, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &domain.FetchError{URL: c.baseURL, Err: err}
	}
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	q.Set("inactive", "true")
	u.RawQuery = q.Encode()
	fullURL := u.String()

	c.logger.Debug("fetching feed snapshot", "url", fullURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: fullURL, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.FetchError{
			URL: fullURL,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, body),
		}
	}

	var snapshot response
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, &domain.FetchError{URL: fullURL, Err: fmt.Errorf("decode response: %w", err)}
	}

	incidents := make([]domain.RawIncident, 0, len(snapshot.Features))
	for _, f := range snapshot.Features {
		incidents = append(incidents, f.Properties)
	}
	return incidents, nil
}

// Feed response types. The API returns a GeoJSON-style collection with the
// incident fields in each feature's properties object.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties domain.RawIncident `json:"properties"`
}
