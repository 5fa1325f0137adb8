package calfire

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

const snapshotJSON = `{
	"features": [
		{"properties": {"UniqueId": "ca-1", "Name": "Park Fire", "County": "Butte",
			"AcresBurned": 429603, "PercentContained": 100,
			"Started": "2024-07-24T14:51:00Z", "Updated": "2024-09-26T08:00:00Z",
			"Final": true}},
		{"properties": {"UniqueId": "ca-2", "Name": "Gold Fire", "County": "Lassen",
			"AcresBurned": null, "PercentContained": null,
			"Started": "2024-07-20T10:00:00Z", "Updated": "2024-07-22T10:00:00Z",
			"IsActive": true}}
	]
}`

func testClient(baseURL string, year int) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:      clockwork.NewFakeClockAt(time.Date(year, 7, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestFetchSnapshot_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		assert.Equal(t, "true", r.URL.Query().Get("inactive"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshotJSON))
	}))
	defer srv.Close()

	incidents, err := testClient(srv.URL, 2024).FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 2)

	assert.Equal(t, "ca-1", incidents[0].UniqueID)
	assert.Equal(t, "Park Fire", incidents[0].Name)
	require.NotNil(t, incidents[0].AcresBurned)
	assert.Equal(t, 429603.0, *incidents[0].AcresBurned)
	assert.True(t, incidents[0].Final)

	// Null numerics survive as nil pointers for the normalizer to flag.
	assert.Nil(t, incidents[1].AcresBurned)
	assert.Nil(t, incidents[1].PercentContained)
	assert.True(t, incidents[1].IsActive)
}

func TestFetchSnapshot_FallsBackToPreviousYear(t *testing.T) {
	var years []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		year := r.URL.Query().Get("year")
		years = append(years, year)
		w.Header().Set("Content-Type", "application/json")
		if year == "2025" {
			_, _ = w.Write([]byte(`{"features": []}`))
			return
		}
		_, _ = w.Write([]byte(snapshotJSON))
	}))
	defer srv.Close()

	incidents, err := testClient(srv.URL, 2025).FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, incidents, 2)
	assert.Equal(t, []string{"2025", "2024"}, years)
}

func TestFetchSnapshot_BothYearsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	incidents, err := testClient(srv.URL, 2025).FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestFetchSnapshot_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broken"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 2024).FetchSnapshot(context.Background())
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "status 502")
}

func TestFetchSnapshot_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 2024).FetchSnapshot(context.Background())
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "decode response")
}

func TestFetchSnapshot_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2024)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.FetchSnapshot(context.Background())
	require.Error(t, err)

	var fetchErr *domain.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
