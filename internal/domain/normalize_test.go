package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func validRaw() RawIncident {
	return RawIncident{
		UniqueID:         "ca-2024-001",
		Name:             " Park Fire ",
		County:           "Butte",
		AcresBurned:      floatPtr(429603),
		PercentContained: floatPtr(100),
		Started:          "2024-07-24T14:51:00Z",
		Updated:          "2024-09-26T08:00:00Z",
		Final:            true,
	}
}

func TestNormalizeIncident(t *testing.T) {
	counties := DefaultCounties()

	t.Run("valid record", func(t *testing.T) {
		rec, err := NormalizeIncident(validRaw(), counties)
		require.NoError(t, err)

		assert.Equal(t, "ca-2024-001", rec.IncidentID)
		assert.Equal(t, "Park Fire", rec.Name)
		assert.Equal(t, "Butte", rec.County)
		assert.False(t, rec.CountyUnverified)
		assert.Equal(t, 429603.0, rec.AcresBurned)
		assert.False(t, rec.AcresDefaulted)
		assert.Equal(t, 100.0, rec.ContainmentPct)
		assert.True(t, rec.ContainmentReported)
		assert.Equal(t, time.Date(2024, 7, 24, 14, 51, 0, 0, time.UTC), rec.StartDate)
		assert.Equal(t, time.Date(2024, 9, 26, 8, 0, 0, 0, time.UTC), rec.LastUpdateDate)
		assert.True(t, rec.IsFinal)
		// Derived fields stay zero until DeriveKPIs runs.
		assert.Empty(t, rec.Status)
	})

	t.Run("missing incident id", func(t *testing.T) {
		raw := validRaw()
		raw.UniqueID = "   "

		_, err := NormalizeIncident(raw, counties)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "incident_id", schemaErr.Field)
	})

	t.Run("missing start date", func(t *testing.T) {
		raw := validRaw()
		raw.Started = ""

		_, err := NormalizeIncident(raw, counties)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "start_date", schemaErr.Field)
		assert.Equal(t, "ca-2024-001", schemaErr.IncidentID)
	})

	t.Run("unparseable start date", func(t *testing.T) {
		raw := validRaw()
		raw.Started = "last tuesday"

		_, err := NormalizeIncident(raw, counties)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "start_date", schemaErr.Field)
	})

	t.Run("date-only layout", func(t *testing.T) {
		raw := validRaw()
		raw.Started = "2024-07-24"
		raw.Updated = "2024-07-30"

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 7, 24, 0, 0, 0, 0, time.UTC), rec.StartDate)
		assert.Equal(t, time.Date(2024, 7, 30, 0, 0, 0, 0, time.UTC), rec.LastUpdateDate)
	})

	t.Run("blank update date defaults to start", func(t *testing.T) {
		raw := validRaw()
		raw.Updated = ""

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, rec.StartDate, rec.LastUpdateDate)
	})

	t.Run("update date before start corrected to start", func(t *testing.T) {
		raw := validRaw()
		raw.Updated = "2024-07-01T00:00:00Z"

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, rec.StartDate, rec.LastUpdateDate)
	})

	t.Run("county matched case-insensitively", func(t *testing.T) {
		raw := validRaw()
		raw.County = "  bUtTe "

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, "Butte", rec.County)
		assert.False(t, rec.CountyUnverified)
	})

	t.Run("unknown county kept verbatim and flagged", func(t *testing.T) {
		raw := validRaw()
		raw.County = "Washoe"

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, "Washoe", rec.County)
		assert.True(t, rec.CountyUnverified)
	})

	t.Run("missing acres defaults to zero with flag", func(t *testing.T) {
		raw := validRaw()
		raw.AcresBurned = nil

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rec.AcresBurned)
		assert.True(t, rec.AcresDefaulted)
	})

	t.Run("negative acres defaults to zero with flag", func(t *testing.T) {
		raw := validRaw()
		raw.AcresBurned = floatPtr(-12)

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rec.AcresBurned)
		assert.True(t, rec.AcresDefaulted)
	})

	t.Run("null containment distinguished from reported zero", func(t *testing.T) {
		raw := validRaw()
		raw.PercentContained = nil
		unreported, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)

		raw.PercentContained = floatPtr(0)
		reported, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)

		assert.Equal(t, 0.0, unreported.ContainmentPct)
		assert.False(t, unreported.ContainmentReported)
		assert.Equal(t, 0.0, reported.ContainmentPct)
		assert.True(t, reported.ContainmentReported)
	})

	t.Run("containment clamped to 100", func(t *testing.T) {
		raw := validRaw()
		raw.PercentContained = floatPtr(120)

		rec, err := NormalizeIncident(raw, counties)
		require.NoError(t, err)
		assert.Equal(t, 100.0, rec.ContainmentPct)
		assert.True(t, rec.ContainmentReported)
	})
}

func TestSchemaErrorIsNotFetchError(t *testing.T) {
	_, err := NormalizeIncident(RawIncident{}, DefaultCounties())
	require.Error(t, err)

	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr))
}
