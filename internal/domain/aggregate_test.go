package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearRecord(id string, year int, acres float64) IncidentRecord {
	start := time.Date(year, 7, 15, 0, 0, 0, 0, time.UTC)
	return IncidentRecord{
		IncidentID:     id,
		AcresBurned:    acres,
		StartDate:      start,
		LastUpdateDate: start.AddDate(0, 0, 10),
	}
}

func TestYearOverYear(t *testing.T) {
	t.Run("groups by start year with YoY deltas", func(t *testing.T) {
		records := []IncidentRecord{
			yearRecord("a", 2023, 1000),
			yearRecord("b", 2023, 3000),
			yearRecord("c", 2024, 6000),
		}

		stats := YearOverYear(records)
		require.Len(t, stats, 2)

		assert.Equal(t, 2023, stats[0].Year)
		assert.Equal(t, 2, stats[0].Incidents)
		assert.Equal(t, 4000.0, stats[0].AcresBurned)
		assert.Nil(t, stats[0].IncidentsYoYPct)
		assert.Nil(t, stats[0].AcresYoYPct)

		assert.Equal(t, 2024, stats[1].Year)
		assert.Equal(t, 1, stats[1].Incidents)
		assert.Equal(t, 6000.0, stats[1].AcresBurned)
		require.NotNil(t, stats[1].IncidentsYoYPct)
		assert.InDelta(t, -50.0, *stats[1].IncidentsYoYPct, 0.001)
		require.NotNil(t, stats[1].AcresYoYPct)
		assert.InDelta(t, 50.0, *stats[1].AcresYoYPct, 0.001)
	})

	t.Run("gap years break the YoY chain", func(t *testing.T) {
		records := []IncidentRecord{
			yearRecord("a", 2021, 500),
			yearRecord("b", 2023, 800),
		}

		stats := YearOverYear(records)
		require.Len(t, stats, 2)
		assert.Nil(t, stats[1].IncidentsYoYPct)
		assert.Nil(t, stats[1].AcresYoYPct)
	})

	t.Run("zero-acre previous year yields nil acres delta", func(t *testing.T) {
		records := []IncidentRecord{
			yearRecord("a", 2023, 0),
			yearRecord("b", 2024, 100),
		}

		stats := YearOverYear(records)
		require.Len(t, stats, 2)
		assert.Nil(t, stats[1].AcresYoYPct)
		require.NotNil(t, stats[1].IncidentsYoYPct)
		assert.InDelta(t, 0.0, *stats[1].IncidentsYoYPct, 0.001)
	})

	t.Run("empty store", func(t *testing.T) {
		assert.Empty(t, YearOverYear(nil))
	})
}
