// Command mockfeed serves a deterministic fake CAL FIRE incident snapshot
// over HTTP for local development, so the engine can run end to end without
// hitting the real feed. Point FEED_URL at it:
//
//	go run ./cmd/mockfeed -addr :9091 -incidents 25
//	FEED_URL=http://localhost:9091 ./calfire-etl run
//
// The ?year= query parameter is honored: requests for years other than the
// configured one return an empty snapshot, which also exercises the
// engine's previous-year fallback.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/emberwatch/calfire-incident-etl/internal/domain"
)

var counties = []string{
	"Butte", "Shasta", "Siskiyou", "Tehama", "Lake", "Napa", "Sonoma",
	"Los Angeles", "Riverside", "San Diego", "Kern", "Fresno",
}

func main() {
	addr := flag.String("addr", ":9091", "listen address")
	count := flag.Int("incidents", 25, "number of incidents in the snapshot")
	year := flag.Int("year", time.Now().UTC().Year(), "year the snapshot belongs to")
	flag.Parse()

	snapshot := buildSnapshot(*count, *year)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if y := r.URL.Query().Get("year"); y != "" && y != strconv.Itoa(*year) {
			json.NewEncoder(w).Encode(map[string]any{"features": []any{}}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(snapshot) //nolint:errcheck
	})

	log.Printf("mock feed: %d incidents for %d on %s", *count, *year, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

type feature struct {
	Properties domain.RawIncident `json:"properties"`
}

type snapshot struct {
	Features []feature `json:"features"`
}

// buildSnapshot generates incidents with a spread of containment levels,
// update ages, and data-quality quirks (null acres, unknown counties) so
// every normalization and derivation path gets traffic.
func buildSnapshot(count, year int) snapshot {
	base := time.Date(year, time.June, 1, 8, 0, 0, 0, time.UTC)

	features := make([]feature, 0, count)
	for i := 0; i < count; i++ {
		started := base.AddDate(0, 0, i*3)
		updated := started.AddDate(0, 0, (i%13)+1)

		acres := float64(120 + i*315)
		containment := float64((i * 10) % 110)
		if containment > 100 {
			containment = 100
		}

		raw := domain.RawIncident{
			UniqueID:         fmt.Sprintf("mock-%d-%03d", year, i+1),
			Name:             fmt.Sprintf("Mock Fire %d", i+1),
			County:           counties[i%len(counties)],
			AcresBurned:      &acres,
			PercentContained: &containment,
			Started:          started.Format(time.RFC3339),
			Updated:          updated.Format(time.RFC3339),
			IsActive:         containment < 100,
			Final:            containment >= 100,
			Type:             "Wildfire",
		}

		// Every seventh incident gets surveyed-but-unreported numbers and
		// every eleventh an out-of-enumeration county.
		if i%7 == 3 {
			raw.AcresBurned = nil
			raw.PercentContained = nil
		}
		if i%11 == 5 {
			raw.County = "Baja Norte"
		}

		features = append(features, feature{Properties: raw})
	}
	return snapshot{Features: features}
}
