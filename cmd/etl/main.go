// Command etl is the CAL FIRE incident reconciliation engine: it syncs feed
// snapshots into the spreadsheet-backed incident store, serves the HTTP
// trigger mode, and provides dry-run and KPI inspection commands.
package main

import (
	"os"

	"github.com/emberwatch/calfire-incident-etl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
