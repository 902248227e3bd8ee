package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

// writeSummaryCSV writes the per-step compartment count table: one row per
// step, phase columns in enumeration order.
func writeSummaryCSV(w io.Writer, summary *sim.Summary) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, sim.NumPhases+1)
	header = append(header, "step")
	for _, p := range sim.Phases() {
		header = append(header, p.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for k := 1; k <= summary.Steps(); k++ {
		row := make([]string, 0, sim.NumPhases+1)
		row = append(row, strconv.Itoa(k))
		for _, p := range sim.Phases() {
			row = append(row, strconv.Itoa(summary.At(k, p)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// exportSummary writes the summary table as CSV to the file at path.
func exportSummary(path string, summary *sim.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := writeSummaryCSV(f, summary); err != nil {
		return fmt.Errorf("write summary to %s: %w", path, err)
	}
	return nil
}
