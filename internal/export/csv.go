// Package export writes telemetry captured during a debug session to
// CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"

	"github.com/vburojevic/rdb/internal/telemetry"
)

// CSV writes one row of monitor names, one row per performance
// sample, a blank separator line, then the profiler's own rows.
//
// Samples are written oldest-first: the history stores newest-first,
// so iteration runs back-to-front and the file reads chronologically.
// An I/O failure aborts the export and is reported to the caller; the
// session is unaffected.
func CSV(w io.Writer, perf *telemetry.PerfHistory, prof *telemetry.Profiler) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(perf.Names()); err != nil {
		return fmt.Errorf("export: write monitor names: %w", err)
	}

	for i := perf.Len() - 1; i >= 0; i-- {
		row := lo.Map(perf.At(i), func(v float64, _ int) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		})
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write sample: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	if prof != nil {
		for _, row := range prof.CSVRows() {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("export: write profiler row: %w", err)
			}
		}
		cw.Flush()
	}
	return cw.Error()
}
