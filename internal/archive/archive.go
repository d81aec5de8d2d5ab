// Package archive writes the run's local snapshot: the raw call list as
// JSON and the summary rows as CSV.
package archive

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/E-FEDOTOVA/callsync/internal/sheets"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

// Writer saves run artifacts under a target directory. A Writer with an
// empty directory is disabled and skips every save with a log line.
type Writer struct {
	dir    string
	logger zerolog.Logger
}

func NewWriter(dir string, logger zerolog.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logger.With().Str("component", "archive").Logger(),
	}
}

// SaveCalls writes the raw call records as pretty-printed JSON.
func (w *Writer) SaveCalls(date string, calls []types.CallRecord) error {
	if w.dir == "" {
		w.logger.Debug().Msg("archive dir not set, skipping call snapshot")
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("calls_%s.json", date))
	data, err := json.MarshalIndent(calls, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal calls: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Int("calls", len(calls)).Msg("call snapshot saved")
	return nil
}

// SaveSummary writes the summary rows as CSV in the report's column order.
func (w *Writer) SaveSummary(date string, summaries []types.AgentSummary) error {
	if w.dir == "" {
		w.logger.Debug().Msg("archive dir not set, skipping summary snapshot")
		return nil
	}
	if len(summaries) == 0 {
		w.logger.Warn().Msg("no summary rows to archive, writing header only")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("detailed_summary_%s.csv", date))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(sheets.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, summary := range summaries {
		if err := cw.Write(sheets.RowStrings(summary)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Int("rows", len(summaries)).Msg("summary snapshot saved")
	return nil
}
