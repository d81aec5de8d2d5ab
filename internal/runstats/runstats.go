// Package runstats accounts for a single pipeline run: per-hour fetch
// outcomes and stage counters, reported once at the end of the run.
package runstats

import (
	"time"

	"github.com/rs/zerolog"
)

// HourResult is the structured outcome of one hour window's fetch.
type HourResult struct {
	Hour    int // display-zone hour 0-23
	UTCHour int
	Pages   int
	Records int
	Err     error // nil on success; a failed hour may still carry records
}

// Stats is carried through a run by value reference; the run is
// single-threaded so there is no locking.
type Stats struct {
	Started          time.Time
	Hours            []HourResult
	RecordsFetched   int
	AgentsSummarized int

	FetchDuration   time.Duration
	PublishDuration time.Duration
	NarrateDuration time.Duration
}

func New() *Stats {
	return &Stats{Started: time.Now()}
}

// RecordHour records one hour window's outcome.
func (s *Stats) RecordHour(r HourResult) {
	s.Hours = append(s.Hours, r)
	s.RecordsFetched += r.Records
}

// FailedHours counts hour windows that ended in an error.
func (s *Stats) FailedHours() int {
	var failed int
	for _, h := range s.Hours {
		if h.Err != nil {
			failed++
		}
	}
	return failed
}

// Pages counts fetched pages across all hour windows.
func (s *Stats) Pages() int {
	var pages int
	for _, h := range s.Hours {
		pages += h.Pages
	}
	return pages
}

// LogSummary emits the end-of-run accounting line.
func (s *Stats) LogSummary(logger zerolog.Logger) {
	logger.Info().
		Int("hours_fetched", len(s.Hours)).
		Int("hours_failed", s.FailedHours()).
		Int("pages", s.Pages()).
		Int("records_fetched", s.RecordsFetched).
		Int("agents_summarized", s.AgentsSummarized).
		Dur("fetch_duration", s.FetchDuration).
		Dur("publish_duration", s.PublishDuration).
		Dur("narrate_duration", s.NarrateDuration).
		Dur("total_duration", time.Since(s.Started)).
		Msg("run complete")
}
