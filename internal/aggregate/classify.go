package aggregate

import (
	"errors"
	"sort"
	"time"

	"github.com/E-FEDOTOVA/callsync/internal/timeutil"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

// ErrNoValidData reports that no row survived time parsing, leaving nothing
// to rank for earliest or latest caller.
var ErrNoValidData = errors.New("no rows with parseable call times")

// ClassifyConfig carries the business-tunable classification constants.
// The thresholds are configuration, not a derived model.
type ClassifyConfig struct {
	ExcludeFirstNames []string // case-sensitive exact match
	MinCallVolume     int      // below this an agent is always an underperformer
	TopN              int      // performer list length
	TopGapN           int      // gap offender list length
}

// DefaultClassifyConfig mirrors the values the report has always used.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{
		ExcludeFirstNames: []string{"Cody", "Hannah", "Shannon", "Clinton"},
		MinCallVolume:     150,
		TopN:              3,
		TopGapN:           5,
	}
}

// Classification is the second-pass output handed to the insight generator.
type Classification struct {
	TopCalls        []types.SummaryRow
	TopInCallAvg    []types.SummaryRow
	TopEfficiency   []types.SummaryRow
	Underperformers []types.SummaryRow
	EarliestCaller  types.SummaryRow
	LatestCaller    types.SummaryRow
	TopGaps30Plus   []types.SummaryRow
	TopGaps15to30   []types.SummaryRow
}

// Classify ranks the published summary rows. The denylist is applied before
// any ranking or mean, so excluded agents influence nothing downstream.
func Classify(rows []types.SummaryRow, cfg ClassifyConfig) (*Classification, error) {
	filtered := make([]types.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if !contains(cfg.ExcludeFirstNames, row.FirstName) {
			filtered = append(filtered, row)
		}
	}

	var meanCalls, meanShortPct float64
	if len(filtered) > 0 {
		var sumCalls int
		var sumShortPct float64
		for _, row := range filtered {
			sumCalls += row.TotalCalls
			sumShortPct += row.ShortCallPct
		}
		meanCalls = float64(sumCalls) / float64(len(filtered))
		meanShortPct = sumShortPct / float64(len(filtered))
	}

	c := &Classification{
		TopCalls:      topN(filtered, cfg.TopN, func(r types.SummaryRow) float64 { return float64(r.TotalCalls) }),
		TopInCallAvg:  topN(filtered, cfg.TopN, func(r types.SummaryRow) float64 { return r.AvgInCallSec }),
		TopEfficiency: topN(filtered, cfg.TopN, func(r types.SummaryRow) float64 { return r.CallEfficiencyPct() }),
		TopGaps30Plus: topN(filtered, cfg.TopGapN, func(r types.SummaryRow) float64 { return float64(r.Gaps30PlusCount) }),
		TopGaps15to30: topN(filtered, cfg.TopGapN, func(r types.SummaryRow) float64 { return float64(r.Gaps15to30Count) }),
	}

	for _, row := range filtered {
		if row.TotalCalls < cfg.MinCallVolume ||
			float64(row.TotalCalls) < 0.75*meanCalls ||
			row.ShortCallPct > 1.5*meanShortPct {
			c.Underperformers = append(c.Underperformers, row)
		}
	}

	earliest, latest, err := timeExtremes(filtered)
	if err != nil {
		return nil, err
	}
	c.EarliestCaller = earliest
	c.LatestCaller = latest

	return c, nil
}

// topN returns the n largest rows by value, stable so ties keep input order.
func topN(rows []types.SummaryRow, n int, value func(types.SummaryRow) float64) []types.SummaryRow {
	ranked := make([]types.SummaryRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return value(ranked[i]) > value(ranked[j])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// timeExtremes finds the earliest first call and the latest completed call
// by pure time-of-day comparison. A row whose field does not parse is
// excluded from that extreme only.
func timeExtremes(rows []types.SummaryRow) (types.SummaryRow, types.SummaryRow, error) {
	var (
		earliest, latest         types.SummaryRow
		earliestAt, latestAt     time.Time
		haveEarliest, haveLatest bool
	)
	for _, row := range rows {
		if t, err := timeutil.ParseClock12(row.FirstCallTime); err == nil {
			if !haveEarliest || t.Before(earliestAt) {
				earliest, earliestAt, haveEarliest = row, t, true
			}
		}
		if t, err := timeutil.ParseClock12(row.LastCallCompleteTime); err == nil {
			if !haveLatest || t.After(latestAt) {
				latest, latestAt, haveLatest = row, t, true
			}
		}
	}
	if !haveEarliest || !haveLatest {
		return types.SummaryRow{}, types.SummaryRow{}, ErrNoValidData
	}
	return earliest, latest, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
