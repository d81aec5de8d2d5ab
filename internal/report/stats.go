package report

import (
	"github.com/E-FEDOTOVA/callsync/internal/aggregate"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

// Stats is the JSON statistics payload handed to the insight generator.
type Stats struct {
	TopPerformers   TopPerformers    `json:"top_performers"`
	Underperformers []PerformerEntry `json:"underperformers"`
	TimeUtilization TimeUtilization  `json:"time_utilization"`
}

type TopPerformers struct {
	TotalCalls               []CallCountEntry  `json:"total_calls"`
	HighestAverageInCallTime []InCallAvgEntry  `json:"highest_average_in_call_time"`
	HighestCallEfficiency    []EfficiencyEntry `json:"highest_call_efficiency"`
}

type TimeUtilization struct {
	EarliestCaller     CallerEntry `json:"earliest_caller"`
	LatestCaller       CallerEntry `json:"latest_caller"`
	FrequentGaps30Plus []GapEntry  `json:"frequent_gaps_30_plus_min"`
	FrequentGaps15to30 []GapEntry  `json:"frequent_gaps_15_30_min"`
}

type CallCountEntry struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	TotalCalls int    `json:"total_calls"`
}

type InCallAvgEntry struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	AvgInCallSec float64 `json:"total_in_call_average"`
}

type EfficiencyEntry struct {
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	CallEfficiencyPct float64 `json:"call_efficiency_pct"`
}

type GapEntry struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gaps      int    `json:"gaps"`
}

type CallerEntry struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Time      string `json:"time"`
}

// PerformerEntry carries the full row for an underperformer so the
// narrative can explain why the agent was flagged.
type PerformerEntry struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	TotalCalls      int     `json:"total_calls"`
	ShortCallPct    float64 `json:"short_call_pct"`
	AvgInCallSec    float64 `json:"total_in_call_average"`
	Gaps15to30Count int     `json:"gaps_15_30_min"`
	Gaps30PlusCount int     `json:"gaps_30_plus_min"`
}

// BuildStats flattens the classification into the serializable payload.
func BuildStats(c *aggregate.Classification) Stats {
	stats := Stats{
		TopPerformers: TopPerformers{
			TotalCalls:               make([]CallCountEntry, 0, len(c.TopCalls)),
			HighestAverageInCallTime: make([]InCallAvgEntry, 0, len(c.TopInCallAvg)),
			HighestCallEfficiency:    make([]EfficiencyEntry, 0, len(c.TopEfficiency)),
		},
		Underperformers: make([]PerformerEntry, 0, len(c.Underperformers)),
		TimeUtilization: TimeUtilization{
			EarliestCaller: CallerEntry{
				FirstName: c.EarliestCaller.FirstName,
				LastName:  c.EarliestCaller.LastName,
				Time:      c.EarliestCaller.FirstCallTime,
			},
			LatestCaller: CallerEntry{
				FirstName: c.LatestCaller.FirstName,
				LastName:  c.LatestCaller.LastName,
				Time:      c.LatestCaller.LastCallCompleteTime,
			},
			FrequentGaps30Plus: gapEntries(c.TopGaps30Plus, func(r types.SummaryRow) int { return r.Gaps30PlusCount }),
			FrequentGaps15to30: gapEntries(c.TopGaps15to30, func(r types.SummaryRow) int { return r.Gaps15to30Count }),
		},
	}

	for _, row := range c.TopCalls {
		stats.TopPerformers.TotalCalls = append(stats.TopPerformers.TotalCalls, CallCountEntry{
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			TotalCalls: row.TotalCalls,
		})
	}
	for _, row := range c.TopInCallAvg {
		stats.TopPerformers.HighestAverageInCallTime = append(stats.TopPerformers.HighestAverageInCallTime, InCallAvgEntry{
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			AvgInCallSec: row.AvgInCallSec,
		})
	}
	for _, row := range c.TopEfficiency {
		stats.TopPerformers.HighestCallEfficiency = append(stats.TopPerformers.HighestCallEfficiency, EfficiencyEntry{
			FirstName:         row.FirstName,
			LastName:          row.LastName,
			CallEfficiencyPct: row.CallEfficiencyPct(),
		})
	}
	for _, row := range c.Underperformers {
		stats.Underperformers = append(stats.Underperformers, PerformerEntry{
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			TotalCalls:      row.TotalCalls,
			ShortCallPct:    row.ShortCallPct,
			AvgInCallSec:    row.AvgInCallSec,
			Gaps15to30Count: row.Gaps15to30Count,
			Gaps30PlusCount: row.Gaps30PlusCount,
		})
	}

	return stats
}

func gapEntries(rows []types.SummaryRow, count func(types.SummaryRow) int) []GapEntry {
	entries := make([]GapEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, GapEntry{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Gaps:      count(row),
		})
	}
	return entries
}
