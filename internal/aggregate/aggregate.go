// Package aggregate turns a day's flat call list into per-agent performance
// summaries and, in a second pass, classifies the published rows.
package aggregate

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/E-FEDOTOVA/callsync/internal/timeutil"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

// ErrInvalidInput reports a call collection that is not a usable record
// sequence.
var ErrInvalidInput = errors.New("call collection is not a valid record sequence")

// Calls shorter than this count as dials that never became conversations.
const shortCallThresholdSec = 12

// Idle-gap bucket boundaries, in minutes of display-zone wall-clock time.
const (
	gapShortMin = 15
	gapLongMin  = 30
)

// Aggregate groups calls by agent and computes one AgentSummary per agent,
// in order of each agent's first appearance. Records without an agent are
// dropped. Malformed fields on individual records degrade that record's
// contribution; they never abort the aggregation.
func Aggregate(calls []types.CallRecord) ([]types.AgentSummary, error) {
	if calls == nil {
		return nil, ErrInvalidInput
	}

	var order []int64
	groups := make(map[int64][]types.CallRecord)
	for _, call := range calls {
		if call.UserID == nil {
			continue
		}
		id := *call.UserID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], call)
	}

	summaries := make([]types.AgentSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, summarize(groups[id]))
	}
	return summaries, nil
}

func summarize(calls []types.CallRecord) types.AgentSummary {
	// Identity comes from the first record as fetched, not the sorted order.
	summary := types.AgentSummary{
		FirstName:  orUnknown(calls[0].FirstName),
		LastName:   orUnknown(calls[0].LastName),
		TotalCalls: len(calls),
	}

	var shortCalls int
	for _, call := range calls {
		summary.TotalDurationSec += call.TotalDurationSec
		summary.TotalInCallSec += call.InCallDurationSec
		if call.TotalDurationSec < shortCallThresholdSec {
			shortCalls++
		}
	}
	if summary.TotalCalls > 0 {
		summary.AvgInCallSec = round2(float64(summary.TotalInCallSec) / float64(summary.TotalCalls))
		summary.ShortCallPct = round2(float64(shortCalls) / float64(summary.TotalCalls) * 100)
	}

	sorted := make([]types.CallRecord, len(calls))
	copy(sorted, calls)
	// Lexicographic order is chronological for the fixed-width ISO-8601
	// format; the Unknown sentinel sorts after every real timestamp.
	sort.SliceStable(sorted, func(i, j int) bool {
		return startKey(sorted[i]) < startKey(sorted[j])
	})

	summary.FirstCallTime = clockOrNA(sorted[0].StartTime)
	summary.LastCallCompleteTime = clockOrNA(sorted[len(sorted)-1].EndTime)

	for i := 1; i < len(sorted); i++ {
		prevEnd, err := displayTime(sorted[i-1].EndTime)
		if err != nil {
			continue
		}
		currStart, err := displayTime(sorted[i].StartTime)
		if err != nil {
			continue
		}
		gapMinutes := currStart.Sub(prevEnd).Minutes()
		switch {
		case gapMinutes >= gapLongMin:
			summary.Gaps30Plus = append(summary.Gaps30Plus, timeutil.ClockRange(prevEnd, currStart))
		case gapMinutes >= gapShortMin:
			summary.Gaps15to30 = append(summary.Gaps15to30, timeutil.ClockRange(prevEnd, currStart))
		}
	}

	return summary
}

func startKey(call types.CallRecord) string {
	if call.StartTime == "" {
		return timeutil.Unknown
	}
	return call.StartTime
}

// clockOrNA converts a UTC timestamp to a 12-hour display clock string,
// substituting "N/A" when either conversion step fails.
func clockOrNA(utc string) string {
	display, err := timeutil.ToDisplay(utc)
	if err != nil {
		return "N/A"
	}
	clock, err := timeutil.Clock12(display)
	if err != nil {
		return "N/A"
	}
	return clock
}

func displayTime(utc string) (time.Time, error) {
	display, err := timeutil.ToDisplay(utc)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.ParseDisplay(display)
}

func orUnknown(s string) string {
	if s == "" {
		return timeutil.Unknown
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
