package types

// CallRecord is one outbound phone call, flattened and validated at the
// fetcher boundary. Records are fetched fresh each run and never mutated.
type CallRecord struct {
	UserID            *int64 // nil when the call has no agent attached
	FirstName         string
	LastName          string
	StartTime         string // ISO-8601 UTC, empty when absent
	EndTime           string // ISO-8601 UTC, empty when absent
	TotalDurationSec  int
	InCallDurationSec int
}

// AgentSummary is one agent's aggregated performance for the target day.
type AgentSummary struct {
	FirstName            string
	LastName             string
	ShortCallPct         float64 // % of calls under 12s total duration
	TotalCalls           int
	FirstCallTime        string // 12-hour clock, "N/A" when unconvertible
	LastCallCompleteTime string // 12-hour clock, "N/A" when unconvertible
	TotalDurationSec     int
	TotalInCallSec       int
	AvgInCallSec         float64
	Gaps15to30           []string // idle ranges in start-time order
	Gaps30Plus           []string
}

// SummaryRow is an AgentSummary as read back from the report sheet for the
// classification pass. Gap range lists collapse to their counts on the way
// back in.
type SummaryRow struct {
	FirstName            string
	LastName             string
	ShortCallPct         float64
	TotalCalls           int
	FirstCallTime        string
	LastCallCompleteTime string
	TotalDurationSec     int
	TotalInCallSec       int
	AvgInCallSec         float64
	Gaps15to30Count      int
	Gaps30PlusCount      int
}

// CallEfficiencyPct is the share of the agent's calls long enough to count
// as real conversations.
func (r SummaryRow) CallEfficiencyPct() float64 {
	return 100 - r.ShortCallPct
}
