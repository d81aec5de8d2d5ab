package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/E-FEDOTOVA/callsync/internal/types"
)

// Columns is the report's fixed column order. The writer and the read-back
// parser both work from this layout, so the two passes cannot drift apart.
var Columns = []string{
	"First Name",
	"Last Name",
	"% Calls <0.2 min",
	"Total Calls",
	"First Call",
	"Last Call Complete",
	"Total Duration",
	"Total In Call",
	"Total In Call Average",
	"Number of Gaps (15-30 min)",
	"Gaps 15-30 min",
	"Number of Gaps (30+ min)",
	"Gaps 30+ min",
}

func headerValues() []interface{} {
	header := make([]interface{}, len(Columns))
	for i, name := range Columns {
		header[i] = name
	}
	return header
}

// RowValues lays out one summary in column order for the sheet.
func RowValues(s types.AgentSummary) []interface{} {
	return []interface{}{
		s.FirstName,
		s.LastName,
		s.ShortCallPct,
		s.TotalCalls,
		s.FirstCallTime,
		s.LastCallCompleteTime,
		s.TotalDurationSec,
		s.TotalInCallSec,
		s.AvgInCallSec,
		len(s.Gaps15to30),
		strings.Join(s.Gaps15to30, "; "),
		len(s.Gaps30Plus),
		strings.Join(s.Gaps30Plus, "; "),
	}
}

// RowStrings is RowValues rendered for plain-text outputs such as the CSV
// snapshot.
func RowStrings(s types.AgentSummary) []string {
	values := RowValues(s)
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = cellString(v)
	}
	return out
}

// ParseRow rebuilds a SummaryRow from a sheet row. The Values API hands
// cells back loosely typed, so every numeric field goes through a string
// round trip.
func ParseRow(raw []interface{}) (types.SummaryRow, error) {
	// The Values API omits trailing empty cells, so an agent with no 30+
	// minute gaps comes back without column M. Pad the trailing string
	// columns; a row cut before the last numeric column is malformed.
	if len(raw) < len(Columns)-1 {
		return types.SummaryRow{}, fmt.Errorf("expected at least %d columns, got %d", len(Columns)-1, len(raw))
	}
	for len(raw) < len(Columns) {
		raw = append(raw, "")
	}

	var row types.SummaryRow
	var err error
	row.FirstName = cellString(raw[0])
	row.LastName = cellString(raw[1])
	if row.ShortCallPct, err = cellFloat(raw[2]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[2], err)
	}
	if row.TotalCalls, err = cellInt(raw[3]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[3], err)
	}
	row.FirstCallTime = cellString(raw[4])
	row.LastCallCompleteTime = cellString(raw[5])
	if row.TotalDurationSec, err = cellInt(raw[6]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[6], err)
	}
	if row.TotalInCallSec, err = cellInt(raw[7]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[7], err)
	}
	if row.AvgInCallSec, err = cellFloat(raw[8]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[8], err)
	}
	if row.Gaps15to30Count, err = cellInt(raw[9]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[9], err)
	}
	if row.Gaps30PlusCount, err = cellInt(raw[11]); err != nil {
		return types.SummaryRow{}, fmt.Errorf("column %q: %w", Columns[11], err)
	}
	return row, nil
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func cellFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, fmt.Errorf("cannot read %T as number", v)
	}
}

func cellInt(v interface{}) (int, error) {
	f, err := cellFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
