package ringover

import "github.com/E-FEDOTOVA/callsync/internal/types"

// callListEnvelope is the response body of GET /v2/calls.
type callListEnvelope struct {
	CallList []wireCall `json:"call_list"`
}

// wireCall is a call record as the API serializes it. Every field is
// optional on the wire; defaults are applied in record.
type wireCall struct {
	User           *wireUser `json:"user"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	TotalDuration  *int      `json:"total_duration"`
	InCallDuration *int      `json:"incall_duration"`
}

type wireUser struct {
	UserID    *int64 `json:"user_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// record flattens the wire shape into the pipeline's call record, applying
// the documented defaults: missing durations are zero, a missing user leaves
// the record agent-less so aggregation drops it.
func (w wireCall) record() types.CallRecord {
	rec := types.CallRecord{
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	}
	if w.TotalDuration != nil {
		rec.TotalDurationSec = *w.TotalDuration
	}
	if w.InCallDuration != nil {
		rec.InCallDurationSec = *w.InCallDuration
	}
	if w.User != nil {
		rec.UserID = w.User.UserID
		rec.FirstName = w.User.FirstName
		rec.LastName = w.User.LastName
	}
	return rec
}
