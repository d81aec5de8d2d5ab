package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "fractional seconds",
			input: "2025-02-10T14:30:00.530Z",
			want:  "2025-02-10 09:30:00",
		},
		{
			name:  "whole seconds",
			input: "2025-02-10T14:30:00Z",
			want:  "2025-02-10 09:30:00",
		},
		{
			name:  "crosses midnight backwards",
			input: "2025-02-10T03:00:00Z",
			want:  "2025-02-09 22:00:00",
		},
		{
			name:  "empty passes through",
			input: "",
			want:  Unknown,
		},
		{
			name:  "sentinel passes through",
			input: Unknown,
			want:  Unknown,
		},
		{
			name:    "missing zulu suffix",
			input:   "2025-02-10 14:30:00",
			wantErr: true,
		},
		{
			name:    "numeric offset rejected",
			input:   "2025-02-10T14:30:00+05:00",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not a timestamp",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDisplay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClock12(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "morning",
			input: "2025-02-10 09:30:00",
			want:  "09:30:00 AM",
		},
		{
			name:  "afternoon",
			input: "2025-02-10 14:05:09",
			want:  "02:05:09 PM",
		},
		{
			name:  "midnight",
			input: "2025-02-10 00:00:00",
			want:  "12:00:00 AM",
		},
		{
			name:    "sentinel does not reformat",
			input:   Unknown,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clock12(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseClock12(t *testing.T) {
	got, err := ParseClock12("02:05:09 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 14 || got.Minute() != 5 || got.Second() != 9 {
		t.Errorf("expected 14:05:09, got %v", got)
	}

	got, err = ParseClock12("09:30 AM")
	if err != nil {
		t.Fatalf("unexpected error for short form: %v", err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("expected 09:30, got %v", got)
	}

	if _, err := ParseClock12("N/A"); err == nil {
		t.Error("expected error for N/A")
	}
}

func TestClockRange(t *testing.T) {
	from := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 10, 9, 40, 0, 0, time.UTC)
	if got := ClockRange(from, to); got != "09:00 AM - 09:40 AM" {
		t.Errorf("expected %q, got %q", "09:00 AM - 09:40 AM", got)
	}
}

func TestSentinelSortsLast(t *testing.T) {
	// Group sorting relies on Unknown comparing greater than any ISO-8601
	// timestamp.
	if !(Unknown > "2999-12-31T23:59:59Z") {
		t.Error("sentinel must sort after every real timestamp")
	}
}
