package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/E-FEDOTOVA/callsync/internal/aggregate"
	"github.com/E-FEDOTOVA/callsync/internal/openai"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

func sampleClassification() *aggregate.Classification {
	top := types.SummaryRow{
		FirstName: "Jane", LastName: "Doe",
		TotalCalls: 300, ShortCallPct: 5, AvgInCallSec: 95.5,
		FirstCallTime: "08:30:00 AM", LastCallCompleteTime: "05:45:00 PM",
		Gaps15to30Count: 1, Gaps30PlusCount: 0,
	}
	low := types.SummaryRow{
		FirstName: "John", LastName: "Roe",
		TotalCalls: 90, ShortCallPct: 22.5, AvgInCallSec: 40,
		FirstCallTime: "10:00:00 AM", LastCallCompleteTime: "03:00:00 PM",
		Gaps15to30Count: 3, Gaps30PlusCount: 2,
	}
	return &aggregate.Classification{
		TopCalls:        []types.SummaryRow{top},
		TopInCallAvg:    []types.SummaryRow{top},
		TopEfficiency:   []types.SummaryRow{top},
		Underperformers: []types.SummaryRow{low},
		EarliestCaller:  top,
		LatestCaller:    top,
		TopGaps30Plus:   []types.SummaryRow{low, top},
		TopGaps15to30:   []types.SummaryRow{low, top},
	}
}

func TestBuildStats(t *testing.T) {
	stats := BuildStats(sampleClassification())

	if len(stats.TopPerformers.TotalCalls) != 1 || stats.TopPerformers.TotalCalls[0].TotalCalls != 300 {
		t.Errorf("unexpected top calls: %+v", stats.TopPerformers.TotalCalls)
	}
	if stats.TopPerformers.HighestCallEfficiency[0].CallEfficiencyPct != 95 {
		t.Errorf("expected efficiency 95, got %v", stats.TopPerformers.HighestCallEfficiency[0].CallEfficiencyPct)
	}
	if len(stats.Underperformers) != 1 || stats.Underperformers[0].FirstName != "John" {
		t.Errorf("unexpected underperformers: %+v", stats.Underperformers)
	}
	if stats.TimeUtilization.EarliestCaller.Time != "08:30:00 AM" {
		t.Errorf("unexpected earliest caller time: %s", stats.TimeUtilization.EarliestCaller.Time)
	}
	if stats.TimeUtilization.LatestCaller.Time != "05:45:00 PM" {
		t.Errorf("unexpected latest caller time: %s", stats.TimeUtilization.LatestCaller.Time)
	}
	if stats.TimeUtilization.FrequentGaps30Plus[0].Gaps != 2 {
		t.Errorf("expected 2 gaps for the top offender, got %d", stats.TimeUtilization.FrequentGaps30Plus[0].Gaps)
	}

	// The payload must serialize cleanly for the prompt.
	if _, err := json.Marshal(stats); err != nil {
		t.Fatalf("stats payload does not serialize: %v", err)
	}
}

func TestNarrate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "gpt-3.5-turbo" {
			t.Errorf("expected gpt-3.5-turbo, got %s", req.Model)
		}
		if req.Temperature == nil || *req.Temperature != 0.4 {
			t.Errorf("expected temperature 0.4, got %v", req.Temperature)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(req.Messages))
		}
		if !strings.Contains(req.Messages[1].Content, "Jane") {
			t.Error("user message should embed the statistics payload")
		}
		json.NewEncoder(w).Encode(openai.ChatResponse{
			Choices: []openai.Choice{
				{Message: openai.Message{Role: "assistant", Content: "<html>daily summary</html>"}},
			},
		})
	}))
	defer server.Close()

	gen := NewGenerator(
		openai.NewClient("test-key", openai.WithBaseURL(server.URL)),
		"gpt-3.5-turbo", 2000, 0.4, zerolog.Nop(),
	)
	narrative, err := gen.Narrate(context.Background(), sampleClassification())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative != "<html>daily summary</html>" {
		t.Errorf("unexpected narrative: %q", narrative)
	}
}

func TestNarratePropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"server_error","message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gen := NewGenerator(
		openai.NewClient("test-key", openai.WithBaseURL(server.URL)),
		"gpt-3.5-turbo", 2000, 0.4, zerolog.Nop(),
	)
	if _, err := gen.Narrate(context.Background(), sampleClassification()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAppendReportLink(t *testing.T) {
	url := "https://docs.google.com/spreadsheets/d/abc123"

	got := AppendReportLink("<p>summary</p>", url)
	if !strings.Contains(got, url) {
		t.Error("expected the link to be appended")
	}
	if !strings.HasPrefix(got, "<p>summary</p><hr>") {
		t.Errorf("expected narrative then divider, got %q", got)
	}

	// Appending again must not duplicate the link.
	again := AppendReportLink(got, url)
	if again != got {
		t.Error("expected no duplicate link when the narrative already has it")
	}
}
