// Package ringover fetches a day's outbound call logs from the Ringover
// public API, one display-zone hour window at a time.
package ringover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/E-FEDOTOVA/callsync/internal/runstats"
	"github.com/E-FEDOTOVA/callsync/internal/types"
)

const defaultBaseURL = "https://public-api-us.ringover.com"

// The API stores timestamps in UTC; window bounds are display-zone (UTC-5)
// hours shifted forward, matching what the report's day means on the floor.
const displayToUTCOffset = 5

// APIError represents a non-2xx response from the calls endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ringover API error (status %d): %s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the Ringover calls API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets a custom HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new Ringover API client.
func NewClient(apiKey string, logger zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("component", "ringover").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDay fetches call logs for every hour of the target date, sequentially.
// A failed hour is logged, recorded in stats and skipped; whatever pages that
// hour already returned are kept. Cancelling ctx stops after the current
// hour, yielding the completed hours only.
func (c *Client) FetchDay(ctx context.Context, date string, stats *runstats.Stats) []types.CallRecord {
	var all []types.CallRecord
	for hour := 0; hour < 24; hour++ {
		if ctx.Err() != nil {
			c.logger.Warn().Int("hour", hour).Msg("fetch interrupted, keeping completed hours")
			break
		}
		utcHour := (hour + displayToUTCOffset) % 24
		records, pages, err := c.fetchHour(ctx, date, utcHour)
		if err != nil {
			c.logger.Error().Err(err).Int("hour", hour).Int("utc_hour", utcHour).Msg("hour window failed")
		} else {
			c.logger.Info().Int("hour", hour).Int("utc_hour", utcHour).Int("calls", len(records)).Msg("hour window fetched")
		}
		stats.RecordHour(runstats.HourResult{
			Hour:    hour,
			UTCHour: utcHour,
			Pages:   pages,
			Records: len(records),
			Err:     err,
		})
		all = append(all, records...)
	}
	return all
}

// fetchHour pages through one UTC hour window until an empty page. A failed
// page ends the window with an error, returning the pages gathered so far.
func (c *Client) fetchHour(ctx context.Context, date string, utcHour int) ([]types.CallRecord, int, error) {
	var (
		records []types.CallRecord
		pages   int
		offset  int
	)
	for {
		page, err := c.fetchPage(ctx, date, utcHour, offset)
		if err != nil {
			return records, pages, err
		}
		if len(page) == 0 {
			return records, pages, nil
		}
		pages++
		offset += len(page)
		for _, call := range page {
			records = append(records, call.record())
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, date string, utcHour, offset int) ([]wireCall, error) {
	params := url.Values{
		"start_date":      {fmt.Sprintf("%sT%02d:00:00.53Z", date, utcHour)},
		"end_date":        {fmt.Sprintf("%sT%02d:59:59.53Z", date, utcHour)},
		"direction":       {"out"},
		"type":            {"PHONE"},
		"filter":          {"all"},
		"limit_offset":    {strconv.Itoa(offset)},
		"limit_count":     {"0"},
		"ascending_order": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v2/calls?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope callListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return envelope.CallList, nil
}
