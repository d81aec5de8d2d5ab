// Package sheets publishes the detailed summary to a Google Sheets document
// in a named Drive folder, and reads it back for the classification pass.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/E-FEDOTOVA/callsync/internal/types"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Sink writes and reads the daily report spreadsheet.
type Sink struct {
	sheets     *sheetsapi.Service
	drive      *drive.Service
	folderName string
	logger     zerolog.Logger
}

// NewSink builds authenticated Sheets and Drive clients from a service
// account credentials file.
func NewSink(ctx context.Context, credentialsFile, folderName string, logger zerolog.Logger) (*Sink, error) {
	sheetsSvc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return &Sink{
		sheets:     sheetsSvc,
		drive:      driveSvc,
		folderName: folderName,
		logger:     logger.With().Str("component", "sheets").Logger(),
	}, nil
}

// Publish overwrites the named document with the summary rows: any existing
// document of the same name in the folder is deleted first, then a new one
// is created, filled and formatted. Returns the spreadsheet ID and URL.
func (s *Sink) Publish(ctx context.Context, name string, summaries []types.AgentSummary) (string, string, error) {
	folderID, err := s.folderID(ctx)
	if err != nil {
		return "", "", err
	}

	if err := s.deleteExisting(ctx, name, folderID); err != nil {
		return "", "", err
	}

	spreadsheet, err := s.sheets.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: name},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to create spreadsheet %q: %w", name, err)
	}

	_, err = s.drive.Files.Update(spreadsheet.SpreadsheetId, &drive.File{}).
		AddParents(folderID).
		RemoveParents("root").
		Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to move spreadsheet into %q: %w", s.folderName, err)
	}

	values := [][]interface{}{headerValues()}
	for _, summary := range summaries {
		values = append(values, RowValues(summary))
	}
	_, err = s.sheets.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, "A1", &sheetsapi.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to write summary rows: %w", err)
	}

	if err := s.applyFormatting(ctx, spreadsheet.SpreadsheetId); err != nil {
		return "", "", err
	}

	s.logger.Info().
		Str("spreadsheet", name).
		Str("folder", s.folderName).
		Int("rows", len(summaries)).
		Msg("report published")
	return spreadsheet.SpreadsheetId, spreadsheet.SpreadsheetUrl, nil
}

// Read returns the data rows of a published report, skipping the header.
func (s *Sink) Read(ctx context.Context, spreadsheetID string) ([]types.SummaryRow, error) {
	resp, err := s.sheets.Spreadsheets.Values.Get(spreadsheetID, "A1:M").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read report back: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}
	rows := make([]types.SummaryRow, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		row, err := ParseRow(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse report row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// folderID looks up the configured Drive folder by name. The folder must
// exist; it is never created here.
func (s *Sink) folderID(ctx context.Context) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(s.folderName), folderMimeType)
	resp, err := s.drive.Files.List().Q(query).Spaces("drive").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q: %w", s.folderName, err)
	}
	if len(resp.Files) == 0 {
		return "", fmt.Errorf("drive folder %q not found, create it manually", s.folderName)
	}
	return resp.Files[0].Id, nil
}

// deleteExisting removes same-name documents so the run has overwrite
// semantics, not versioning.
func (s *Sink) deleteExisting(ctx context.Context, name, folderID string) error {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), folderID)
	resp, err := s.drive.Files.List().Q(query).Spaces("drive").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to look up existing report %q: %w", name, err)
	}
	for _, file := range resp.Files {
		if err := s.drive.Files.Delete(file.Id).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to delete existing report %q: %w", name, err)
		}
		s.logger.Info().Str("spreadsheet", name).Msg("deleted existing report")
	}
	return nil
}

// applyFormatting wraps the header row and the gap-list columns (G, I) and
// formats the First Call / Last Call Complete columns (E, F) as times.
func (s *Sink) applyFormatting(ctx context.Context, spreadsheetID string) error {
	wrap := &sheetsapi.CellData{
		UserEnteredFormat: &sheetsapi.CellFormat{WrapStrategy: "WRAP"},
	}
	requests := []*sheetsapi.Request{
		{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range:  &sheetsapi.GridRange{SheetId: 0, StartRowIndex: 0, EndRowIndex: 1},
				Cell:   wrap,
				Fields: "userEnteredFormat.wrapStrategy",
			},
		},
		{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range:  &sheetsapi.GridRange{SheetId: 0, StartColumnIndex: 6, EndColumnIndex: 7},
				Cell:   wrap,
				Fields: "userEnteredFormat.wrapStrategy",
			},
		},
		{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range:  &sheetsapi.GridRange{SheetId: 0, StartColumnIndex: 8, EndColumnIndex: 9},
				Cell:   wrap,
				Fields: "userEnteredFormat.wrapStrategy",
			},
		},
		{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range: &sheetsapi.GridRange{SheetId: 0, StartColumnIndex: 4, EndColumnIndex: 6},
				Cell: &sheetsapi.CellData{
					UserEnteredFormat: &sheetsapi.CellFormat{
						NumberFormat: &sheetsapi.NumberFormat{
							Type:    "TIME",
							Pattern: "hh:mm AM/PM",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
	}

	_, err := s.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to apply formatting: %w", err)
	}
	return nil
}

// escapeQuery escapes single quotes for Drive query string literals.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
