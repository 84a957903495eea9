package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/crepepos/backoffice/internal/report"
)

// Exporter writes grouped expense summaries to a spreadsheet.
type Exporter struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewExporter creates an exporter after validating the configuration
// and authenticating.
func NewExporter(ctx context.Context, config Config, logger *slog.Logger) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Exporter{
		service: service,
		logger:  logger,
		config:  config,
	}, nil
}

// Export clears the target sheet and writes the summary for one branch
// and period.
func (e *Exporter) Export(ctx context.Context, branchName string, start, end time.Time, grouped *report.GroupedExpenses) error {
	e.logger.Info("starting expense summary export",
		"branch", branchName,
		"categories", len(grouped.Categories),
		"period", fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")))

	spreadsheetID, err := e.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if _, err := e.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareRows(branchName, start, end, grouped)

	valueRange := &sheets.ValueRange{Values: values}
	_, err = e.service.Spreadsheets.Values.Update(spreadsheetID, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if e.config.EnableFormatting {
		if err := e.applyFormatting(ctx, spreadsheetID); err != nil {
			// Formatting is cosmetic; the data is already written.
			e.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	e.logger.Info("expense summary export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// prepareRows flattens the grouped tree into sheet rows: a title block,
// then one row per category with its subcategories indented below it.
func prepareRows(branchName string, start, end time.Time, grouped *report.GroupedExpenses) [][]any {
	estimated := 6 + len(grouped.Categories)
	for _, cat := range grouped.Categories {
		estimated += len(cat.Subcategories)
	}
	values := make([][]any, 0, estimated)

	values = append(values,
		[]any{"Expense Summary", branchName},
		[]any{"Period", fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))},
		[]any{"Total", grouped.GroupedTotal.StringFixed(2)},
		[]any{},
		[]any{"Category", "Subcategory", "Expenses", "Amount"},
	)

	for _, cat := range grouped.Categories {
		values = append(values, []any{cat.Name, "", "", cat.Total.StringFixed(2)})
		for _, sub := range cat.Subcategories {
			values = append(values, []any{"", sub.Name, len(sub.Expenses), sub.Total.StringFixed(2)})
		}
	}

	return values
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		var token *oauth2.Token
		if config.RefreshToken != "" {
			token = &oauth2.Token{
				RefreshToken: config.RefreshToken,
				TokenType:    "Bearer",
			}
		} else {
			var err error
			token, err = GetOrCreateToken(ctx, config)
			if err != nil {
				return nil, err
			}
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (e *Exporter) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if e.config.SpreadsheetID != "" {
		if _, err := e.service.Spreadsheets.Get(e.config.SpreadsheetID).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", e.config.SpreadsheetID, err)
		}
		return e.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    e.config.SpreadsheetName,
			TimeZone: e.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "Expenses"}},
		},
	}

	created, err := e.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	e.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// applyFormatting bolds the title and column header rows.
func (e *Exporter) applyFormatting(ctx context.Context, spreadsheetID string) error {
	bold := &sheets.CellFormat{TextFormat: &sheets.TextFormat{Bold: true}}

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range:  &sheets.GridRange{StartRowIndex: 0, EndRowIndex: 1},
				Cell:   &sheets.CellData{UserEnteredFormat: bold},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		},
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range:  &sheets.GridRange{StartRowIndex: 4, EndRowIndex: 5},
				Cell:   &sheets.CellData{UserEnteredFormat: bold},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		},
	}

	_, err := e.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()

	return err
}
