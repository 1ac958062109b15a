package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/saisie-livres/internal/config"
)

// RecapRepository appends recap rows to a Google Sheet.
type RecapRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewRecapRepository builds a Sheets-backed recap writer. Without extra
// options it authenticates with the configured service-account file.
func NewRecapRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...option.ClientOption) (*RecapRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" || cfg.RecapRange == "" {
		return nil, errors.New("spreadsheet id and recap range are required")
	}

	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsPath),
			option.WithScopes(sheetsapi.SpreadsheetsScope),
		}
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &RecapRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.RecapRange,
		logger:        logger,
	}, nil
}

// AppendRows appends the rows after the last filled row of the recap range.
func (r *RecapRepository) AppendRows(ctx context.Context, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, r.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append recap rows into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("recap rows appended", zap.String("range", r.sheetRange), zap.Int("rows", len(rows)))
	return nil
}
