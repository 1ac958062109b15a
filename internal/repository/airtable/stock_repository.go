package airtable

import (
	"context"
	"errors"

	"go.uber.org/zap"

	client "github.com/mamadbah2/saisie-livres/pkg/clients/airtable"
)

// StockRepository appends stock entries to a single Airtable table.
type StockRepository struct {
	client client.Client
	table  string
	logger *zap.Logger
}

// NewStockRepository binds the Airtable client to the stock-entry table.
func NewStockRepository(c client.Client, table string, logger *zap.Logger) (*StockRepository, error) {
	if c == nil {
		return nil, errors.New("airtable client is nil")
	}
	if table == "" {
		return nil, errors.New("airtable table name must not be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StockRepository{client: c, table: table, logger: logger}, nil
}

// Insert creates one row and returns the id assigned by Airtable.
// Errors are returned unwrapped so the remote error text stays intact.
func (r *StockRepository) Insert(ctx context.Context, fields map[string]any) (string, error) {
	r.logger.Debug("inserting airtable record", zap.String("table", r.table), zap.Any("fields", fields))

	rec, err := r.client.CreateRecord(ctx, r.table, fields)
	if err != nil {
		return "", err
	}

	return rec.ID, nil
}
