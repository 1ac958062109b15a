package airtable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/mamadbah2/saisie-livres/pkg/clients/airtable"
)

type stubClient struct {
	table  string
	fields map[string]any
	err    error
}

func (s *stubClient) CreateRecord(_ context.Context, table string, fields map[string]any) (*client.Record, error) {
	s.table = table
	s.fields = fields
	if s.err != nil {
		return nil, s.err
	}
	return &client.Record{ID: "rec42", Fields: fields}, nil
}

func TestNewStockRepositoryValidation(t *testing.T) {
	_, err := NewStockRepository(nil, "Stock", nil)
	assert.Error(t, err)

	_, err = NewStockRepository(&stubClient{}, "", nil)
	assert.Error(t, err)
}

func TestInsert(t *testing.T) {
	stub := &stubClient{}
	repo, err := NewStockRepository(stub, "SAISIE DE LIVRES", nil)
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), map[string]any{"EAN": "9782070368228"})
	require.NoError(t, err)
	assert.Equal(t, "rec42", id)
	assert.Equal(t, "SAISIE DE LIVRES", stub.table)
	assert.Equal(t, "9782070368228", stub.fields["EAN"])
}

func TestInsertKeepsRemoteError(t *testing.T) {
	remote := &client.APIError{StatusCode: 404, Type: "NOT_FOUND"}
	repo, err := NewStockRepository(&stubClient{err: remote}, "Stock", nil)
	require.NoError(t, err)

	_, err = repo.Insert(context.Background(), map[string]any{})
	assert.Same(t, remote, err)
}
