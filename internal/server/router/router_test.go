package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/saisie-livres/internal/server/handlers"
	"github.com/mamadbah2/saisie-livres/internal/service/stock"
	"github.com/mamadbah2/saisie-livres/web"
)

type memoryStore struct {
	rows []map[string]any
}

func (m *memoryStore) Insert(_ context.Context, fields map[string]any) (string, error) {
	m.rows = append(m.rows, fields)
	return "rec1", nil
}

func newTestRouter(t *testing.T, store stock.Store) http.Handler {
	t.Helper()
	assets := web.Static()

	pages, err := handlers.NewPageHandler(assets, nil)
	require.NoError(t, err)

	svc := stock.NewService(store, nil, nil)
	return New(handlers.NewStockHandler(svc, nil), pages, assets, nil)
}

func TestRoutes(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(t, store)

	tests := []struct {
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{method: http.MethodGet, path: "/", status: http.StatusOK, contains: "Saisie de livres"},
		{method: http.MethodGet, path: "/static/app.js", status: http.StatusOK, contains: "/add_stock_entry"},
		{method: http.MethodGet, path: "/static/missing.png", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/static/style.css", status: http.StatusOK},
		{method: http.MethodGet, path: "/static/", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/static/index.html", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/get_stock_options", status: http.StatusOK, contains: `"etats":["EC","BE","TB","CN","NE"]`},
		{method: http.MethodGet, path: "/healthz", status: http.StatusOK, contains: `"store":"ready"`},
		{
			method:   http.MethodPost,
			path:     "/add_stock_entry",
			body:     `{"ean":"9782070368228","rayon":"Romans","etat":"CN","sous_rayon":"policier"}`,
			status:   http.StatusCreated,
			contains: "9782070368228",
		},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}

	require.Len(t, store.rows, 1)
	assert.Equal(t, "policier", store.rows[0]["sous rayon"])
}
