package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/saisie-livres/internal/config"
)

// ErrMissingCredentials is returned by NewClient when the API key or base id is empty.
var ErrMissingCredentials = errors.New("airtable api key and base id are required")

// Client exposes the Airtable operations used by the application.
type Client interface {
	CreateRecord(ctx context.Context, table string, fields map[string]any) (*Record, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an Airtable client scoped to the configured base.
func NewClient(cfg config.AirtableConfig) (*APIClient, error) {
	if !cfg.Configured() {
		return nil, ErrMissingCredentials
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, url.PathEscape(cfg.BaseID))).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	return &APIClient{httpClient: restyClient}, nil
}

// Record mirrors a single Airtable row.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime time.Time      `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

type createRecordRequest struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast"`
}

// APIError is a non-2xx Airtable response. Its text carries the remote error
// type verbatim (NOT_FOUND, INVALID_VALUE_FOR_COLUMN, ...).
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airtable api error: status=%d, type=%s", e.StatusCode, e.Type)
	}
	return fmt.Sprintf("airtable api error: status=%d, type=%s, message=%s", e.StatusCode, e.Type, e.Message)
}

// errorEnvelope decodes {"error": "NOT_FOUND"} as well as
// {"error": {"type": "...", "message": "..."}}.
type errorEnvelope struct {
	Type    string
	Message string
}

func (e *errorEnvelope) UnmarshalJSON(data []byte) error {
	var raw struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || len(raw.Error) == 0 {
		return nil
	}

	var code string
	if err := json.Unmarshal(raw.Error, &code); err == nil {
		e.Type = code
		return nil
	}

	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw.Error, &detail); err != nil {
		return nil
	}
	e.Type = detail.Type
	e.Message = detail.Message
	return nil
}

// CreateRecord inserts one row into table. It is not retried.
func (c *APIClient) CreateRecord(ctx context.Context, table string, fields map[string]any) (*Record, error) {
	result := new(Record)
	apiErr := new(errorEnvelope)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("table", table).
		SetBody(createRecordRequest{Fields: fields}).
		SetResult(result).
		SetError(apiErr).
		Post("/{table}")
	if err != nil && (resp == nil || !resp.IsError()) {
		return nil, fmt.Errorf("create airtable record: %w", err)
	}

	if resp.IsError() {
		out := &APIError{StatusCode: resp.StatusCode(), Type: apiErr.Type, Message: apiErr.Message}
		if out.Type == "" {
			out.Message = strings.TrimSpace(resp.String())
		}
		return nil, out
	}

	return result, nil
}
