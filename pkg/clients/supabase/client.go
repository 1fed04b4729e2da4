// Package supabase is a small PostgREST client covering the table operations the
// import pipeline needs.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/tablestore"
)

const (
	restPath       = "/rest/v1"
	orderByCreated = "created_at.desc"
)

var _ tablestore.Store = (*APIClient)(nil)

// APIClient is a resty-backed implementation of tablestore.Store talking to the
// Supabase REST endpoint.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a Supabase REST client using the provided configuration values.
func NewClient(cfg config.SupabaseConfig) *APIClient {
	base := strings.TrimSuffix(cfg.URL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+restPath).
		SetHeader("apikey", cfg.Key).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Key)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// APIError mirrors the PostgREST error payload.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase api error: status=%d", e.Status)
	}
	return e.Message
}

// Count issues a head request asking PostgREST for the exact row count.
func (c *APIClient) Count(ctx context.Context, collection string) (int, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "*").
		Head(collection)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	if err := checkResponse(resp, nil); err != nil {
		return 0, err
	}

	return parseContentRange(resp.Header().Get("Content-Range"))
}

// Insert posts docs in one request and returns the stored representation.
func (c *APIClient) Insert(ctx context.Context, collection string, docs []models.Document) ([]models.Document, error) {
	var result []models.Document
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(docs).
		SetResult(&result).
		SetError(apiErr).
		Post(collection)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", collection, err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

// SelectRange reads one window of rows ordered by creation time, newest first.
func (c *APIClient) SelectRange(ctx context.Context, collection string, offset, limit int) ([]models.Document, error) {
	var result []models.Document
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  orderByCreated,
			"offset": strconv.Itoa(offset),
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&result).
		SetError(apiErr).
		Get(collection)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", collection, err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteAll removes every row. PostgREST refuses unfiltered deletes, so the filter
// matches every positive id.
func (c *APIClient) DeleteAll(ctx context.Context, collection string) error {
	apiErr := new(APIError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("id", "neq.0").
		SetError(apiErr).
		Delete(collection)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	return checkResponse(resp, apiErr)
}

func checkResponse(resp *resty.Response, apiErr *APIError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	if apiErr == nil {
		apiErr = new(APIError)
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}

// parseContentRange extracts the total from headers such as "0-24/3573" or "*/0".
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, fmt.Errorf("unexpected content-range %q", header)
	}

	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("content-range %q carries no exact count", header)
	}

	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parse content-range %q: %w", header, err)
	}
	return n, nil
}
