package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	sdkhttp "github.com/namebay/namebay/pkg/sdk/http"
)

const (
	searchEndpoint = "/api/v1/names/search"
	nameEndpoint   = "/api/v1/names/"
)

// Client handles marketplace backend interactions.
type Client struct {
	http *sdkhttp.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, retries int) *Client {
	return &Client{
		http: sdkhttp.NewClient(baseURL, sdkhttp.Options{
			Timeout:    timeout,
			RetryCount: retries,
		}),
	}
}

// SearchNames fetches one page of search results. The raw body is returned
// alongside the decoded envelope so the caller can cache it verbatim.
func (c *Client) SearchNames(ctx context.Context, f SearchFilters, page, limit int) (*SearchResponse, []byte, error) {
	params := BuildSearchParams(f, page, limit)

	var resp SearchResponse
	body, err := c.http.Get(ctx, searchEndpoint, params, &resp)
	if err != nil {
		return nil, body, err
	}
	if !resp.Success {
		if resp.Error != nil {
			return nil, body, errors.Errorf("search failed: %s (%s)", resp.Error.Message, resp.Error.Code)
		}
		return nil, body, errors.New("search failed: success=false with no error block")
	}
	return &resp, body, nil
}

// DecodeSearchResponse decodes a cached raw body back into an envelope.
func DecodeSearchResponse(body []byte) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "decode cached search page")
	}
	return &resp, nil
}

// GetName fetches a single name record by its full name (e.g. "abc.eth").
func (c *Client) GetName(ctx context.Context, name string) (*Name, error) {
	var out struct {
		Data    Name      `json:"data"`
		Success bool      `json:"success"`
		Error   *APIError `json:"error,omitempty"`
	}
	if _, err := c.http.Get(ctx, nameEndpoint+name, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		if out.Error != nil {
			return nil, errors.Errorf("get name: %s (%s)", out.Error.Message, out.Error.Code)
		}
		return nil, errors.New("get name: success=false")
	}
	return &out.Data, nil
}
