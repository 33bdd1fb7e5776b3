package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/cadence/internal/converters"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// APIError is a non-2xx response other than 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Status, e.Message)
}

// Client talks to a `cadence serve` instance and implements database.ItemRepository.
type Client struct {
	baseURL string
	http    *http.Client
}

// Compile-time verification that *Client implements ItemRepository
var _ database.ItemRepository = (*Client)(nil)

// NewClient creates a client for baseURL. timeout bounds each request; zero means none.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchAll(ctx context.Context, scope types.Scope) ([]models.Item, error) {
	var list converters.ItemList
	if err := c.do(ctx, http.MethodGet, "/api/scopes/"+url.PathEscape(scope.String())+"/items", nil, &list); err != nil {
		return nil, err
	}
	return converters.ItemsFromDTOs(list.Items)
}

func (c *Client) Get(ctx context.Context, id types.ItemID) (*models.Item, error) {
	var dto converters.ItemDTO
	if err := c.do(ctx, http.MethodGet, "/api/items/"+url.PathEscape(id.String()), nil, &dto); err != nil {
		return nil, err
	}
	it, err := converters.ItemFromDTO(dto)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) Insert(ctx context.Context, item models.Item) (*models.Item, error) {
	body := converters.CreateItemBody{
		ID:     item.ID.String(),
		Bucket: item.Bucket.String(),
		Title:  item.Payload.Title,
		Notes:  item.Payload.Notes,
	}
	var dto converters.ItemDTO
	if err := c.do(ctx, http.MethodPost, "/api/scopes/"+url.PathEscape(item.Scope.String())+"/items", body, &dto); err != nil {
		return nil, err
	}
	created, err := converters.ItemFromDTO(dto)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePosition(ctx context.Context, id types.ItemID, bucket types.Bucket, position int) error {
	body := converters.PositionBody{Bucket: bucket.String(), Position: &position}
	return c.do(ctx, http.MethodPatch, "/api/items/"+url.PathEscape(id.String())+"/position", body, nil)
}

func (c *Client) Delete(ctx context.Context, id types.ItemID) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id.String()), nil, nil)
}

// Health returns nil when the server answers /health with 200.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", database.ErrItemNotFound, msg)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return err.Error()
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(data))
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
