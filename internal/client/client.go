// Package client is a small HTTP client for the favorites API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charlesng35/favorites/internal/models"
)

// DefaultBaseURL is where the server listens with its default configuration.
const DefaultBaseURL = "http://localhost:4000"

const defaultTimeout = 15 * time.Second

// ErrUnexpectedResponse is returned when a success response cannot be decoded.
var ErrUnexpectedResponse = errors.New("client: unexpected response")

// Page is one page of the favorites list.
type Page struct {
	Data       []models.Favorite `json:"data"`
	NextCursor *uint             `json:"nextCursor"`
}

// FavoriteInput is the payload for creating a favorite.
type FavoriteInput struct {
	Title       string              `json:"title"`
	Type        models.FavoriteType `json:"type"`
	Director    string              `json:"director"`
	Budget      string              `json:"budget"`
	Location    string              `json:"location"`
	Duration    string              `json:"duration"`
	YearTime    string              `json:"yearTime"`
	Description *string             `json:"description,omitempty"`
}

// FavoritePatch is a partial update; nil fields are left unchanged.
type FavoritePatch struct {
	Title       *string              `json:"title,omitempty"`
	Type        *models.FavoriteType `json:"type,omitempty"`
	Director    *string              `json:"director,omitempty"`
	Budget      *string              `json:"budget,omitempty"`
	Location    *string              `json:"location,omitempty"`
	Duration    *string              `json:"duration,omitempty"`
	YearTime    *string              `json:"yearTime,omitempty"`
	Description *string              `json:"description,omitempty"`
}

// Issue is one validation failure reported by the server.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int     `json:"-"`
	Message    string  `json:"message"`
	Issues     []Issue `json:"issues,omitempty"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Issues) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if len(issue.Path) == 0 {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, strings.Join(issue.Path, ".")+": "+issue.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Client talks to a favorites server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. An empty baseURL uses DefaultBaseURL and a nil
// httpClient gets a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches one page. A nil cursor starts from the beginning.
func (c *Client) List(ctx context.Context, take int, cursor *uint) (*Page, error) {
	query := url.Values{}
	if take > 0 {
		query.Set("take", strconv.Itoa(take))
	}
	if cursor != nil {
		query.Set("cursor", strconv.FormatUint(uint64(*cursor), 10))
	}

	path := "/favorites"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page Page
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.Favorite{}
	}
	return &page, nil
}

// Get fetches a single favorite.
func (c *Client) Get(ctx context.Context, id uint) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := c.do(ctx, http.MethodGet, favoritePath(id), nil, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Create stores a new favorite and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, input FavoriteInput) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := c.do(ctx, http.MethodPost, "/favorites", input, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Update applies a partial update and returns the full stored entry.
func (c *Client) Update(ctx context.Context, id uint, patch FavoritePatch) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := c.do(ctx, http.MethodPut, favoritePath(id), patch, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Delete removes a favorite.
func (c *Client) Delete(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, favoritePath(id), nil, nil)
}

// Health checks that the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("%w: health status %q", ErrUnexpectedResponse, body.Status)
	}
	return nil
}

func favoritePath(id uint) string {
	return "/favorites/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(raw, apiErr); err != nil || strings.TrimSpace(apiErr.Message) == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", status)
	}
	return apiErr
}
