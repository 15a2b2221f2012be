// Package api is a client for the Rick and Morty REST API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	// Avatar images are served as JPEG; PNG is accepted for other hosts.
	_ "image/jpeg"
	_ "image/png"

	"github.com/f3rmion/morty/internal/character"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://rickandmortyapi.com/api"

// ErrNotFound is returned (wrapped) when the API answers 404.
var ErrNotFound = character.ErrNotFound

// StatusError is a non-2xx response other than 404.
type StatusError struct {
	Code    int
	Message string // The API's "error" field, when present
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api returned %d", e.Code)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves requests unbounded; callers
	// cancel through the context instead.
	Timeout time.Duration
	// RequestsPerSecond throttles outgoing requests. Zero disables throttling.
	RequestsPerSecond float64
	Logger            *zap.Logger
}

// Client is a Rick and Morty API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a client from opts.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        log,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c, nil
}

// errorBody is the API's error payload.
type errorBody struct {
	Error string `json:"error"`
}

// ListCharacters fetches one page of the character collection.
func (c *Client) ListCharacters(ctx context.Context, f character.Filter) (*character.Page, error) {
	q := url.Values{}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Status != character.StatusAny {
		q.Set("status", string(f.Status))
	}
	if f.Species != "" {
		q.Set("species", f.Species)
	}

	var p character.Page
	if err := c.getJSON(ctx, "/character?"+q.Encode(), &p); err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	return &p, nil
}

// GetCharacter fetches a single character by ID.
func (c *Client) GetCharacter(ctx context.Context, id int) (*character.Character, error) {
	var ch character.Character
	if err := c.getJSON(ctx, "/character/"+strconv.Itoa(id), &ch); err != nil {
		return nil, fmt.Errorf("getting character %d: %w", id, err)
	}
	return &ch, nil
}

// FetchImage downloads and decodes the image at rawURL.
func (c *Client) FetchImage(ctx context.Context, rawURL string) (image.Image, error) {
	resp, err := c.do(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer c.closeBody(resp)

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.do(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	defer c.closeBody(resp)

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do performs a throttled GET and maps error statuses. The caller closes the
// body of a successful response.
func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	c.log.Debug("api request",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer c.closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	serr := &StatusError{Code: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		serr.Message = eb.Error
	}
	c.log.Warn("api error", zap.String("url", u), zap.Int("status", resp.StatusCode), zap.String("message", serr.Message))
	return nil, serr
}

func (c *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.log.Debug("close body failed", zap.Error(err))
	}
}
