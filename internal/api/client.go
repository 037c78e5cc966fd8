package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vedur-cli/vedur/internal/models"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "vedur (+https://github.com/vedur-cli/vedur)"

	// maxErrorBody caps how much of a failed response is read for its reason
	maxErrorBody = 4 << 10
)

// Client is the API client for the Open-Meteo forecast API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *log.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL points the client at a different API host
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   BaseURL,
		userAgent: defaultUserAgent,
		logger:    log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	return c, nil
}

// BaseURL returns the API host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WeatherSearch fetches the hourly temperature and precipitation forecast for a
// coordinate. A successful response without hourly data returns an empty slice.
func (c *Client) WeatherSearch(ctx context.Context, lat, lng float64) ([]models.ForecastEntry, error) {
	body, err := c.WeatherSearchRaw(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	var resp models.ForecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	entries := resp.ToEntries()
	c.logger.Printf("forecast %s,%s: %d entries", models.FormatCoordinate(lat), models.FormatCoordinate(lng), len(entries))
	return entries, nil
}

// WeatherSearchRaw fetches the forecast and returns raw JSON
func (c *Client) WeatherSearchRaw(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return nil, ErrInvalidValue("latitude", lat)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return nil, ErrInvalidValue("longitude", lng)
	}

	params := url.Values{}
	params.Set("latitude", models.FormatCoordinate(lat))
	params.Set("longitude", models.FormatCoordinate(lng))
	params.Set("hourly", strings.Join(HourlyVariables, ","))
	params.Set("timezone", ForecastTimezone)
	params.Set("forecast_days", strconv.Itoa(ForecastDays))

	reqURL := c.baseURL + EndpointForecast + "?" + params.Encode()

	return c.doRequest(ctx, reqURL)
}

// errorResponse is the body Open-Meteo sends with 4xx responses
type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// doRequest performs an HTTP GET request
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Printf("GET %s", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		endpoint := extractEndpoint(reqURL)
		c.logger.Printf("GET %s: %s", endpoint, resp.Status)

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Reason != "" {
			return nil, NewAPIErrorWithMessage(resp.StatusCode, endpoint, apiErr.Reason)
		}
		return nil, NewAPIError(resp.StatusCode, resp.Status, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
