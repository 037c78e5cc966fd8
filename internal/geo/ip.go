package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultIPLookupURL is the ip-api.com endpoint used to resolve the caller's position
	DefaultIPLookupURL = "http://ip-api.com/json"

	defaultIPTimeout = 5 * time.Second
)

// IPLocator resolves the current position from the public IP address
type IPLocator struct {
	httpClient *http.Client
	url        string
	logger     *log.Logger
}

// IPOption configures an IPLocator
type IPOption func(*IPLocator)

// WithLookupURL overrides the lookup endpoint
func WithLookupURL(u string) IPOption {
	return func(l *IPLocator) {
		l.url = strings.TrimRight(u, "/")
	}
}

// WithIPHTTPClient sets a custom HTTP client
func WithIPHTTPClient(hc *http.Client) IPOption {
	return func(l *IPLocator) {
		l.httpClient = hc
	}
}

// WithIPLogger sets the logger used for lookup tracing
func WithIPLogger(lg *log.Logger) IPOption {
	return func(l *IPLocator) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewIPLocator creates an IP based locator
func NewIPLocator(opts ...IPOption) *IPLocator {
	l := &IPLocator{
		httpClient: &http.Client{Timeout: defaultIPTimeout},
		url:        DefaultIPLookupURL,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ipResponse is the subset of the ip-api.com response we use
type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate implements Locator. Every failure wraps ErrUnavailable.
func (l *IPLocator) Locate(ctx context.Context) (Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Position{}, fmt.Errorf("%w: lookup returned %s", ErrUnavailable, resp.Status)
	}

	var body ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, fmt.Errorf("%w: failed to parse lookup response: %w", ErrUnavailable, err)
	}
	if body.Status != "success" {
		return Position{}, fmt.Errorf("%w: %s", ErrUnavailable, body.Message)
	}

	l.logger.Printf("ip lookup: %s (%v,%v)", body.City, body.Lat, body.Lon)
	return Position{Latitude: body.Lat, Longitude: body.Lon}, nil
}
