// Package search drives the result area through one forecast lookup at a time:
// Loading, then exactly one of Error or Results.
//
// Each search gets a token from a monotonically increasing counter. A request
// runs without touching the controller and reports an Outcome; Apply accepts
// it only while its token is still the latest one, so a slow superseded search
// can never overwrite a newer one.
package search

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/vedur-cli/vedur/internal/geo"
	"github.com/vedur-cli/vedur/internal/models"
)

// WeatherClient returns the hourly forecast for a coordinate
type WeatherClient interface {
	WeatherSearch(ctx context.Context, lat, lng float64) ([]models.ForecastEntry, error)
}

// Controller owns the result area state
type Controller struct {
	client  WeatherClient
	locator geo.Locator
	logger  *log.Logger

	mu    sync.Mutex
	token uint64
	state State
}

// Option configures a Controller
type Option func(*Controller)

// WithLocator enables "My location" searches. Without a locator geolocation is
// reported as unsupported.
func WithLocator(l geo.Locator) Option {
	return func(c *Controller) {
		c.locator = l
	}
}

// WithLogger sets the logger state transitions are written to
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller in the hidden state
func New(client WeatherClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: log.New(io.Discard, "", 0),
		state:  Hidden(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Outcome is the settled result of a Request
type Outcome struct {
	Token uint64
	State State
}

// Request is one issued search. Run it exactly once and hand the outcome to Apply.
type Request struct {
	token uint64
	run   func(ctx context.Context) State
}

// Token returns the token the request was issued with
func (r *Request) Token() uint64 { return r.token }

// Run performs the lookup and returns its terminal state. It never panics and
// never mutates the controller.
func (r *Request) Run(ctx context.Context) (out Outcome) {
	out.Token = r.token
	defer func() {
		if p := recover(); p != nil {
			out.State = Failed(fmt.Sprint(p))
		}
	}()
	out.State = r.run(ctx)
	return out
}

// State returns the current result area state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Token returns the most recently issued token (0 before the first search)
func (c *Controller) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// GeolocationSupported reports whether a locator is configured
func (c *Controller) GeolocationSupported() bool {
	return c.locator != nil
}

// begin moves to Loading and issues a new token
func (c *Controller) begin(what string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token++
	c.state = Loading()
	c.logger.Printf("search #%d %s: loading", c.token, what)
	return c.token
}

// Search shows Loading and returns the request that fetches the forecast for loc.
func (c *Controller) Search(loc models.Location) *Request {
	token := c.begin(loc.Title)
	return &Request{
		token: token,
		run: func(ctx context.Context) State {
			return c.fetch(ctx, loc)
		},
	}
}

// SearchMyLocation shows Loading and returns the request that resolves the
// current position and then fetches its forecast. When geolocation is not
// supported the error state is set immediately and nil is returned.
func (c *Controller) SearchMyLocation() *Request {
	token := c.begin(models.MyLocationTitle)

	if c.locator == nil {
		c.Apply(Outcome{Token: token, State: Failed(MsgGeoUnsupported)})
		return nil
	}

	return &Request{
		token: token,
		run: func(ctx context.Context) State {
			var res geo.Result
			select {
			case res = <-geo.Request(ctx, c.locator):
			case <-ctx.Done():
				res.Err = ctx.Err()
			}
			if res.Err != nil {
				c.logger.Printf("search #%d: locate: %v", token, res.Err)
				return Failed(MsgGeoFailed)
			}
			loc := models.MyLocation(res.Position.Latitude, res.Position.Longitude)
			return c.fetch(ctx, loc)
		},
	}
}

func (c *Controller) fetch(ctx context.Context, loc models.Location) State {
	entries, err := c.client.WeatherSearch(ctx, loc.Lat, loc.Lng)
	if err != nil {
		return Failed(err.Error())
	}
	// An empty forecast is reported the same way as a failed lookup.
	if len(entries) == 0 {
		return Failed(MsgNoData)
	}
	return Results(loc, entries)
}

// Apply shows the outcome if it belongs to the latest search. Outcomes of
// superseded searches are dropped and Apply returns false.
func (c *Controller) Apply(out Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if out.Token != c.token {
		c.logger.Printf("search #%d: stale, latest is #%d", out.Token, c.token)
		return false
	}
	c.state = out.State
	if out.State.Kind == KindError {
		c.logger.Printf("search #%d: error: %s", out.Token, out.State.Message)
	} else {
		c.logger.Printf("search #%d: %s (%d entries)", out.Token, out.State.Kind, len(out.State.Entries))
	}
	return true
}

// Do runs req, applies its outcome and returns the resulting state. A nil
// request (already settled) just returns the current state.
func (c *Controller) Do(ctx context.Context, req *Request) State {
	if req != nil {
		c.Apply(req.Run(ctx))
	}
	return c.State()
}
