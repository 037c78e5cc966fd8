// Package geo provides the host geolocation capability: a single-shot lookup
// of the current position that either yields coordinates or a reason it could
// not.
package geo

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDenied indicates the user refused to share their location
	ErrDenied = errors.New("location permission denied")

	// ErrUnavailable indicates the position could not be determined
	ErrUnavailable = errors.New("location unavailable")
)

// Position is a latitude/longitude pair in decimal degrees
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator determines the current position
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func(ctx context.Context) (Position, error)

// Locate calls f(ctx)
func (f LocatorFunc) Locate(ctx context.Context) (Position, error) {
	return f(ctx)
}

// Result is the settled outcome of one position request
type Result struct {
	Position Position
	Err      error
}

// Request starts a single position lookup and returns a channel that receives
// exactly one Result. Panics in the locator are reported as ErrUnavailable.
func Request(ctx context.Context, l Locator) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- Result{Err: fmt.Errorf("%w: %v", ErrUnavailable, r)}
			}
		}()
		pos, err := l.Locate(ctx)
		ch <- Result{Position: pos, Err: err}
	}()
	return ch
}

// Static returns a Locator that always reports pos
func Static(pos Position) Locator {
	return LocatorFunc(func(ctx context.Context) (Position, error) {
		if err := ctx.Err(); err != nil {
			return Position{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return pos, nil
	})
}
