package geo

import (
	"context"
	"fmt"
	"sync"
)

// Gate holds a one-time permission decision for sharing the user's location.
// Once decided the answer sticks for the lifetime of the Gate.
type Gate struct {
	mu      sync.Mutex
	decided chan struct{}
	allowed bool
	waiting int
}

// NewGate creates an undecided gate
func NewGate() *Gate {
	return &Gate{decided: make(chan struct{})}
}

// Grant allows location lookups. Calls after the first decision are ignored.
func (g *Gate) Grant() { g.decide(true) }

// Deny refuses location lookups. Calls after the first decision are ignored.
func (g *Gate) Deny() { g.decide(false) }

func (g *Gate) decide(allowed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.decided:
		return
	default:
	}
	g.allowed = allowed
	close(g.decided)
}

// Decided reports whether the user has answered
func (g *Gate) Decided() bool {
	select {
	case <-g.decided:
		return true
	default:
		return false
	}
}

// Waiting reports whether a lookup is currently blocked on the decision
func (g *Gate) Waiting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting > 0 && !g.Decided()
}

// Wait blocks until the gate is decided or ctx is done
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	g.waiting++
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.waiting--
		g.mu.Unlock()
	}()

	select {
	case <-g.decided:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrDenied, ctx.Err())
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.allowed {
		return ErrDenied
	}
	return nil
}

// Gated wraps l so every lookup first waits for the user's permission
func Gated(l Locator, g *Gate) Locator {
	return LocatorFunc(func(ctx context.Context) (Position, error) {
		if err := g.Wait(ctx); err != nil {
			return Position{}, err
		}
		return l.Locate(ctx)
	})
}
