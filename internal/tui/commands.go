package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vedur-cli/vedur/internal/search"
)

const (
	apiTimeout = 10 * time.Second

	// permissionTimeout is added to the lookup budget while the user still
	// has to answer the location prompt
	permissionTimeout = time.Minute
)

// runSearch returns a tea.Cmd that runs req and reports its outcome.
func runSearch(req *search.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return searchResultMsg{outcome: req.Run(ctx)}
	}
}
