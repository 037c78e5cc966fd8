package tui

import "github.com/vedur-cli/vedur/internal/search"

// searchResultMsg carries the settled outcome of a search back to the model.
// The controller drops it if a newer search was issued meanwhile.
type searchResultMsg struct {
	outcome search.Outcome
}
