package search

import "github.com/vedur-cli/vedur/internal/models"

// Kind identifies which content the result area shows
type Kind int

const (
	KindHidden Kind = iota
	KindLoading
	KindError
	KindResults
)

func (k Kind) String() string {
	switch k {
	case KindHidden:
		return "hidden"
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindResults:
		return "results"
	}
	return "unknown"
}

// MarshalText encodes the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Messages shown in the error state
const (
	MsgNoData         = "No data available for this location."
	MsgGeoUnsupported = "Geolocation is not supported by your browser."
	MsgGeoFailed      = "Could not retrieve location."
)

// State is the content of the result area. Exactly one kind is shown at a time.
type State struct {
	Kind     Kind                   `json:"kind"`
	Message  string                 `json:"message,omitempty"`
	Location models.Location        `json:"location"`
	Entries  []models.ForecastEntry `json:"entries,omitempty"`
}

// Hidden is the state before the first search
func Hidden() State { return State{Kind: KindHidden} }

// Loading is shown while a search is in flight
func Loading() State { return State{Kind: KindLoading} }

// Failed is a terminal error state carrying a user-visible message
func Failed(message string) State { return State{Kind: KindError, Message: message} }

// Results is the terminal success state
func Results(loc models.Location, entries []models.ForecastEntry) State {
	return State{Kind: KindResults, Location: loc, Entries: entries}
}

// Visible reports whether the result area is drawn at all
func (s State) Visible() bool { return s.Kind != KindHidden }

// Terminal reports whether the search that produced s has settled
func (s State) Terminal() bool { return s.Kind == KindError || s.Kind == KindResults }
