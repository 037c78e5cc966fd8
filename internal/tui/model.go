package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vedur-cli/vedur/internal/geo"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/search"
)

const (
	windowTitle     = "Weather"
	appTitle        = "🌞 Weather 🌧️"
	introText       = "Choose a location to see a temperature and precipitation forecast."
	locationsHeader = "Locations"
	myLocationEntry = "My location (requires permission)"
)

type focusPanel int

const (
	focusLocations focusPanel = iota
	focusResults
	focusCoordinates
)

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	ctrl      *search.Controller
	gate      *geo.Gate
	locations []models.Location
	timeout   time.Duration

	width  int
	height int

	focus focusPanel

	// Picker - entry 0 is "My location", entry i is locations[i-1]
	cursor int

	// Coordinate input opened with "/"
	coordInput textinput.Model
	coordErr   error

	// Result area
	state   search.State
	spinner spinner.Model
	results table.Model

	// Permission prompt for the pending "My location" search
	asking bool
}

// Option configures the Model
type Option func(*Model)

// WithGate sets the permission gate "My location" lookups wait on. The TUI
// asks the user to answer it while it is undecided.
func WithGate(g *geo.Gate) Option {
	return func(m *Model) {
		m.gate = g
	}
}

// WithRequestTimeout bounds each forecast lookup
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// New creates a new TUI model showing locations in the picker.
func New(ctrl *search.Controller, locations []models.Location, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "64.1355:-21.8954"
	ti.Prompt = "lat:lng > "
	ti.CharLimit = 40
	ti.Width = 30

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styleLoading),
	)

	tbl := table.New(
		table.WithFocused(false),
		table.WithStyles(tableStyles()),
	)

	m := Model{
		ctrl:       ctrl,
		locations:  locations,
		timeout:    apiTimeout,
		focus:      focusLocations,
		coordInput: ti,
		state:      ctrl.State(),
		spinner:    sp,
		results:    tbl,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// entryCount is the number of picker entries, "My location" included.
func (m Model) entryCount() int {
	return len(m.locations) + 1
}

// Init returns the initial command (window title).
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle)
}
