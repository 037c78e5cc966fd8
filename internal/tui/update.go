package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/output"
	"github.com/vedur-cli/vedur/internal/search"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetHeight(m.tableHeight())
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case spinner.TickMsg:
		// Stop ticking once the search has settled
		if m.state.Kind != search.KindLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusCoordinates {
		var cmd tea.Cmd
		m.coordInput, cmd = m.coordInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	// Stale outcomes are dropped by the controller
	if !m.ctrl.Apply(msg.outcome) {
		return m, nil
	}
	m.asking = false
	return m.syncState(), nil
}

// syncState copies the controller state into the model and rebuilds the
// forecast table from it.
func (m Model) syncState() Model {
	m.state = m.ctrl.State()
	if m.state.Kind != search.KindResults {
		if m.focus == focusResults {
			m.focus = focusLocations
			m.results.Blur()
		}
		return m
	}

	v := output.Compose(m.state)
	widths := output.ColumnWidths(v.Header, v.Rows)
	columns := make([]table.Column, len(v.Header))
	for i, h := range v.Header {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = table.Row(r)
	}

	m.results.SetColumns(columns)
	m.results.SetRows(rows)
	m.results.SetHeight(m.tableHeight())
	m.results.GotoTop()
	return m
}

// tableHeight is the number of lines the forecast table may use.
func (m Model) tableHeight() int {
	rows := len(m.state.Entries) + 2 // header and its border
	if m.height == 0 {
		return rows
	}
	// title, intro, headers, picker, summary, borders and status bar
	avail := m.height - m.entryCount() - 14
	if avail < 4 {
		avail = 4
	}
	if rows < avail {
		return rows
	}
	return avail
}

// searchLocation issues a forecast search for loc and starts the spinner.
func (m Model) searchLocation(loc models.Location) (Model, tea.Cmd) {
	req := m.ctrl.Search(loc)
	m = m.syncState()
	return m, tea.Batch(m.spinner.Tick, runSearch(req, m.timeout))
}

// searchMyLocation issues a "My location" search. If the permission gate is
// still undecided the prompt is shown while the lookup waits on it.
func (m Model) searchMyLocation() (Model, tea.Cmd) {
	req := m.ctrl.SearchMyLocation()
	m = m.syncState()
	if req == nil {
		// Geolocation unsupported, already settled
		return m, nil
	}

	timeout := m.timeout
	if m.gate != nil && !m.gate.Decided() {
		m.asking = true
		timeout += permissionTimeout
	}
	return m, tea.Batch(m.spinner.Tick, runSearch(req, timeout))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.asking {
		return m.handlePermissionKeys(msg)
	}

	switch m.focus {
	case focusLocations:
		return m.handleLocationKeys(msg)
	case focusResults:
		return m.handleResultKeys(msg)
	case focusCoordinates:
		return m.handleCoordinateKeys(msg)
	}

	return m, nil
}

func (m Model) handlePermissionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.gate.Grant()
		m.asking = false
	case "n", "N", "esc":
		m.gate.Deny()
		m.asking = false
	}
	return m, nil
}

func (m Model) handleLocationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Defensive clamp in case the location list changed
	if m.cursor >= m.entryCount() {
		m.cursor = m.entryCount() - 1
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.entryCount()-1 {
			m.cursor++
		}
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		m.cursor = m.entryCount() - 1
		return m, nil

	case "enter", " ":
		if m.cursor == 0 {
			return m.searchMyLocation()
		}
		return m.searchLocation(m.locations[m.cursor-1])

	case "/":
		m.focus = focusCoordinates
		m.coordErr = nil
		m.coordInput.SetValue("")
		cmd := m.coordInput.Focus()
		return m, cmd

	case "tab":
		if m.state.Kind == search.KindResults {
			m.focus = focusResults
			m.results.Focus()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "esc":
		m.focus = focusLocations
		m.results.Blur()
		return m, nil

	case "/":
		m.results.Blur()
		m.focus = focusCoordinates
		m.coordErr = nil
		m.coordInput.SetValue("")
		cmd := m.coordInput.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) handleCoordinateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.coordInput.Value())
		if query == "" {
			return m, nil
		}
		loc, err := models.ParseCoordinates(query)
		if err != nil {
			m.coordErr = err
			return m, nil
		}
		m.coordErr = nil
		m.coordInput.Blur()
		m.focus = focusLocations
		return m.searchLocation(loc)

	case "esc":
		m.coordErr = nil
		m.coordInput.Blur()
		m.focus = focusLocations
		return m, nil
	}

	// Forward to textinput
	var cmd tea.Cmd
	m.coordInput, cmd = m.coordInput.Update(msg)
	return m, cmd
}
