package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/output"
	"github.com/vedur-cli/vedur/internal/search"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		renderHeader(),
		m.renderLocations(),
	}
	if m.focus == focusCoordinates {
		sections = append(sections, m.renderCoordinateInput())
	}

	// The result area is not drawn until the first search
	if m.state.Visible() {
		sections = append(sections, m.renderResults())
	}
	if m.asking {
		sections = append(sections, renderPermissionPrompt())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	statusBar := m.renderStatusBar()

	// Keep the status bar on the last line
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(statusBar)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

// renderHeader renders the title block and intro line.
func renderHeader() string {
	return styleTitle.Render(appTitle) + "\n" + styleMuted.Render(introText) + "\n"
}

// renderLocations renders the location picker.
func (m Model) renderLocations() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(locationsHeader))
	b.WriteString("\n")

	b.WriteString(m.renderEntry(0, myLocationEntry, ""))
	for i, loc := range m.locations {
		b.WriteString("\n")
		coords := models.FormatCoordinate(loc.Lat) + ":" + models.FormatCoordinate(loc.Lng)
		b.WriteString(m.renderEntry(i+1, loc.Title, coords))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderEntry(idx int, label, detail string) string {
	line := "   " + label
	if idx == m.cursor && m.focus == focusLocations {
		line = styleSelected.Render(" > " + label)
	}
	if detail != "" {
		line += "  " + styleMuted.Render(detail)
	}
	return line
}

// renderCoordinateInput renders the "/" coordinate input and its parse error.
func (m Model) renderCoordinateInput() string {
	s := m.coordInput.View()
	if m.coordErr != nil {
		s += "\n" + styleError.Render(output.ErrorPrefix+m.coordErr.Error())
	}
	return s + "\n"
}

// renderResults renders the results header and the result area. The area is
// rebuilt from the current state on every render.
func (m Model) renderResults() string {
	v := output.Compose(m.state)

	var content string
	switch v.Kind {
	case search.KindLoading:
		content = m.spinner.View() + " " + styleLoading.Render(v.Message)
	case search.KindError:
		content = styleError.Render(v.Message)
	case search.KindResults:
		content = lipgloss.JoinVertical(lipgloss.Left,
			styleHeading.Render(v.Heading),
			v.Summary,
			"",
			m.results.View(),
		)
	}

	border := stylePanelNormal
	if m.focus == focusResults {
		border = stylePanelFocused
	}
	width := m.width - 4 // border and padding
	if width < 20 {
		width = 20
	}

	return styleHeader.Render(output.ResultsHeading) + "\n" + border.Width(width).Render(content)
}

// renderPermissionPrompt asks whether the location may be looked up.
func renderPermissionPrompt() string {
	return stylePrompt.Render("Allow looking up your location? [y/n]")
}

// renderStatusBar renders the key hints at the bottom.
func (m Model) renderStatusBar() string {
	var hints string
	switch {
	case m.asking:
		hints = "y:allow  n:deny  Ctrl+C:quit"
	case m.focus == focusLocations:
		hints = "j/k:navigate  Enter:search  /:coordinates  Tab:results  q:quit"
	case m.focus == focusResults:
		hints = "j/k:scroll  Tab:locations  /:coordinates  q:quit"
	case m.focus == focusCoordinates:
		hints = "Enter:search  Esc:cancel  Ctrl+C:quit"
	}

	return styleStatusBar.Width(m.width).Render(" " + hints)
}
