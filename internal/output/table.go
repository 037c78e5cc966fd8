package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/search"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderState writes the result area for s. The hidden state writes nothing.
func RenderState(w io.Writer, s search.State, opts TableOptions) {
	c := opts.colors()
	v := Compose(s)

	switch v.Kind {
	case search.KindLoading:
		_, _ = fmt.Fprintln(w, c.Loading("%s", v.Message))
	case search.KindError:
		_, _ = fmt.Fprintln(w, c.Error("%s", v.Message))
	case search.KindResults:
		_, _ = fmt.Fprintln(w, c.Title("%s", v.Heading))
		_, _ = fmt.Fprintln(w, v.Summary)
		_, _ = fmt.Fprintln(w)
		renderTable(w, v, s.Entries, c)
	}
}

// ColumnWidths returns the display width of each column of header and rows
func ColumnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}
	return widths
}

func renderTable(w io.Writer, v View, entries []models.ForecastEntry, c *Colors) {
	widths := ColumnWidths(v.Header, v.Rows)

	header := make([]string, len(v.Header))
	for i, h := range v.Header {
		header[i] = c.Header("%s", runewidth.FillRight(h, widths[i]))
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "  "))

	// Pad before coloring so escape codes don't skew the alignment
	for i, row := range v.Rows {
		hour := c.Hour("%s", runewidth.FillRight(row[0], widths[0]))
		temp := c.Temperature(entries[i].Temperature)("%s", runewidth.FillLeft(row[1], widths[1]))
		precip := runewidth.FillLeft(row[2], widths[2])
		if entries[i].Precipitation > 0 {
			precip = c.Precipitation("%s", precip)
		}
		_, _ = fmt.Fprintf(w, "%s  %s  %s\n", hour, temp, precip)
	}
}

// RenderLocations renders the selectable locations as a formatted list
func RenderLocations(w io.Writer, locations []models.Location, opts TableOptions) {
	if len(locations) == 0 {
		_, _ = fmt.Fprintln(w, "No locations configured.")
		return
	}

	c := opts.colors()

	width := 0
	for _, loc := range locations {
		if tw := runewidth.StringWidth(loc.Title); tw > width {
			width = tw
		}
	}

	_, _ = fmt.Fprintln(w, c.Header("Locations:"))
	_, _ = fmt.Fprintln(w)

	for _, loc := range locations {
		_, _ = fmt.Fprintf(w, "  %s  %s\n",
			c.Title("%s", runewidth.FillRight(loc.Title, width)),
			c.Muted("%s:%s", models.FormatCoordinate(loc.Lat), models.FormatCoordinate(loc.Lng)),
		)
	}
}
