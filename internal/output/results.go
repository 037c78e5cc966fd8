package output

import (
	"math"
	"strconv"

	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/search"
)

// Fixed display strings of the result area
const (
	ResultsHeading = "Results"
	LoadingText    = "Searching..."
	ErrorPrefix    = "Error: "
)

// ForecastHeader is the header row of the forecast table
var ForecastHeader = []string{"Hour", "Temperature (°C)", "Precipitation (mm)"}

// View is the renderable form of a result area state. Exactly one of the
// groups of fields is populated, matching Kind.
type View struct {
	Kind search.Kind

	// Loading / Error
	Message string

	// Results
	Heading string
	Summary string
	Header  []string
	Rows    [][]string
}

// Compose maps a state to what the result area shows
func Compose(s search.State) View {
	switch s.Kind {
	case search.KindLoading:
		return View{Kind: s.Kind, Message: LoadingText}
	case search.KindError:
		return View{Kind: s.Kind, Message: ErrorPrefix + s.Message}
	case search.KindResults:
		rows := make([][]string, 0, len(s.Entries))
		for _, e := range s.Entries {
			rows = append(rows, ForecastRow(e))
		}
		return View{
			Kind:    s.Kind,
			Heading: s.Location.Title,
			Summary: Summary(s.Location),
			Header:  ForecastHeader,
			Rows:    rows,
		}
	}
	return View{Kind: search.KindHidden}
}

// Summary is the sentence describing where the forecast is for
func Summary(loc models.Location) string {
	return "Forecast for the day at latitude " + models.FormatCoordinate(loc.Lat) +
		" and longitude " + models.FormatCoordinate(loc.Lng) + "."
}

// ForecastRow renders one entry as hour, temperature and precipitation cells
func ForecastRow(e models.ForecastEntry) []string {
	return []string{e.Hour(), FormatValue(e.Temperature), FormatValue(e.Precipitation)}
}

// FormatValue rounds to one decimal, halves away from zero (2.951 → "3.0", 1.25 → "1.3").
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
