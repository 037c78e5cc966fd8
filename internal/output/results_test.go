package output

import (
	"testing"

	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/search"
	"github.com/vedur-cli/vedur/internal/testutil"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.0, "3.0"},
		{2.951, "3.0"},
		{1.24, "1.2"},
		{1.25, "1.3"},
		{0, "0.0"},
		{-0.5, "-0.5"},
		{-1.25, "-1.3"},
		{12.34, "12.3"},
		{0.05, "0.1"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForecastRow(t *testing.T) {
	row := ForecastRow(models.ForecastEntry{Time: "2024-05-01T14:00", Temperature: 3, Precipitation: 0.25})

	testutil.AssertLen(t, row, 3)
	testutil.AssertEqual(t, row[0], "14:00")
	testutil.AssertEqual(t, row[1], "3.0")
	testutil.AssertEqual(t, row[2], "0.3")
}

func TestSummary(t *testing.T) {
	got := Summary(models.Location{Title: "New York", Lat: 40.7128, Lng: -74.006})
	testutil.AssertEqual(t, got, "Forecast for the day at latitude 40.7128 and longitude -74.006.")
}

func TestCompose_Hidden(t *testing.T) {
	v := Compose(search.Hidden())
	testutil.AssertEqual(t, v.Kind, search.KindHidden)
	testutil.AssertEqual(t, v.Message, "")
	testutil.AssertLen(t, v.Rows, 0)
}

func TestCompose_Loading(t *testing.T) {
	v := Compose(search.Loading())
	testutil.AssertEqual(t, v.Kind, search.KindLoading)
	testutil.AssertEqual(t, v.Message, "Searching...")
}

func TestCompose_Error(t *testing.T) {
	v := Compose(search.Failed(search.MsgNoData))
	testutil.AssertEqual(t, v.Kind, search.KindError)
	testutil.AssertEqual(t, v.Message, "Error: No data available for this location.")
	testutil.AssertLen(t, v.Rows, 0)
	testutil.AssertEqual(t, v.Heading, "")
}

func TestCompose_Results(t *testing.T) {
	loc := models.Location{Title: "Reykjavík", Lat: 64.1355, Lng: -21.8954}
	entries := []models.ForecastEntry{
		{Time: "2024-01-01T09:00", Temperature: 1.24, Precipitation: 0.0},
		{Time: "2024-01-01T10:00", Temperature: 2.951, Precipitation: 0.25},
		{Time: "2024-01-01T11:00", Temperature: -0.5, Precipitation: 1},
	}

	v := Compose(search.Results(loc, entries))

	testutil.AssertEqual(t, v.Kind, search.KindResults)
	testutil.AssertContains(t, v.Heading, "Reykjavík")
	testutil.AssertEqual(t, v.Summary, "Forecast for the day at latitude 64.1355 and longitude -21.8954.")
	testutil.AssertEqual(t, v.Header[0], "Hour")
	testutil.AssertEqual(t, v.Header[1], "Temperature (°C)")
	testutil.AssertEqual(t, v.Header[2], "Precipitation (mm)")
	testutil.AssertLen(t, v.Rows, 3)

	// One row per entry in input order
	want := [][]string{
		{"09:00", "1.2", "0.0"},
		{"10:00", "3.0", "0.3"},
		{"11:00", "-0.5", "1.0"},
	}
	for i, row := range v.Rows {
		for j := range row {
			testutil.AssertEqual(t, row[j], want[i][j])
		}
	}
}
