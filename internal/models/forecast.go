package models

import "strings"

// ForecastEntry is one hourly forecast data point.
type ForecastEntry struct {
	Time          string  `json:"time"`          // ISO-8601 local time, e.g. 2024-05-01T14:00
	Temperature   float64 `json:"temperature"`   // °C
	Precipitation float64 `json:"precipitation"` // mm
}

// Hour returns the time-of-day part of the entry's timestamp ("14:00").
// Timestamps without a date/time separator are returned unchanged.
func (e ForecastEntry) Hour() string {
	if _, after, ok := strings.Cut(e.Time, "T"); ok {
		return after
	}
	return e.Time
}

// ForecastResponse represents the raw JSON response of the forecast endpoint
type ForecastResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	HourlyUnits struct {
		Time          string `json:"time"`
		Temperature   string `json:"temperature_2m"`
		Precipitation string `json:"precipitation"`
	} `json:"hourly_units"`
	Hourly *struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// ToEntries zips the hourly columns into entries. Columns of unequal length are
// truncated to the shortest one; a response without hourly data yields nil.
func (r *ForecastResponse) ToEntries() []ForecastEntry {
	if r.Hourly == nil {
		return nil
	}

	n := len(r.Hourly.Time)
	if len(r.Hourly.Temperature) < n {
		n = len(r.Hourly.Temperature)
	}
	if len(r.Hourly.Precipitation) < n {
		n = len(r.Hourly.Precipitation)
	}

	entries := make([]ForecastEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, ForecastEntry{
			Time:          r.Hourly.Time[i],
			Temperature:   r.Hourly.Temperature[i],
			Precipitation: r.Hourly.Precipitation[i],
		})
	}
	return entries
}
