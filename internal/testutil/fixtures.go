package testutil

// Sample JSON responses for API testing

// SampleForecastResponse is a minimal valid forecast response for Reykjavík
const SampleForecastResponse = `{
	"latitude": 64.125,
	"longitude": -21.875,
	"generationtime_ms": 0.03,
	"utc_offset_seconds": 0,
	"timezone": "GMT",
	"timezone_abbreviation": "GMT",
	"elevation": 21.0,
	"hourly_units": {
		"time": "iso8601",
		"temperature_2m": "°C",
		"precipitation": "mm"
	},
	"hourly": {
		"time": ["2024-01-01T09:00", "2024-01-01T10:00", "2024-01-01T11:00"],
		"temperature_2m": [1.24, 2.951, -0.5],
		"precipitation": [0.0, 0.25, 1.0]
	}
}`

// SampleEmptyForecastResponse is a forecast response with no hourly rows
const SampleEmptyForecastResponse = `{
	"latitude": 64.125,
	"longitude": -21.875,
	"timezone": "GMT",
	"hourly": {
		"time": [],
		"temperature_2m": [],
		"precipitation": []
	}
}`

// SampleForecastErrorResponse is the body sent with a rejected forecast request
const SampleForecastErrorResponse = `{
	"error": true,
	"reason": "Latitude must be in range of -90 to 90°. Given: 91.0."
}`

// SampleIPLocationResponse is a successful IP geolocation lookup
const SampleIPLocationResponse = `{
	"status": "success",
	"country": "Iceland",
	"city": "Reykjavik",
	"lat": 64.1466,
	"lon": -21.9426,
	"query": "192.0.2.1"
}`

// SampleIPLocationFailResponse is a failed IP geolocation lookup
const SampleIPLocationFailResponse = `{
	"status": "fail",
	"message": "private range",
	"query": "10.0.0.1"
}`

// SampleEmptyResponse is an empty JSON response
const SampleEmptyResponse = `{}`
