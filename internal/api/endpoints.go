package api

const (
	// BaseURL is the base URL for the Open-Meteo forecast API
	BaseURL = "https://api.open-meteo.com"

	// EndpointForecast returns the weather forecast for a coordinate
	// Required params: latitude, longitude, hourly, timezone, forecast_days
	EndpointForecast = "/v1/forecast"
)

// HourlyVariables are the hourly series requested from the forecast endpoint
var HourlyVariables = []string{
	"temperature_2m",
	"precipitation",
}

// ForecastTimezone is the timezone the forecast timestamps are expressed in
const ForecastTimezone = "GMT"

// ForecastDays is the number of days covered by one forecast request
const ForecastDays = 1
