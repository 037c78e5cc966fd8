package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MyLocationTitle is the title given to a location synthesized from geolocation.
const MyLocationTitle = "My location"

// Location is a named latitude/longitude pair the forecast can be searched for.
type Location struct {
	Title string  `json:"title"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// DefaultLocations returns the built-in locations in display order.
func DefaultLocations() []Location {
	return []Location{
		{Title: "Reykjavík", Lat: 64.1355, Lng: -21.8954},
		{Title: "Akureyri", Lat: 65.6835, Lng: -18.0878},
		{Title: "New York", Lat: 40.7128, Lng: -74.006},
		{Title: "Tokyo", Lat: 35.6764, Lng: 139.65},
		{Title: "Sydney", Lat: -33.8688, Lng: 151.2093},
	}
}

// MyLocation builds the location used for a geolocation search.
func MyLocation(lat, lng float64) Location {
	return Location{Title: MyLocationTitle, Lat: lat, Lng: lng}
}

// FormatCoordinate renders a coordinate in its shortest decimal form (64.1355, -74.006).
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseCoordinates parses "lat:lng" or "lat,lng" into a Location titled with the
// coordinates themselves.
func ParseCoordinates(s string) (Location, error) {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = ","
	}
	parts := strings.SplitN(strings.TrimSpace(s), sep, 2)
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("coordinates must be in format LAT:LNG (e.g., 64.1355:-21.8954)")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid longitude: %w", err)
	}

	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) || lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}

	return Location{
		Title: FormatCoordinate(lat) + ", " + FormatCoordinate(lng),
		Lat:   lat,
		Lng:   lng,
	}, nil
}

// FindLocation returns the first location whose title matches query, ignoring
// case and diacritics.
func FindLocation(locations []Location, query string) (Location, bool) {
	want := foldTitle(query)
	if want == "" {
		return Location{}, false
	}
	for _, loc := range locations {
		if foldTitle(loc.Title) == want {
			return loc, true
		}
	}
	return Location{}, false
}

// foldTitle strips combining marks and case so "Reykjavík" and "reykjavik" compare equal.
func foldTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return cases.Fold().String(out)
}
