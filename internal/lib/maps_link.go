package lib

import (
	"fmt"
	"net/url"
)

// Deep links into an external map application for "open in maps"
// affordances on itinerary slots.

// MapsLinkByName builds a maps URL from a place name alone.
func MapsLinkByName(name string) string {
	return "https://maps.google.com/?q=" + url.QueryEscape(name)
}

// MapsLinkByCoords builds a maps URL from a coordinate, optionally
// disambiguated by the place name.
func MapsLinkByCoords(lat, lon float64, name string) string {
	q := fmt.Sprintf("%f,%f", lat, lon)
	if name != "" {
		q = fmt.Sprintf("%s %f,%f", name, lat, lon)
	}
	return "https://maps.google.com/?q=" + url.QueryEscape(q)
}
