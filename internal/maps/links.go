// README: Map link builders; search and driving-directions URLs, no API key needed.
package maps

import (
	"net/url"
	"strings"

	"skyguide/internal/types"
)

const (
	searchBase     = "https://www.google.com/maps/search/"
	directionsBase = "https://www.google.com/maps/dir/"
)

// Destination joins a place with its city unless the place already names it.
func Destination(place, city string) string {
	place = strings.TrimSpace(place)
	city = strings.TrimSpace(city)
	if city == "" || strings.Contains(strings.ToLower(place), strings.ToLower(city)) {
		return place
	}
	if place == "" {
		return city
	}
	return place + ", " + city
}

// SearchURL links to a map search for place (qualified by city when given).
func SearchURL(place, city string) string {
	return searchURL(Destination(place, city), "")
}

// PlaceURL links to a search pinned to a resolved place id.
func PlaceURL(p Place) string {
	return searchURL(p.Name, p.PlaceID)
}

func searchURL(query, placeID string) string {
	v := url.Values{}
	v.Set("api", "1")
	v.Set("query", query)
	if placeID != "" {
		v.Set("query_place_id", placeID)
	}
	return searchBase + "?" + v.Encode()
}

// DirectionsURL links to driving directions from origin to place.
func DirectionsURL(origin types.Point, place, city string) string {
	v := url.Values{}
	v.Set("api", "1")
	v.Set("origin", origin.String())
	v.Set("destination", Destination(place, city))
	v.Set("travelmode", "driving")
	return directionsBase + "?" + v.Encode()
}
