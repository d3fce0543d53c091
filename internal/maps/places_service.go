package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"skyguide/internal/types"
)

var ErrNoPlace = errors.New("no matching place")

// Place represents a simplified location result.
type Place struct {
	Name    string
	Address string
	Rating  float32
	PlaceID string
	// Location is nil when the result carried no geometry.
	Location *types.Point
}

// PlaceFinder resolves a free-text place name to a concrete place.
type PlaceFinder interface {
	Lookup(ctx context.Context, name, city string) (Place, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client   *maps.Client
	language string
}

var _ PlaceFinder = (*PlacesService)(nil)

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, language: "vi"}, nil
}

// Lookup runs a text search for name in city and returns the best-ranked result.
func (s *PlacesService) Lookup(ctx context.Context, name, city string) (Place, error) {
	r := &maps.TextSearchRequest{
		Query:    Destination(name, city),
		Language: s.language,
	}
	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return Place{}, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return Place{}, ErrNoPlace
	}

	best := resp.Results[0]
	// Prefer a result whose name actually contains the query over a higher-ranked fuzzy hit.
	for _, result := range resp.Results {
		if containsIgnoreCase(result.Name, name) {
			best = result
			break
		}
	}
	place := Place{
		Name:    best.Name,
		Address: best.FormattedAddress,
		Rating:  best.Rating,
		PlaceID: best.PlaceID,
	}
	if loc := (types.Point{Lat: best.Geometry.Location.Lat, Lng: best.Geometry.Location.Lng}); loc != (types.Point{}) {
		place.Location = &loc
	}
	return place, nil
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
