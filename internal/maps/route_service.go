package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"skyguide/internal/types"
)

// Estimate is the driving time and distance of a route.
type Estimate struct {
	Duration time.Duration
	Distance string
}

// RouteEstimator estimates a drive from origin to a destination string.
type RouteEstimator interface {
	Estimate(ctx context.Context, origin types.Point, destination string) (Estimate, error)
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

var _ RouteEstimator = (*RouteService)(nil)

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// Estimate returns the duration and distance for driving from origin to destination.
func (s *RouteService) Estimate(ctx context.Context, origin types.Point, destination string) (Estimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "vi",
		Region:      "vn",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Estimate{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Estimate{}, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return Estimate{Duration: leg.Duration, Distance: leg.Distance.HumanReadable}, nil
}
