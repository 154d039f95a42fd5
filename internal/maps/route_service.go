// README: Travel estimates from the Google Maps Directions API.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// RouteService supplies the distance/duration inputs the fare calculator
// needs; no routing math happens in this codebase.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// TravelEstimate returns driving distance in meters and duration in seconds
// for a trip from origin to destination, summed over all route legs.
func (s *RouteService) TravelEstimate(ctx context.Context, origin, destination string) (int, int, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Region:      "uk",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, 0, fmt.Errorf("no route found")
	}

	meters := 0
	seconds := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		seconds += int(leg.Duration.Seconds())
	}
	return meters, seconds, nil
}
