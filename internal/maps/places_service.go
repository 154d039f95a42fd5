// README: Address search via the Google Places API for the booking form.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Place is a simplified address result offered to the rider while picking
// pickup, stop, and dropoff locations.
type Place struct {
	Name    string
	Address string
	PlaceID string
	Lat     float64
	Lng     float64
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchAddresses runs a text search and returns up to limit simplified
// results with coordinates ready for the itinerary.
func (s *PlacesService) SearchAddresses(ctx context.Context, query string, limit int) ([]Place, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:  query,
		Region: "uk",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	places := make([]Place, 0, limit)
	for _, r := range resp.Results {
		if len(places) >= limit {
			break
		}
		places = append(places, Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			PlaceID: r.PlaceID,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return places, nil
}
