package places

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"googlemaps.github.io/maps"
)

// CitySuggester completes partial city names typed into the upload and
// profile forms.
type CitySuggester interface {
	SuggestCities(ctx context.Context, input string) ([]string, error)
}

// GooglePlaces suggests cities through the Places autocomplete API,
// restricted to one country.
type GooglePlaces struct {
	client  *maps.Client
	country string
}

// NewGooglePlaces builds the suggester. Country is a two-letter code such
// as "in".
func NewGooglePlaces(apiKey, country string) (*GooglePlaces, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("places: api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("places: create client: %w", err)
	}
	if country = strings.ToLower(strings.TrimSpace(country)); country == "" {
		country = "in"
	}
	return &GooglePlaces{client: client, country: country}, nil
}

func (g *GooglePlaces) SuggestCities(ctx context.Context, input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	req := &maps.PlaceAutocompleteRequest{
		Input: input,
		Types: maps.AutocompletePlaceTypeCities,
		Components: map[maps.Component][]string{
			maps.ComponentCountry: {g.country},
		},
	}
	resp, err := g.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("places: autocomplete: %w", err)
	}
	cities := make([]string, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		name := p.StructuredFormatting.MainText
		if name == "" {
			name = p.Description
		}
		cities = append(cities, name)
	}
	return cities, nil
}

// StaticSuggester matches against a fixed city list. It backs the forms in
// tests and when no Places API key is configured.
type StaticSuggester struct {
	cities []string
}

// NewStaticSuggester copies and sorts the given cities. With none given it
// falls back to the launch cities.
func NewStaticSuggester(cities ...string) *StaticSuggester {
	if len(cities) == 0 {
		cities = []string{
			"Ahmedabad", "Bangalore", "Chennai", "Delhi", "Goa",
			"Hyderabad", "Jaipur", "Kochi", "Kolkata", "Mumbai",
			"Mysore", "Pune", "Udaipur",
		}
	}
	sorted := append([]string(nil), cities...)
	sort.Strings(sorted)
	return &StaticSuggester{cities: sorted}
}

func (s *StaticSuggester) SuggestCities(_ context.Context, input string) ([]string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}
	var matches []string
	for _, city := range s.cities {
		if strings.HasPrefix(strings.ToLower(city), input) {
			matches = append(matches, city)
		}
	}
	return matches, nil
}

var (
	_ CitySuggester = (*GooglePlaces)(nil)
	_ CitySuggester = (*StaticSuggester)(nil)
)
