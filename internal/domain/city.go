package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Geography tags used by template affinity rules.
const (
	GeoCoastal  = "coastal"
	GeoMountain = "mountain"
	GeoInland   = "inland"
)

// City is a static registry entry.
type City struct {
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	Geography []string `json:"geography,omitempty"`
}

// HasTag reports whether the city's region or geography mentions tag.
func (c City) HasTag(tag string) bool {
	tag = strings.ToLower(tag)
	if tag == "" {
		return false
	}
	if strings.Contains(strings.ToLower(c.Region), tag) {
		return true
	}
	return slices.ContainsFunc(c.Geography, func(g string) bool {
		return strings.EqualFold(g, tag)
	})
}

// Registry is an immutable name → City lookup table.
type Registry struct {
	cities map[string]City
}

// NewRegistry builds a registry keyed by normalized city name.
// Duplicate names after normalization are rejected.
func NewRegistry(cities []City) (*Registry, error) {
	r := &Registry{cities: make(map[string]City, len(cities))}
	for _, c := range cities {
		key := NormalizeCityName(c.Name)
		if key == "" {
			return nil, fmt.Errorf("registry: %w", ErrEmptyCityName)
		}
		if _, dup := r.cities[key]; dup {
			return nil, fmt.Errorf("registry: duplicate city %q", c.Name)
		}
		r.cities[key] = c
	}
	return r, nil
}

// DefaultRegistry returns the registry over DefaultCities.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCities())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a raw, user-typed city name.
func (r *Registry) Lookup(rawName string) (City, error) {
	key := NormalizeCityName(rawName)
	if key == "" {
		return City{}, ErrEmptyCityName
	}
	c, ok := r.cities[key]
	if !ok {
		return City{}, fmt.Errorf("lookup %q: %w", strings.TrimSpace(rawName), ErrCityNotFound)
	}
	return c, nil
}

// List returns every city sorted by name.
func (r *Registry) List() []City {
	out := make([]City, 0, len(r.cities))
	for _, c := range r.cities {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b City) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Len returns the number of registered cities.
func (r *Registry) Len() int { return len(r.cities) }

// NormalizeCityName trims, case-folds and collapses inner whitespace,
// e.g. "  New   YORK " -> "new york".
func NormalizeCityName(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// DefaultCities returns the built-in city table.
func DefaultCities() []City {
	return []City{
		{Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090, Country: "India", Region: "North", Geography: []string{GeoInland}},
		{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777, Country: "India", Region: "West", Geography: []string{GeoCoastal}},
		{Name: "Chennai", Latitude: 13.0827, Longitude: 80.2707, Country: "India", Region: "South", Geography: []string{GeoCoastal}},
		{Name: "Kolkata", Latitude: 22.5726, Longitude: 88.3639, Country: "India", Region: "East", Geography: []string{GeoCoastal}},
		{Name: "Bangalore", Latitude: 12.9716, Longitude: 77.5946, Country: "India", Region: "South", Geography: []string{GeoInland}},
		{Name: "Hyderabad", Latitude: 17.3850, Longitude: 78.4867, Country: "India", Region: "South", Geography: []string{GeoInland}},
		{Name: "Pune", Latitude: 18.5204, Longitude: 73.8567, Country: "India", Region: "West", Geography: []string{GeoMountain}},
		{Name: "Ahmedabad", Latitude: 23.0225, Longitude: 72.5714, Country: "India", Region: "West", Geography: []string{GeoInland}},
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503, Country: "Japan", Region: "Asia", Geography: []string{GeoCoastal, GeoMountain}},
		{Name: "New York", Latitude: 40.7128, Longitude: -74.0060, Country: "USA", Region: "North America", Geography: []string{GeoCoastal}},
		{Name: "London", Latitude: 51.5074, Longitude: -0.1278, Country: "UK", Region: "Europe", Geography: []string{GeoInland}},
		{Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093, Country: "Australia", Region: "Oceania", Geography: []string{GeoCoastal}},
		{Name: "Beijing", Latitude: 39.9042, Longitude: 116.4074, Country: "China", Region: "Asia", Geography: []string{GeoInland, GeoMountain}},
		{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522, Country: "France", Region: "Europe", Geography: []string{GeoInland}},
		{Name: "Dubai", Latitude: 25.2048, Longitude: 55.2708, Country: "UAE", Region: "Middle East", Geography: []string{GeoCoastal}},
		{Name: "Singapore", Latitude: 1.3521, Longitude: 103.8198, Country: "Singapore", Region: "Asia", Geography: []string{GeoCoastal}},
	}
}
