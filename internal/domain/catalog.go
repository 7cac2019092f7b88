package domain

import "fmt"

// SeverityTag is the catalog-level classification of a threat template.
type SeverityTag string

const (
	SeverityCaution SeverityTag = "caution"
	SeverityDanger  SeverityTag = "danger"
)

// ThreatType identifies a disaster kind.
type ThreatType string

const (
	ThreatEarthquake  ThreatType = "earthquake"
	ThreatFlood       ThreatType = "flood"
	ThreatCyclone     ThreatType = "cyclone"
	ThreatWildfire    ThreatType = "wildfire"
	ThreatLandslide   ThreatType = "landslide"
	ThreatSevereStorm ThreatType = "severe_storm"
	ThreatTsunami     ThreatType = "tsunami"
	ThreatHeatWave    ThreatType = "heat_wave"
)

// Range is a half-open interval [Min, Max) of float values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Draw returns a value drawn uniformly from the range.
func (r Range) Draw(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Valid reports whether the range is non-negative and ordered.
func (r Range) Valid() bool {
	return r.Min >= 0 && r.Max >= r.Min
}

// LocationScope selects which city attribute is substituted into a
// template's location label.
type LocationScope int

const (
	ScopeRegion LocationScope = iota
	ScopeCountry
)

// ThreatTemplate is a static catalog entry.
type ThreatTemplate struct {
	Type           ThreatType
	Label          string // e.g. "Earthquake Alert"
	Severity       SeverityTag
	LocationScope  LocationScope
	LocationSuffix string // appended to the region or country, e.g. "Seismic Zone"
	Distance       Range  // km
	Intensity      string
	AffectedArea   Range // km²
	Source         string
	// Affinity names a geography tag that makes the template always relevant,
	// e.g. tsunami for coastal cities.
	Affinity string
}

// LocationLabel renders the template's location for a city.
func (t ThreatTemplate) LocationLabel(c City) string {
	place := c.Region
	if t.LocationScope == ScopeCountry {
		place = c.Country
	}
	return fmt.Sprintf("%s %s", place, t.LocationSuffix)
}

// Validate checks the template's ranges and tags.
func (t ThreatTemplate) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("template %q: missing type", t.Label)
	}
	if t.Severity != SeverityCaution && t.Severity != SeverityDanger {
		return fmt.Errorf("template %s: unknown severity %q", t.Type, t.Severity)
	}
	if !t.Distance.Valid() {
		return fmt.Errorf("template %s: invalid distance range %v", t.Type, t.Distance)
	}
	if !t.AffectedArea.Valid() {
		return fmt.Errorf("template %s: invalid affected area range %v", t.Type, t.AffectedArea)
	}
	return nil
}

// DefaultCatalog returns the built-in threat templates in declaration order.
// Declaration order breaks distance ties during selection.
func DefaultCatalog() []ThreatTemplate {
	return []ThreatTemplate{
		{
			Type: ThreatEarthquake, Label: "Earthquake Alert", Severity: SeverityDanger,
			LocationScope: ScopeRegion, LocationSuffix: "Seismic Zone",
			Distance: Range{45.2, 245.2}, Intensity: "Magnitude 5.8+",
			AffectedArea: Range{12000, 18000}, Source: "USGS Seismic Monitor",
		},
		{
			Type: ThreatFlood, Label: "Flood Warning", Severity: SeverityCaution,
			LocationScope: ScopeCountry, LocationSuffix: "River Basin",
			Distance: Range{82.7, 382.7}, Intensity: "Heavy Rainfall",
			AffectedArea: Range{20000, 30000}, Source: "Global Flood Monitoring System",
		},
		{
			Type: ThreatCyclone, Label: "Cyclone Watch", Severity: SeverityDanger,
			LocationScope: ScopeRegion, LocationSuffix: "Coastal Area",
			Distance: Range{120.4, 520.4}, Intensity: "Category 3 Storm",
			AffectedArea: Range{40000, 60000}, Source: "IMD Weather Bureau",
		},
		{
			Type: ThreatWildfire, Label: "Wildfire Alert", Severity: SeverityCaution,
			LocationScope: ScopeCountry, LocationSuffix: "Forest Region",
			Distance: Range{65.8, 245.8}, Intensity: "High Spread Risk",
			AffectedArea: Range{6000, 10000}, Source: "NASA FIRMS",
		},
		{
			Type: ThreatLandslide, Label: "Landslide Warning", Severity: SeverityDanger,
			LocationScope: ScopeRegion, LocationSuffix: "Mountain Area",
			Distance: Range{28.3, 178.3}, Intensity: "Heavy Soil Saturation",
			AffectedArea: Range{4000, 6000}, Source: "Geological Survey",
			Affinity: GeoMountain,
		},
		{
			Type: ThreatSevereStorm, Label: "Severe Storm", Severity: SeverityCaution,
			LocationScope: ScopeCountry, LocationSuffix: "Meteorological Zone",
			Distance: Range{95.1, 345.1}, Intensity: "Thunderstorm Activity",
			AffectedArea: Range{10000, 14000}, Source: "National Weather Service",
		},
		{
			Type: ThreatTsunami, Label: "Tsunami Watch", Severity: SeverityDanger,
			LocationScope: ScopeRegion, LocationSuffix: "Coastal Waters",
			Distance: Range{180.6, 530.6}, Intensity: "Seismic Activity Detected",
			AffectedArea: Range{60000, 90000}, Source: "Pacific Tsunami Center",
			Affinity: GeoCoastal,
		},
		{
			Type: ThreatHeatWave, Label: "Heat Wave Alert", Severity: SeverityCaution,
			LocationScope: ScopeCountry, LocationSuffix: "Regional Area",
			Distance: Range{12.5, 62.5}, Intensity: "Extreme Temperature",
			AffectedArea: Range{25000, 35000}, Source: "Climate Monitoring",
		},
	}
}
