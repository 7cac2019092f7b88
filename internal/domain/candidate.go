package domain

import "time"

// ThreatCandidate is a concrete threat instantiated for one city.
type ThreatCandidate struct {
	Type            ThreatType  `json:"type"`
	Label           string      `json:"label"`
	Location        string      `json:"location"`
	DistanceKm      float64     `json:"distance_km"`
	Severity        SeverityTag `json:"severity"`
	Intensity       string      `json:"intensity"`
	AffectedAreaKm2 float64     `json:"affected_area_km2"`
	Source          string      `json:"source"`
	Timestamp       time.Time   `json:"timestamp"`

	// order is the template's catalog position, used to break distance ties.
	order int
	// affinity is carried over from the template for relevance filtering.
	affinity string
}

// GenerateCandidates instantiates one candidate per template for city.
// Distances and areas are drawn from each template's ranges using rng, in
// catalog order, so a seeded rng reproduces the same candidates.
func GenerateCandidates(city City, catalog []ThreatTemplate, rng Rand, now time.Time) []ThreatCandidate {
	out := make([]ThreatCandidate, 0, len(catalog))
	for i, t := range catalog {
		distance := t.Distance.Draw(rng)
		if distance < 0 {
			distance = 0
		}
		out = append(out, ThreatCandidate{
			Type:            t.Type,
			Label:           t.Label,
			Location:        t.LocationLabel(city),
			DistanceKm:      distance,
			Severity:        t.Severity,
			Intensity:       t.Intensity,
			AffectedAreaKm2: t.AffectedArea.Draw(rng),
			Source:          t.Source,
			Timestamp:       now.UTC(),
			order:           i,
			affinity:        t.Affinity,
		})
	}
	return out
}
