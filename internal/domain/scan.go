package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// NoActiveThreatsMessage accompanies a scan that retained no candidates.
const NoActiveThreatsMessage = "No active disasters detected in your region. This is good news!"

// ScanResult is the outcome of a radar scan for one city.
type ScanResult struct {
	City      City      `json:"city"`
	ScannedAt time.Time `json:"scanned_at"`
	// Threat is nil when no candidate survived relevance filtering.
	Threat         *ThreatCandidate `json:"threat,omitempty"`
	Badge          Badge            `json:"badge"`
	BadgeText      string           `json:"badge_text"`
	BadgeClass     string           `json:"badge_class"`
	Recommendation string           `json:"recommendation"`
	Message        string           `json:"message,omitempty"`
}

// Active reports whether the scan found a threat.
func (r ScanResult) Active() bool { return r.Threat != nil }

// Assess builds a ScanResult from the selected candidate.
func Assess(city City, best ThreatCandidate, scannedAt time.Time) ScanResult {
	badge := ClassifyBadge(best.DistanceKm, best.Severity)
	return ScanResult{
		City:           city,
		ScannedAt:      scannedAt,
		Threat:         &best,
		Badge:          badge,
		BadgeText:      badge.Text(),
		BadgeClass:     badge.DisplayClass(),
		Recommendation: Recommend(best.Type),
	}
}

// NoActiveThreats builds the benign result for an empty candidate set.
func NoActiveThreats(city City, scannedAt time.Time) ScanResult {
	return ScanResult{
		City:           city,
		ScannedAt:      scannedAt,
		Badge:          BadgeSafeZone,
		BadgeText:      BadgeSafeZone.Text(),
		BadgeClass:     BadgeSafeZone.DisplayClass(),
		Recommendation: GenericRecommendation,
		Message:        NoActiveThreatsMessage,
	}
}

// Scanner runs radar scans against a registry and catalog. It is safe for
// concurrent use; the randomness source is serialized internally.
type Scanner struct {
	registry *Registry
	catalog  []ThreatTemplate
	rules    RelevanceRules
	rng      Rand
	clock    clockwork.Clock
}

// ScannerOption customizes a Scanner.
type ScannerOption func(*Scanner)

// WithCatalog replaces the default threat catalog.
func WithCatalog(catalog []ThreatTemplate) ScannerOption {
	return func(s *Scanner) { s.catalog = catalog }
}

// WithRelevanceRules replaces the default relevance rules.
func WithRelevanceRules(rules RelevanceRules) ScannerOption {
	return func(s *Scanner) { s.rules = rules }
}

// WithClock sets the time source used for timestamps.
func WithClock(c clockwork.Clock) ScannerOption {
	return func(s *Scanner) { s.clock = c }
}

// NewScanner creates a Scanner drawing randomness from rng.
func NewScanner(registry *Registry, rng Rand, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		registry: registry,
		catalog:  DefaultCatalog(),
		rules:    DefaultRelevanceRules(),
		rng:      NewLockedRand(rng),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clock = orRealClock(s.clock)
	return s
}

// ScanCity resolves rawName and returns the most relevant threat for it.
// It fails with ErrCityNotFound or ErrEmptyCityName and never returns a
// partial result alongside an error.
func (s *Scanner) ScanCity(rawName string) (ScanResult, error) {
	city, err := s.registry.Lookup(rawName)
	if err != nil {
		return ScanResult{}, err
	}
	return s.Scan(city), nil
}

// Scan runs generation, selection and classification for a resolved city.
func (s *Scanner) Scan(city City) ScanResult {
	now := s.clock.Now().UTC()
	candidates := GenerateCandidates(city, s.catalog, s.rng, now)
	retained := SelectRelevant(candidates, city, s.rules, s.rng)
	best, ok := PickBest(retained)
	if !ok {
		return NoActiveThreats(city, now)
	}
	return Assess(city, best, now)
}

// Registry returns the scanner's city registry.
func (s *Scanner) Registry() *Registry { return s.registry }
