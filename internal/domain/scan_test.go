package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the same value for every draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func mustCity(t *testing.T, name string) City {
	t.Helper()
	c, err := DefaultRegistry().Lookup(name)
	require.NoError(t, err)
	return c
}

func TestGenerateCandidates(t *testing.T) {
	delhi := mustCity(t, testDelhi)
	catalog := DefaultCatalog()

	t.Run("one candidate per template at range minimum", func(t *testing.T) {
		got := GenerateCandidates(delhi, catalog, fixedRand(0), testNow)
		require.Len(t, got, len(catalog))
		for i, c := range got {
			assert.Equal(t, catalog[i].Type, c.Type)
			assert.Equal(t, catalog[i].Distance.Min, c.DistanceKm)
			assert.Equal(t, catalog[i].AffectedArea.Min, c.AffectedAreaKm2)
			assert.Equal(t, testNow, c.Timestamp)
		}
	})

	t.Run("location labels substitute region or country", func(t *testing.T) {
		got := GenerateCandidates(delhi, catalog, fixedRand(0.5), testNow)
		assert.Equal(t, "North Seismic Zone", got[0].Location)
		assert.Equal(t, "India River Basin", got[1].Location)
	})

	t.Run("draws stay within declared ranges", func(t *testing.T) {
		rng := NewSeededRand(42)
		for range 50 {
			for i, c := range GenerateCandidates(delhi, catalog, rng, testNow) {
				assert.GreaterOrEqual(t, c.DistanceKm, catalog[i].Distance.Min)
				assert.Less(t, c.DistanceKm, catalog[i].Distance.Max)
				assert.GreaterOrEqual(t, c.AffectedAreaKm2, catalog[i].AffectedArea.Min)
				assert.Less(t, c.AffectedAreaKm2, catalog[i].AffectedArea.Max)
			}
		}
	})

	t.Run("seeded source is reproducible", func(t *testing.T) {
		a := GenerateCandidates(delhi, catalog, NewSeededRand(7), testNow)
		b := GenerateCandidates(delhi, catalog, NewSeededRand(7), testNow)
		assert.Equal(t, a, b)
	})
}

func TestSelectRelevant(t *testing.T) {
	rules := DefaultRelevanceRules()
	far := func(tt ThreatType, affinity string) ThreatCandidate {
		return ThreatCandidate{Type: tt, DistanceKm: 800, affinity: affinity}
	}

	t.Run("affinity retains distant candidates", func(t *testing.T) {
		mumbai := mustCity(t, testMumbai)
		got := SelectRelevant([]ThreatCandidate{far(ThreatTsunami, GeoCoastal)}, mumbai, rules, fixedRand(0.99))
		require.Len(t, got, 1)
		assert.Equal(t, ThreatTsunami, got[0].Type)
	})

	t.Run("distance below threshold retains", func(t *testing.T) {
		near := ThreatCandidate{Type: ThreatFlood, DistanceKm: 499.9}
		got := SelectRelevant([]ThreatCandidate{near}, mustCity(t, testDelhi), rules, fixedRand(0.99))
		assert.Len(t, got, 1)
	})

	t.Run("distant candidates use inclusion probability", func(t *testing.T) {
		delhi := mustCity(t, testDelhi)
		in := []ThreatCandidate{far(ThreatTsunami, GeoCoastal), far(ThreatCyclone, "")}

		kept := SelectRelevant(in, delhi, rules, fixedRand(0.69))
		assert.Len(t, kept, 2)

		dropped := SelectRelevant(in, delhi, rules, fixedRand(0.7))
		assert.Empty(t, dropped)
	})

	t.Run("probability zero drops every distant candidate", func(t *testing.T) {
		strict := RelevanceRules{ThresholdKm: 500, InclusionProbability: 0}
		got := SelectRelevant([]ThreatCandidate{far(ThreatFlood, "")}, mustCity(t, testDelhi), strict, fixedRand(0))
		assert.Empty(t, got)
	})
}

func TestRelevanceRules_Validate(t *testing.T) {
	require.NoError(t, DefaultRelevanceRules().Validate())
	assert.Error(t, RelevanceRules{ThresholdKm: 0, InclusionProbability: 0.5}.Validate())
	assert.Error(t, RelevanceRules{ThresholdKm: 10, InclusionProbability: 1.5}.Validate())
}

func TestPickBest(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, ok := PickBest(nil)
		assert.False(t, ok)
	})

	t.Run("smallest distance wins", func(t *testing.T) {
		best, ok := PickBest([]ThreatCandidate{
			{Type: ThreatFlood, DistanceKm: 120, order: 1},
			{Type: ThreatHeatWave, DistanceKm: 30, order: 7},
			{Type: ThreatEarthquake, DistanceKm: 90, order: 0},
		})
		require.True(t, ok)
		assert.Equal(t, ThreatHeatWave, best.Type)
	})

	t.Run("ties go to catalog order", func(t *testing.T) {
		best, ok := PickBest([]ThreatCandidate{
			{Type: ThreatTsunami, DistanceKm: 50, order: 6},
			{Type: ThreatCyclone, DistanceKm: 50, order: 2},
			{Type: ThreatLandslide, DistanceKm: 50, order: 4},
		})
		require.True(t, ok)
		assert.Equal(t, ThreatCyclone, best.Type)
	})
}

func TestClassifyBadge(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		severity SeverityTag
		expected Badge
	}{
		{"danger close", 80, SeverityDanger, BadgeImmediateThreat},
		{"danger boundary", 100, SeverityDanger, BadgeImmediateThreat},
		{"danger beyond 100", 120, SeverityDanger, BadgeHighRiskZone},
		{"danger far", 900, SeverityDanger, BadgeHighRiskZone},
		{"caution within 150", 140, SeverityCaution, BadgeHighRiskZone},
		{"caution mid", 200, SeverityCaution, BadgeMonitorClosely},
		{"caution far", 400, SeverityCaution, BadgeMonitorClosely},
		{"untagged within 250", 240, "", BadgeMonitorClosely},
		{"untagged far", 400, "", BadgeSafeZone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyBadge(tt.distance, tt.severity))
		})
	}
}

func TestClassifyBadge_CautionNeverSafe(t *testing.T) {
	// Rule 3 matches any caution tag, so a caution threat is never SAFE_ZONE.
	assert.Equal(t, BadgeMonitorClosely, ClassifyBadge(400, SeverityCaution))
}

func TestBadge_Presentation(t *testing.T) {
	assert.Equal(t, "danger", BadgeImmediateThreat.DisplayClass())
	assert.Equal(t, "danger", BadgeHighRiskZone.DisplayClass())
	assert.Equal(t, "caution", BadgeMonitorClosely.DisplayClass())
	assert.Equal(t, "safe", BadgeSafeZone.DisplayClass())
	assert.Equal(t, "IMMEDIATE THREAT", BadgeImmediateThreat.Text())
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, "Move inland and to higher ground immediately.", Recommend(ThreatTsunami))
	assert.Equal(t, GenericRecommendation, Recommend("meteor"))
	for _, tmpl := range DefaultCatalog() {
		assert.NotEqual(t, GenericRecommendation, Recommend(tmpl.Type), tmpl.Type)
	}
}

func TestScanner_ScanCity(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)

	t.Run("unknown city yields no result", func(t *testing.T) {
		s := NewScanner(DefaultRegistry(), fixedRand(0), WithClock(clock))
		result, err := s.ScanCity("Atlantis")
		require.ErrorIs(t, err, ErrCityNotFound)
		assert.Equal(t, ScanResult{}, result)
	})

	t.Run("closest candidate at range minimum", func(t *testing.T) {
		// With zero draws every candidate sits at its minimum distance and is
		// under 500 km, so the heat wave (12.5 km) wins.
		s := NewScanner(DefaultRegistry(), fixedRand(0), WithClock(clock))
		result, err := s.ScanCity(" delhi ")
		require.NoError(t, err)
		require.True(t, result.Active())

		assert.Equal(t, ThreatHeatWave, result.Threat.Type)
		assert.Equal(t, 12.5, result.Threat.DistanceKm)
		assert.Equal(t, "India Regional Area", result.Threat.Location)
		assert.Equal(t, BadgeHighRiskZone, result.Badge)
		assert.Equal(t, "danger", result.BadgeClass)
		assert.Equal(t, Recommend(ThreatHeatWave), result.Recommendation)
		assert.Equal(t, testNow, result.ScannedAt)
		assert.Equal(t, testNow, result.Threat.Timestamp)
		assert.Equal(t, testDelhi, result.City.Name)
	})

	t.Run("no active threats is benign", func(t *testing.T) {
		strict := WithRelevanceRules(RelevanceRules{ThresholdKm: 1, InclusionProbability: 0})
		s := NewScanner(DefaultRegistry(), fixedRand(0.5), WithClock(clock), strict)
		result, err := s.ScanCity(testDelhi)
		require.NoError(t, err)
		assert.False(t, result.Active())
		assert.Equal(t, BadgeSafeZone, result.Badge)
		assert.Equal(t, NoActiveThreatsMessage, result.Message)
	})

	t.Run("coastal affinity keeps tsunami when nothing else survives", func(t *testing.T) {
		strict := WithRelevanceRules(RelevanceRules{ThresholdKm: 1, InclusionProbability: 0})
		s := NewScanner(DefaultRegistry(), fixedRand(0.5), WithClock(clock), strict)
		result, err := s.ScanCity(testMumbai)
		require.NoError(t, err)
		require.True(t, result.Active())
		assert.Equal(t, ThreatTsunami, result.Threat.Type)
		assert.Equal(t, BadgeHighRiskZone, result.Badge)
	})

	t.Run("custom catalog", func(t *testing.T) {
		catalog := []ThreatTemplate{{
			Type: ThreatEarthquake, Label: "Earthquake Alert", Severity: SeverityDanger,
			Distance: Range{80, 80}, AffectedArea: Range{1, 1}, LocationSuffix: "Fault",
		}}
		s := NewScanner(DefaultRegistry(), fixedRand(0.3), WithClock(clock), WithCatalog(catalog))
		result, err := s.ScanCity(testDelhi)
		require.NoError(t, err)
		assert.Equal(t, BadgeImmediateThreat, result.Badge)
		assert.Equal(t, "North Fault", result.Threat.Location)
	})
}

func TestScanner_SeededReproducible(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testNow)
	a, err := NewScanner(DefaultRegistry(), NewSeededRand(99), WithClock(clock)).ScanCity("Tokyo")
	require.NoError(t, err)
	b, err := NewScanner(DefaultRegistry(), NewSeededRand(99), WithClock(clock)).ScanCity("tokyo")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDefaultCatalog_Valid(t *testing.T) {
	catalog := DefaultCatalog()
	assert.GreaterOrEqual(t, len(catalog), 6)
	assert.LessOrEqual(t, len(catalog), 8)
	for _, tmpl := range catalog {
		assert.NoError(t, tmpl.Validate())
	}
}

func TestThreatTemplate_Validate(t *testing.T) {
	bad := ThreatTemplate{Type: ThreatFlood, Severity: "extreme", Distance: Range{1, 2}, AffectedArea: Range{1, 2}}
	assert.ErrorContains(t, bad.Validate(), "severity")

	inverted := ThreatTemplate{Type: ThreatFlood, Severity: SeverityCaution, Distance: Range{5, 2}, AffectedArea: Range{1, 2}}
	assert.ErrorContains(t, inverted.Validate(), "distance")
}
