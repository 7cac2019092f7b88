package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNarrative(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		danger   DangerTier
		finished bool
	}{
		{"danger keywords", "Smoke is filling the hallway and the ceiling may collapse.", DangerHigh, false},
		{"safety keyword", "You reached the assembly point. Everyone is safe.", DangerLow, false},
		{"completion phrase", "Well done. Simulation complete. You survived the drill.", DangerMedium, true},
		{"mixed defaults to danger", "The fire is out but the building is not yet safe.", DangerHigh, false},
		{"case insensitive", "WATER IS RISING FAST", DangerHigh, false},
		{"safety keyword needs word start", "The corridor looks unsafe.", DangerMedium, false},
		{"danger keyword prefix", "Flooding has reached the stairwell.", DangerHigh, false},
		{"danger keyword inside word", "A wildfire is racing toward the village.", DangerHigh, false},
		{"gunfire", "Gunfire echoes across the square.", DangerHigh, false},
		{"compound flood", "The flashflood rose overnight.", DangerHigh, false},
		{"compound shake", "The earthshake continues.", DangerHigh, false},
		{"spreading fire", "Fire is spreading and smoke fills the corridor.", DangerHigh, false},
		{"safe and stable", "The area is now safe and stable.", DangerLow, false},
		{"survived phrase", "You survived the earthquake, simulation complete.", DangerMedium, true},
		{"no keywords", "You hear a distant siren.", DangerMedium, false},
		{"empty", "", DangerMedium, false},
		{"whitespace only", "  \n\t ", DangerMedium, false},
		{"danger and finished", "The explosion was contained. End of scenario.", DangerHigh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNarrative(tt.text)
			assert.Equal(t, tt.danger, got.Danger)
			assert.Equal(t, tt.finished, got.Finished)
		})
	}
}

func TestNarrativeClassifier_SafetyPrecedence(t *testing.T) {
	rules := DefaultNarrativeRules()
	rules.Precedence = PrecedenceSafety
	c, err := NewNarrativeClassifier(rules)
	require.NoError(t, err)

	assert.Equal(t, DangerLow, c.Classify("The fire is out and the area is clear.").Danger)
	assert.Equal(t, DangerHigh, c.Classify("Smoke everywhere.").Danger)
}

func TestNarrativeClassifier_CustomRules(t *testing.T) {
	c, err := NewNarrativeClassifier(NarrativeRules{
		High:     []string{"lava", " "},
		Finished: []string{"drill over"},
	})
	require.NoError(t, err)

	assert.Equal(t, DangerHigh, c.Classify("Lava flows toward the road.").Danger)
	// Without low keywords nothing maps to low.
	assert.Equal(t, DangerMedium, c.Classify("Everyone is safe.").Danger)
	assert.True(t, c.Classify("The DRILL OVER signal sounds.").Finished)
}

func TestNarrativeClassifier_QuotesMeta(t *testing.T) {
	c, err := NewNarrativeClassifier(NarrativeRules{High: []string{"c++"}})
	require.NoError(t, err)
	assert.Equal(t, DangerHigh, c.Classify("c++ is on fire").Danger)
	assert.Equal(t, DangerMedium, c.Classify("cccc").Danger)
}

func TestNewNarrativeClassifier_UnknownPrecedence(t *testing.T) {
	rules := DefaultNarrativeRules()
	rules.Precedence = "whichever"
	_, err := NewNarrativeClassifier(rules)
	assert.ErrorContains(t, err, "precedence")
}

func TestNewNarrativeTurn(t *testing.T) {
	c := DefaultNarrativeClassifier()

	turn, err := c.NewNarrativeTurn(3, "  The water is rising.  ")
	require.NoError(t, err)
	assert.Equal(t, NarrativeTurn{Step: 3, Text: "The water is rising.", Danger: DangerHigh}, turn)

	_, err = c.NewNarrativeTurn(0, "text")
	assert.ErrorIs(t, err, ErrInvalidStep)
}
