package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DangerTier is the inferred danger level of a narrative turn.
type DangerTier string

const (
	DangerLow    DangerTier = "low"
	DangerMedium DangerTier = "medium"
	DangerHigh   DangerTier = "high"
)

// Precedence decides the tier when both danger and safety keywords match.
type Precedence string

const (
	PrecedenceDanger Precedence = "danger"
	PrecedenceSafety Precedence = "safety"
)

// NarrativeRules is the declarative keyword table behind ClassifyNarrative.
type NarrativeRules struct {
	High       []string
	Low        []string
	Finished   []string
	Precedence Precedence
}

// DefaultNarrativeRules returns the built-in keyword table.
func DefaultNarrativeRules() NarrativeRules {
	return NarrativeRules{
		High:       []string{"fire", "collapse", "smoke", "shake", "flood", "explosion", "toxic", "rising"},
		Low:        []string{"safe", "stabilize", "rescued", "clear", "stable"},
		Finished:   []string{"simulation complete", "end of scenario", "you survived"},
		Precedence: PrecedenceDanger,
	}
}

// NarrativeAssessment is the classification of one piece of narrative text.
type NarrativeAssessment struct {
	Danger   DangerTier `json:"danger"`
	Finished bool       `json:"finished"`
}

// tierRule maps a compiled keyword set to a tier.
type tierRule struct {
	tier    DangerTier
	pattern *regexp.Regexp
}

// NarrativeClassifier applies compiled NarrativeRules. It holds no mutable
// state and is safe for concurrent use.
type NarrativeClassifier struct {
	// tiers are evaluated in order; the first match wins.
	tiers    []tierRule
	finished *regexp.Regexp
}

// NewNarrativeClassifier compiles rules.
func NewNarrativeClassifier(rules NarrativeRules) (*NarrativeClassifier, error) {
	high, err := compileKeywords(rules.High, false)
	if err != nil {
		return nil, fmt.Errorf("high keywords: %w", err)
	}
	low, err := compileKeywords(rules.Low, true)
	if err != nil {
		return nil, fmt.Errorf("low keywords: %w", err)
	}
	finished, err := compileKeywords(rules.Finished, false)
	if err != nil {
		return nil, fmt.Errorf("finished phrases: %w", err)
	}

	highRule := tierRule{tier: DangerHigh, pattern: high}
	lowRule := tierRule{tier: DangerLow, pattern: low}

	c := &NarrativeClassifier{finished: finished}
	switch rules.Precedence {
	case PrecedenceDanger, "":
		c.tiers = []tierRule{highRule, lowRule}
	case PrecedenceSafety:
		c.tiers = []tierRule{lowRule, highRule}
	default:
		return nil, fmt.Errorf("unknown precedence %q", rules.Precedence)
	}
	return c, nil
}

// DefaultNarrativeClassifier returns a classifier over DefaultNarrativeRules.
func DefaultNarrativeClassifier() *NarrativeClassifier {
	c, err := NewNarrativeClassifier(DefaultNarrativeRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Classify infers the danger tier and completion flag of text. Empty or
// unrecognizable text yields medium and not finished.
func (c *NarrativeClassifier) Classify(text string) NarrativeAssessment {
	out := NarrativeAssessment{Danger: DangerMedium}
	if strings.TrimSpace(text) == "" {
		return out
	}
	for _, r := range c.tiers {
		if r.pattern != nil && r.pattern.MatchString(text) {
			out.Danger = r.tier
			break
		}
	}
	out.Finished = c.finished != nil && c.finished.MatchString(text)
	return out
}

// ClassifyNarrative classifies text with the default rules.
func ClassifyNarrative(text string) NarrativeAssessment {
	return defaultClassifier.Classify(text)
}

var defaultClassifier = DefaultNarrativeClassifier()

// compileKeywords builds one case-insensitive alternation. Danger keywords and
// completion phrases match anywhere in the text, so "wildfire" counts as fire.
// Safety keywords are anchored at a word start so that "unsafe" does not count
// as "safe".
func compileKeywords(keywords []string, wordStart bool) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(k))
	}
	if len(parts) == 0 {
		return nil, nil
	}
	expr := `(?i)(?:` + strings.Join(parts, "|") + `)`
	if wordStart {
		expr = `(?i)\b(?:` + strings.Join(parts, "|") + `)`
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile keywords: %w", err)
	}
	return re, nil
}

// NarrativeTurn is one classified exchange of the guided drill.
type NarrativeTurn struct {
	Step     int        `json:"step"`
	Text     string     `json:"text"`
	Danger   DangerTier `json:"danger"`
	Finished bool       `json:"finished"`
}

// NewNarrativeTurn classifies text as turn number step.
func (c *NarrativeClassifier) NewNarrativeTurn(step int, text string) (NarrativeTurn, error) {
	if step < 1 {
		return NarrativeTurn{}, fmt.Errorf("step %d: %w", step, ErrInvalidStep)
	}
	a := c.Classify(text)
	return NarrativeTurn{
		Step:     step,
		Text:     strings.TrimSpace(text),
		Danger:   a.Danger,
		Finished: a.Finished,
	}, nil
}
