package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

// Rules is the variant configuration for relevance selection and narrative
// classification.
type Rules struct {
	Relevance domain.RelevanceRules
	Narrative domain.NarrativeRules
}

// DefaultRules returns the built-in rules.
func DefaultRules() Rules {
	return Rules{
		Relevance: domain.DefaultRelevanceRules(),
		Narrative: domain.DefaultNarrativeRules(),
	}
}

type rulesFile struct {
	Relevance struct {
		ThresholdKm          *float64 `toml:"threshold_km"`
		InclusionProbability *float64 `toml:"inclusion_probability"`
	} `toml:"relevance"`
	Narrative struct {
		High       []string `toml:"high"`
		Low        []string `toml:"low"`
		Finished   []string `toml:"finished"`
		Precedence string   `toml:"precedence"`
	} `toml:"narrative"`
}

// LoadRules reads a TOML rules file over the built-in defaults. An empty
// path returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	var f rulesFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Rules{}, fmt.Errorf("load rules %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Rules{}, fmt.Errorf("load rules %s: unknown key %q", path, undecoded[0].String())
	}

	if v := f.Relevance.ThresholdKm; v != nil {
		rules.Relevance.ThresholdKm = *v
	}
	if v := f.Relevance.InclusionProbability; v != nil {
		rules.Relevance.InclusionProbability = *v
	}
	if md.IsDefined("narrative", "high") {
		rules.Narrative.High = f.Narrative.High
	}
	if md.IsDefined("narrative", "low") {
		rules.Narrative.Low = f.Narrative.Low
	}
	if md.IsDefined("narrative", "finished") {
		rules.Narrative.Finished = f.Narrative.Finished
	}
	if f.Narrative.Precedence != "" {
		rules.Narrative.Precedence = domain.Precedence(f.Narrative.Precedence)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("load rules %s: %w", path, err)
	}
	return rules, nil
}

// Validate checks rule values without compiling keyword patterns.
func (r Rules) Validate() error {
	if err := r.Relevance.Validate(); err != nil {
		return err
	}
	switch r.Narrative.Precedence {
	case domain.PrecedenceDanger, domain.PrecedenceSafety, "":
	default:
		return fmt.Errorf("unknown narrative precedence %q", r.Narrative.Precedence)
	}
	if len(r.Narrative.High) == 0 && len(r.Narrative.Low) == 0 {
		return errors.New("narrative rules need at least one high or low keyword")
	}
	high := make(map[string]struct{}, len(r.Narrative.High))
	for _, k := range r.Narrative.High {
		high[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	for _, k := range r.Narrative.Low {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		if _, ok := high[key]; ok {
			return fmt.Errorf("narrative keyword %q is both high and low", k)
		}
	}
	return nil
}
