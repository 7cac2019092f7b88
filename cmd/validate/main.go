// Command validate performs integrity checks over the built-in drill tables
// (question bank, city registry, threat catalog, safety plans) and, when
// given, verifies that a scan fixture reproduces from its seed and clock.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -fixtures testdata/scans.json \
//	  -rules rules.toml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/calm-guard-drill/internal/config"
	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/fixture"
)

const (
	expectedQuestions = 20
	expectedCities    = 16
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixturesPath := flag.String("fixtures", "", "path to a scan fixture written by drillctl fixtures")
	rulesPath := flag.String("rules", "", "path to a TOML rules file to check")
	flag.Parse()

	os.Exit(run(os.Stdout, *fixturesPath, *rulesPath))
}

func run(w io.Writer, fixturesPath, rulesPath string) int {
	fmt.Fprintln(w, "=== Drill Data Integrity Validation ===")
	fmt.Fprintln(w)

	phases := []*phase{
		validateQuestionBank(domain.DefaultQuestions()),
		validateCities(domain.DefaultCities()),
		validateCatalog(domain.DefaultCatalog()),
		validatePlans(),
	}
	if rulesPath != "" {
		phases = append(phases, validateRules(rulesPath))
	}
	if fixturesPath != "" {
		phases = append(phases, validateFixture(fixturesPath))
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Question bank ──

func validateQuestionBank(questions []domain.Question) *phase {
	p := &phase{name: "Question bank"}
	if len(questions) != expectedQuestions {
		p.errorf("expected %d questions, got %d", expectedQuestions, len(questions))
	}
	prompts := make(map[string]int, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			p.errorf("question %d: %v", i+1, err)
		}
		if q.Explanation == "" {
			p.errorf("question %d: missing explanation", i+1)
		}
		if prev, dup := prompts[q.Prompt]; dup {
			p.errorf("question %d repeats question %d", i+1, prev)
		}
		prompts[q.Prompt] = i + 1
	}
	return p
}

// ── City registry ──

func validateCities(cities []domain.City) *phase {
	p := &phase{name: "City registry"}
	if len(cities) != expectedCities {
		p.errorf("expected %d cities, got %d", expectedCities, len(cities))
	}
	if _, err := domain.NewRegistry(cities); err != nil {
		p.errorf("%v", err)
	}
	for _, c := range cities {
		if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
			p.errorf("%s: coordinates out of range (%.4f, %.4f)", c.Name, c.Latitude, c.Longitude)
		}
		if c.Country == "" || c.Region == "" {
			p.errorf("%s: missing country or region", c.Name)
		}
	}
	return p
}

// ── Threat catalog ──

func validateCatalog(catalog []domain.ThreatTemplate) *phase {
	p := &phase{name: "Threat catalog"}
	seen := make(map[domain.ThreatType]bool, len(catalog))
	for _, t := range catalog {
		if err := t.Validate(); err != nil {
			p.errorf("%v", err)
		}
		if seen[t.Type] {
			p.errorf("template %s declared twice", t.Type)
		}
		seen[t.Type] = true
		if domain.Recommend(t.Type) == domain.GenericRecommendation {
			p.errorf("template %s has no dedicated recommendation", t.Type)
		}
	}
	return p
}

// ── Safety plans ──

func validatePlans() *phase {
	p := &phase{name: "Safety plans"}
	for _, pt := range domain.PlanTypes() {
		plan := domain.PlanFor(string(pt))
		if plan.Disaster != pt {
			p.errorf("%s: lookup returned the %s plan", pt, plan.Disaster)
		}
		switch plan.RiskLevel {
		case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
		default:
			p.errorf("%s: unknown risk level %q", pt, plan.RiskLevel)
		}
		if len(plan.Checklist) == 0 || len(plan.Evacuation) == 0 || len(plan.ResourcesNeeded) == 0 {
			p.errorf("%s: empty checklist, evacuation or resources", pt)
		}
		if plan.Helpline == "" {
			p.errorf("%s: missing helpline", pt)
		}
	}
	return p
}

// ── Rules file ──

func validateRules(path string) *phase {
	p := &phase{name: "Rules file"}
	rules, err := config.LoadRules(path)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if _, err := domain.NewNarrativeClassifier(rules.Narrative); err != nil {
		p.errorf("narrative rules: %v", err)
	}
	return p
}

// ── Fixture reproducibility ──

func validateFixture(path string) *phase {
	p := &phase{name: "Fixture reproducibility"}
	f, err := fixture.Verify(path, domain.DefaultRegistry())
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if len(f.Scans) != expectedCities {
		p.errorf("fixture has %d scans, want %d", len(f.Scans), expectedCities)
	}
	return p
}
