// Package fixture produces deterministic radar scan fixtures. A fixture file
// records its seed and clock so it can be regenerated and compared byte for
// byte.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

// File is the on-disk fixture format.
type File struct {
	Seed        uint64              `json:"seed"`
	GeneratedAt time.Time           `json:"generated_at"`
	Scans       []domain.ScanResult `json:"scans"`
}

// Generate scans every registry city in name order with a source seeded by
// seed and a clock frozen at at.
func Generate(registry *domain.Registry, seed uint64, at time.Time) File {
	at = at.UTC()
	scanner := domain.NewScanner(registry, domain.NewSeededRand(seed),
		domain.WithClock(clockwork.NewFakeClockAt(at)))

	cities := registry.List()
	scans := make([]domain.ScanResult, 0, len(cities))
	for _, c := range cities {
		scans = append(scans, scanner.Scan(c))
	}
	return File{Seed: seed, GeneratedAt: at, Scans: scans}
}

// Marshal encodes f as indented JSON with a trailing newline.
func Marshal(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal fixture: %w", err)
	}
	return append(data, '\n'), nil
}

// Write generates a fixture and writes it to path.
func Write(path string, registry *domain.Registry, seed uint64, at time.Time) (File, error) {
	f := Generate(registry, seed, at)
	data, err := Marshal(f)
	if err != nil {
		return File{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return File{}, fmt.Errorf("write fixture: %w", err)
	}
	return f, nil
}

// Verify regenerates the fixture at path from its recorded seed and clock
// and reports whether the bytes match.
func Verify(path string, registry *domain.Registry) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read fixture: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse fixture: %w", err)
	}

	want, err := Marshal(Generate(registry, f.Seed, f.GeneratedAt))
	if err != nil {
		return f, err
	}
	if !bytes.Equal(data, want) {
		return f, fmt.Errorf("fixture %s does not reproduce from seed %d at %s",
			path, f.Seed, f.GeneratedAt.Format(time.RFC3339))
	}
	return f, nil
}
