package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ParseNarrativeEvent deserializes a RawEvent's value into a NarrativeEvent.
// The generation timestamp falls back to the message timestamp when the
// record omits it or carries an unparseable value.
func ParseNarrativeEvent(raw RawEvent) (NarrativeEvent, error) {
	var rec NarrativeRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return NarrativeEvent{}, fmt.Errorf("parse narrative event: %w", err)
	}

	drillID := strings.TrimSpace(rec.DrillID)
	if drillID == "" {
		drillID = string(raw.Key)
	}
	if drillID == "" {
		return NarrativeEvent{}, errors.New("parse narrative event: missing drill_id")
	}
	if rec.Step < 1 {
		return NarrativeEvent{}, fmt.Errorf("parse narrative event: step %d: %w", rec.Step, ErrInvalidStep)
	}

	return NarrativeEvent{
		ID:          generateID(drillID, rec.Step, rec.Text),
		DrillID:     drillID,
		Step:        rec.Step,
		Text:        rec.Text,
		GeneratedAt: parseGeneratedAt(rec.GeneratedAt, raw.Timestamp),
		RawPayload:  raw.Value,
	}, nil
}

// ClassifyNarrativeEvent attaches the danger tier and completion flag.
// Empty text classifies as medium and not finished rather than failing.
func ClassifyNarrativeEvent(event NarrativeEvent, classifier *NarrativeClassifier, now time.Time) ClassifiedNarrative {
	a := classifier.Classify(event.Text)
	return ClassifiedNarrative{
		ID:           event.ID,
		DrillID:      event.DrillID,
		Step:         event.Step,
		Text:         strings.TrimSpace(event.Text),
		Danger:       a.Danger,
		Finished:     a.Finished,
		GeneratedAt:  event.GeneratedAt,
		ClassifiedAt: now.UTC(),
	}
}

func parseGeneratedAt(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback.UTC()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback.UTC()
	}
	return t.UTC()
}

// generateID produces a deterministic ID from drill, step and text so that
// replaying the same turn yields the same ID downstream.
func generateID(drillID string, step int, text string) string {
	input := fmt.Sprintf("%s|%d|%s", drillID, step, text)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s-%d-%s", drillID, step, hex.EncodeToString(hash[:6]))
}
