package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/pipeline"
)

func loadNarrativeFixture(t *testing.T) []domain.NarrativeRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "narrative_turns.json"))
	require.NoError(t, err)

	var records []domain.NarrativeRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.NotEmpty(t, records)
	return records
}

func TestNarrativeTransformer_WithFixtureData(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC))
	tfm := pipeline.NewTransformer(domain.DefaultNarrativeClassifier(), clock, discardLogger())
	records := loadNarrativeFixture(t)

	dangerCounts := map[domain.DangerTier]int{}
	finished := 0
	byDrill := map[string][]domain.ClassifiedNarrative{}

	for i, rec := range records {
		payload, err := json.Marshal(rec)
		require.NoError(t, err)

		out, err := tfm.Transform(context.Background(), domain.RawEvent{
			Key:       []byte(fmt.Sprintf("record-%d", i)),
			Value:     payload,
			Timestamp: clock.Now(),
		})
		require.NoError(t, err, "record %d", i)

		dangerCounts[out.Danger]++
		if out.Finished {
			finished++
		}
		byDrill[out.DrillID] = append(byDrill[out.DrillID], out)
	}

	assert.Equal(t, 7, dangerCounts[domain.DangerHigh], "high")
	assert.Equal(t, 4, dangerCounts[domain.DangerLow], "low")
	assert.Equal(t, 1, dangerCounts[domain.DangerMedium], "medium")
	assert.Equal(t, 3, finished, "finished")
	assert.Len(t, byDrill, 4)

	// The flood drill ends with both a rescue and the word flood: danger wins.
	flood := byDrill["drill-flood-03"]
	require.Len(t, flood, 4)
	last := flood[len(flood)-1]
	assert.Equal(t, domain.DangerHigh, last.Danger)
	assert.True(t, last.Finished)

	type turnSummary struct {
		Step     int
		Danger   domain.DangerTier
		Finished bool
	}
	var fire []turnSummary
	for _, c := range byDrill["drill-fire-01"] {
		fire = append(fire, turnSummary{c.Step, c.Danger, c.Finished})
	}
	expected := []turnSummary{
		{1, domain.DangerHigh, false},
		{2, domain.DangerLow, false},
		{3, domain.DangerLow, true},
	}
	if diff := cmp.Diff(expected, fire); diff != "" {
		t.Fatalf("fire drill mismatch (-want +got):\n%s", diff)
	}
}
