package kafka

import (
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("drill-1"),
		Value:     []byte(`{"drill_id":"drill-1","step":1,"text":"Smoke."}`),
		Topic:     "narrative-turns",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("gemini")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("drill-1"), raw.Key)
	assert.JSONEq(t, `{"drill_id":"drill-1","step":1,"text":"Smoke."}`, string(raw.Value))
	assert.Equal(t, "narrative-turns", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "gemini", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 31, 0, 0, time.UTC)
	turn := domain.ClassifiedNarrative{
		ID:           "drill-1-3-abcdef012345",
		DrillID:      "drill-1",
		Step:         3,
		Text:         "Everyone is safe. Simulation complete.",
		Danger:       domain.DangerLow,
		Finished:     true,
		GeneratedAt:  now.Add(-time.Minute),
		ClassifiedAt: now,
	}

	msg, err := serializeToMessage(turn)
	require.NoError(t, err)

	assert.Equal(t, []byte("drill-1"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "danger", msg.Headers[0].Key)
	assert.Equal(t, []byte("low"), msg.Headers[0].Value)
	assert.Equal(t, "finished", msg.Headers[1].Key)
	assert.Equal(t, []byte("true"), msg.Headers[1].Value)
	assert.Equal(t, "classified_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var decoded domain.ClassifiedNarrative
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, turn, decoded)
}
