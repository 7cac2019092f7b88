package domain

import (
	"context"
	"time"
)

// NarrativeRecord is the flat JSON published by the generation layer for
// every scenario turn it produces.
type NarrativeRecord struct {
	DrillID     string `json:"drill_id"`
	Step        int    `json:"step"`
	Text        string `json:"text"`
	GeneratedAt string `json:"generated_at,omitempty"` // RFC 3339
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// NarrativeEvent is a parsed, not yet classified, narrative turn.
type NarrativeEvent struct {
	ID          string
	DrillID     string
	Step        int
	Text        string
	GeneratedAt time.Time
	RawPayload  []byte
}

// ClassifiedNarrative is the serialized form destined for the sink topic.
type ClassifiedNarrative struct {
	ID           string     `json:"id"`
	DrillID      string     `json:"drill_id"`
	Step         int        `json:"step"`
	Text         string     `json:"text"`
	Danger       DangerTier `json:"danger"`
	Finished     bool       `json:"finished"`
	GeneratedAt  time.Time  `json:"generated_at"`
	ClassifiedAt time.Time  `json:"classified_at"`
}
