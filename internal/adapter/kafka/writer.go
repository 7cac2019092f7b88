package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/calm-guard-drill/internal/config"
	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

// Writer produces classified narrative turns to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic. Messages
// are keyed by drill ID and hash-partitioned, so one drill's turns stay in order.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes classified turns in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, turns []domain.ClassifiedNarrative) error {
	if len(turns) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(turns))
	for i := range turns {
		msg, err := serializeToMessage(turns[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Debug("loaded batch", "size", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ClassifiedNarrative into a Kafka message.
func serializeToMessage(turn domain.ClassifiedNarrative) (kafkago.Message, error) {
	data, err := json.Marshal(turn)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize classified narrative: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(turn.DrillID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "danger", Value: []byte(turn.Danger)},
			{Key: "finished", Value: []byte(strconv.FormatBool(turn.Finished))},
			{Key: "classified_at", Value: []byte(turn.ClassifiedAt.Format(time.RFC3339))},
		},
	}, nil
}
