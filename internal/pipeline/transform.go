package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

// NarrativeTransformer implements Transformer by parsing narrative turns and
// running them through the keyword classifier.
type NarrativeTransformer struct {
	classifier *domain.NarrativeClassifier
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewTransformer creates a NarrativeTransformer. A nil clock uses wall time.
func NewTransformer(classifier *domain.NarrativeClassifier, clock clockwork.Clock, logger *slog.Logger) *NarrativeTransformer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &NarrativeTransformer{
		classifier: classifier,
		clock:      clock,
		logger:     logger,
	}
}

func (t *NarrativeTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.ClassifiedNarrative, error) {
	event, err := domain.ParseNarrativeEvent(raw)
	if err != nil {
		return domain.ClassifiedNarrative{}, err
	}

	out := domain.ClassifyNarrativeEvent(event, t.classifier, t.clock.Now())
	t.logger.Debug("narrative turn classified",
		"drill_id", out.DrillID,
		"step", out.Step,
		"danger", out.Danger,
		"finished", out.Finished,
	)
	return out, nil
}
