package domain

import (
	"context"
	"log/slog"
	"strings"
)

// FallbackReply is shown when the generator is disabled, fails, or returns
// nothing usable.
const FallbackReply = "AI is not responding. Try again."

// DrillTurn is the reply for one step of the guided drill.
type DrillTurn struct {
	NarrativeTurn
	// Degraded is true when the reply is the fallback text.
	Degraded bool `json:"degraded"`
}

// RunDrillTurn asks generator for the next scenario text and classifies it.
// A nil generator, a generation error or an empty reply all degrade to the
// fallback reply with medium danger and not finished.
func RunDrillTurn(ctx context.Context, req GenerationRequest, generator NarrativeGenerator, classifier *NarrativeClassifier, logger *slog.Logger) (DrillTurn, error) {
	if req.Step < 1 {
		return DrillTurn{}, ErrInvalidStep
	}

	fallback := DrillTurn{
		NarrativeTurn: NarrativeTurn{Step: req.Step, Text: FallbackReply, Danger: DangerMedium},
		Degraded:      true,
	}

	if generator == nil {
		return fallback, nil
	}

	text, err := generator.Generate(ctx, req)
	if err != nil {
		logger.Warn("narrative generation failed",
			"step", req.Step,
			"error", err,
		)
		return fallback, nil
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("narrative generation returned empty text", "step", req.Step)
		return fallback, nil
	}

	turn, err := classifier.NewNarrativeTurn(req.Step, text)
	if err != nil {
		return DrillTurn{}, err
	}
	return DrillTurn{NarrativeTurn: turn}, nil
}
