package domain

import "context"

// GenerationRequest asks the external narrative service for the next turn.
type GenerationRequest struct {
	Step       int
	UserAction string
}

// NarrativeGenerator produces freeform scenario text. Implementations live in
// adapters; the classification core only consumes the returned text.
type NarrativeGenerator interface {
	// Generate returns the scenario text for the requested turn.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}
