package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock generator ---

type mockGenerator struct {
	text  string
	err   error
	calls int
	last  GenerationRequest
}

func (m *mockGenerator) Generate(_ context.Context, req GenerationRequest) (string, error) {
	m.calls++
	m.last = req
	return m.text, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestRunDrillTurn_NilGenerator(t *testing.T) {
	turn, err := RunDrillTurn(context.Background(), GenerationRequest{Step: 1}, nil, DefaultNarrativeClassifier(), discardLogger())

	require.NoError(t, err)
	assert.True(t, turn.Degraded)
	assert.Equal(t, FallbackReply, turn.Text)
	assert.Equal(t, DangerMedium, turn.Danger)
	assert.False(t, turn.Finished)
}

func TestRunDrillTurn_Success(t *testing.T) {
	gen := &mockGenerator{text: "Smoke pours under the door. What do you do?"}
	req := GenerationRequest{Step: 2, UserAction: "I open the window"}

	turn, err := RunDrillTurn(context.Background(), req, gen, DefaultNarrativeClassifier(), discardLogger())

	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, req, gen.last)
	assert.False(t, turn.Degraded)
	assert.Equal(t, 2, turn.Step)
	assert.Equal(t, DangerHigh, turn.Danger)
}

func TestRunDrillTurn_Finished(t *testing.T) {
	gen := &mockGenerator{text: "You are rescued. Simulation complete."}

	turn, err := RunDrillTurn(context.Background(), GenerationRequest{Step: 5}, gen, DefaultNarrativeClassifier(), discardLogger())

	require.NoError(t, err)
	assert.Equal(t, DangerLow, turn.Danger)
	assert.True(t, turn.Finished)
}

func TestRunDrillTurn_GeneratorError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("upstream timeout")}

	turn, err := RunDrillTurn(context.Background(), GenerationRequest{Step: 1}, gen, DefaultNarrativeClassifier(), discardLogger())

	require.NoError(t, err)
	assert.True(t, turn.Degraded)
	assert.Equal(t, FallbackReply, turn.Text)
	assert.Equal(t, DangerMedium, turn.Danger)
}

func TestRunDrillTurn_EmptyReply(t *testing.T) {
	gen := &mockGenerator{text: "   "}

	turn, err := RunDrillTurn(context.Background(), GenerationRequest{Step: 1}, gen, DefaultNarrativeClassifier(), discardLogger())

	require.NoError(t, err)
	assert.True(t, turn.Degraded)
}

func TestRunDrillTurn_InvalidStep(t *testing.T) {
	gen := &mockGenerator{text: "unused"}

	_, err := RunDrillTurn(context.Background(), GenerationRequest{Step: 0}, gen, DefaultNarrativeClassifier(), discardLogger())

	require.ErrorIs(t, err, ErrInvalidStep)
	assert.Zero(t, gen.calls)
}
