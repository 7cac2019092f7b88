package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_DoublesUpToCeiling(t *testing.T) {
	b := newBackoff(time.Millisecond, 3*time.Millisecond)
	ctx := context.Background()

	assert.True(t, b.wait(ctx))
	assert.Equal(t, 2*time.Millisecond, b.current)
	assert.True(t, b.wait(ctx))
	assert.Equal(t, 3*time.Millisecond, b.current)
	assert.True(t, b.wait(ctx))
	assert.Equal(t, 3*time.Millisecond, b.current)

	b.reset()
	assert.Equal(t, time.Millisecond, b.current)
}

func TestBackoff_StopsOnCancel(t *testing.T) {
	b := newBackoff(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, b.wait(ctx))
	assert.Equal(t, time.Hour, b.current)
}
