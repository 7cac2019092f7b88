package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/observability"
)

// Retry backoff for extract and load failures.
const (
	initialBackoff    = 200 * time.Millisecond
	defaultMaxBackoff = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer parses and classifies one raw narrative turn.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.ClassifiedNarrative, error)
}

// BatchLoader writes classified turns to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, turns []domain.ClassifiedNarrative) error
}

// Pipeline orchestrates the extract-classify-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has loaded at least one
// classified turn.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Ready reports whether the pipeline has loaded at least one batch.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	retry := newBackoff(initialBackoff, defaultMaxBackoff)
	for ctx.Err() == nil {
		if !p.step(ctx, retry) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// step runs one extract-classify-load cycle. It returns false once ctx is done.
func (p *Pipeline) step(ctx context.Context, retry *backoff) bool {
	start := time.Now()

	raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return retry.wait(ctx)
	}
	if len(raws) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(raws)))
	p.metrics.BatchSize.Observe(float64(len(raws)))
	retry.reset()

	b := p.classify(ctx, raws)
	if len(b.turns) == 0 {
		return true
	}

	if err := p.loader.LoadBatch(ctx, b.turns); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(b.turns))
		return retry.wait(ctx)
	}
	p.metrics.MessagesProduced.Add(float64(len(b.turns)))
	for _, raw := range b.accepted {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Debug("batch classified",
		"turns", len(b.turns),
		"rejected", b.rejected,
		"high", b.byDanger[domain.DangerHigh],
		"medium", b.byDanger[domain.DangerMedium],
		"low", b.byDanger[domain.DangerLow],
		"finished_drills", b.finished,
	)
	return true
}

// batch is the classified half of one extracted batch.
type batch struct {
	turns    []domain.ClassifiedNarrative
	accepted []domain.RawEvent
	rejected int
	byDanger map[domain.DangerTier]int
	finished int
}

// classify transforms every raw turn. Rejected turns are poison: they are
// counted, committed, and dropped so they never block the partition.
func (p *Pipeline) classify(ctx context.Context, raws []domain.RawEvent) batch {
	b := batch{
		turns:    make([]domain.ClassifiedNarrative, 0, len(raws)),
		accepted: make([]domain.RawEvent, 0, len(raws)),
		byDanger: make(map[domain.DangerTier]int, 3),
	}
	for _, raw := range raws {
		turn, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("narrative turn rejected, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			b.rejected++
			continue
		}

		p.metrics.NarrativeClassified.WithLabelValues(string(turn.Danger), "pipeline").Inc()
		b.byDanger[turn.Danger]++
		if turn.Finished {
			b.finished++
		}
		b.turns = append(b.turns, turn)
		b.accepted = append(b.accepted, raw)
	}
	return b
}

// commit acknowledges raw if its source supports commits.
func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// backoff doubles a retry delay up to a ceiling.
type backoff struct {
	initial, ceiling, current time.Duration
}

func newBackoff(initial, ceiling time.Duration) *backoff {
	return &backoff{initial: initial, ceiling: ceiling, current: initial}
}

func (b *backoff) reset() { b.current = b.initial }

// wait sleeps for the current delay and doubles it. It returns false if ctx
// ends first.
func (b *backoff) wait(ctx context.Context) bool {
	timer := time.NewTimer(b.current)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	b.current = min(b.current*2, b.ceiling)
	return true
}
