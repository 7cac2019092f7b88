package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/observability"
)

// defaultMaxAttempts bounds the read-transition-swap loop under contention.
const defaultMaxAttempts = 5

// View is a session as presented to the quiz UI.
type View struct {
	Session  domain.QuizSession `json:"session"`
	Total    int                `json:"total"`
	Progress string             `json:"progress"`
	// Question is the current question while the session is in progress.
	Question *domain.Question `json:"question,omitempty"`
	Tier     domain.Tier      `json:"tier,omitempty"`
	Advice   string           `json:"advice,omitempty"`
}

// Manager applies quiz transitions to stored sessions.
type Manager struct {
	store       Store
	bank        *domain.QuestionBank
	logger      *slog.Logger
	metrics     *observability.Metrics
	newID       func() string
	maxAttempts int
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithIDGenerator replaces the UUID session ID generator.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) { m.newID = fn }
}

// WithMaxAttempts sets how many times a conflicting write is retried.
func WithMaxAttempts(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// NewManager creates a Manager over store and bank.
func NewManager(store Store, bank *domain.QuestionBank, logger *slog.Logger, metrics *observability.Metrics, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		bank:        bank,
		logger:      logger,
		metrics:     metrics,
		newID:       uuid.NewString,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session at the first question.
func (m *Manager) Create(ctx context.Context) (View, error) {
	s, err := m.store.Create(ctx, domain.NewQuizSession(m.newID()))
	if err != nil {
		return View{}, err
	}
	m.logger.Debug("quiz session created", "session_id", s.ID)
	return m.view(s), nil
}

// Get returns the current view of a session.
func (m *Manager) Get(ctx context.Context, id string) (View, error) {
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return m.view(s), nil
}

// Answer scores choice against the session's current question.
func (m *Manager) Answer(ctx context.Context, id string, choice int) (domain.AnswerResult, View, error) {
	var result domain.AnswerResult
	s, err := m.update(ctx, id, func(s domain.QuizSession) (domain.QuizSession, error) {
		res, next, err := m.bank.Answer(s, choice)
		result = res
		return next, err
	})
	if err != nil {
		return domain.AnswerResult{}, View{}, err
	}

	outcome := "incorrect"
	if result.Correct {
		outcome = "correct"
	}
	m.metrics.QuizAnswers.WithLabelValues(outcome).Inc()
	return result, m.view(s), nil
}

// Advance moves the session past its answered question.
func (m *Manager) Advance(ctx context.Context, id string) (View, error) {
	s, err := m.update(ctx, id, m.bank.Advance)
	if err != nil {
		return View{}, err
	}
	if s.Finished {
		tier := domain.TierForScore(s.Score)
		m.metrics.QuizCompletions.WithLabelValues(string(tier)).Inc()
		m.logger.Info("quiz session finished", "session_id", s.ID, "score", s.Score, "tier", tier)
	}
	return m.view(s), nil
}

// Restart resets the session to the first question with a zero score.
func (m *Manager) Restart(ctx context.Context, id string) (View, error) {
	s, err := m.update(ctx, id, func(s domain.QuizSession) (domain.QuizSession, error) {
		return domain.Restart(s), nil
	})
	if err != nil {
		return View{}, err
	}
	return m.view(s), nil
}

// Delete ends the session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// update reads the session, applies fn and swaps the result in, retrying
// when another writer got there first. Transition errors are not retried.
func (m *Manager) update(ctx context.Context, id string, fn func(domain.QuizSession) (domain.QuizSession, error)) (domain.QuizSession, error) {
	for attempt := 1; ; attempt++ {
		current, err := m.store.Get(ctx, id)
		if err != nil {
			return domain.QuizSession{}, err
		}
		next, err := fn(current)
		if err != nil {
			return domain.QuizSession{}, err
		}

		stored, err := m.store.CompareAndSwap(ctx, next)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return domain.QuizSession{}, err
		}

		m.metrics.SessionConflicts.Inc()
		m.logger.Debug("session write conflict", "session_id", id, "attempt", attempt)
		if attempt >= m.maxAttempts {
			return domain.QuizSession{}, fmt.Errorf("update session %s after %d attempts: %w", id, attempt, err)
		}
		if err := ctx.Err(); err != nil {
			return domain.QuizSession{}, err
		}
	}
}

func (m *Manager) view(s domain.QuizSession) View {
	total := m.bank.Len()
	v := View{Session: s, Total: total}
	if s.Finished {
		v.Progress = fmt.Sprintf("Completed %d of %d", total, total)
		v.Tier = domain.TierForScore(s.Score)
		v.Advice = v.Tier.Advice()
		return v
	}
	v.Progress = fmt.Sprintf("Question %d of %d", s.Index+1, total)
	if q, err := m.bank.Current(s); err == nil {
		v.Question = &q
	}
	return v
}
