// Package session persists quiz sessions. Every write is a compare-and-swap
// on the session's Version, so concurrent answer and advance requests for
// one session serialize without a lock held across the request.
package session

import (
	"context"
	"errors"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrVersionConflict is returned when the stored version no longer
	// matches the version the caller read.
	ErrVersionConflict = errors.New("session version conflict")

	// ErrSessionExists is returned when creating a session whose ID is taken.
	ErrSessionExists = errors.New("session already exists")
)

// Store is the persistence contract for quiz sessions.
type Store interface {
	// Get returns the stored session.
	Get(ctx context.Context, id string) (domain.QuizSession, error)
	// Create stores a new session at version 1.
	Create(ctx context.Context, s domain.QuizSession) (domain.QuizSession, error)
	// CompareAndSwap replaces the stored session if its version equals
	// s.Version and returns the stored value with the version bumped.
	CompareAndSwap(ctx context.Context, s domain.QuizSession) (domain.QuizSession, error)
	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
