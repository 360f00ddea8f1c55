package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/milepost-service/internal/domain"
)

// SessionRepository stores live sessions. Implementations expire idle sessions.
type SessionRepository interface {
	// Create registers a new empty session
	Create(ctx context.Context) (*domain.Session, error)

	// Get returns errors.ErrSessionNotFound for unknown or expired ids
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Touch extends the session's lifetime. It returns
	// errors.ErrSessionNotFound once the session is gone.
	Touch(ctx context.Context, session *domain.Session) error

	Delete(ctx context.Context, id uuid.UUID) error

	Count() int
}
