package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/milepost-service/internal/config"
	"github.com/milepost-service/internal/domain"
	"github.com/milepost-service/internal/domain/repository"
	apperrors "github.com/milepost-service/internal/pkg/errors"
	"go.uber.org/zap"
)

type gcacheStore struct {
	cache  gcache.Cache
	clock  gcache.Clock
	logger *zap.Logger

	// serializes Touch against Delete
	mu sync.Mutex
}

// NewStore returns an in-memory LRU session store. Sessions expire after
// cfg.TTL without a Touch.
func NewStore(cfg *config.SessionConfig, logger *zap.Logger) repository.SessionRepository {
	return newStore(cfg, gcache.NewRealClock(), logger)
}

func newStore(cfg *config.SessionConfig, clock gcache.Clock, logger *zap.Logger) *gcacheStore {
	b := gcache.New(cfg.CacheSize).LRU().Clock(clock)
	if cfg.TTL > 0 {
		b = b.Expiration(cfg.TTL)
	}

	b = b.EvictedFunc(func(key, _ interface{}) {
		logger.Debug("Session evicted", zap.Any("session_id", key))
	})

	return &gcacheStore{
		cache:  b.Build(),
		clock:  clock,
		logger: logger,
	}
}

func (s *gcacheStore) Create(ctx context.Context) (*domain.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := domain.NewSession(id, s.now())
	if err := s.cache.Set(id, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Debug("Session created", zap.String("session_id", id.String()))
	return session, nil
}

func (s *gcacheStore) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	v, err := s.cache.Get(id)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session, ok := v.(*domain.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session value %T", v)
	}
	return session, nil
}

// Touch never brings back a session that was deleted or expired meanwhile.
func (s *gcacheStore) Touch(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cache.Has(session.ID) {
		return apperrors.ErrSessionNotFound
	}
	// re-setting restarts the expiration
	if err := s.cache.Set(session.ID, session); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (s *gcacheStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	removed := s.cache.Remove(id)
	s.mu.Unlock()

	if !removed {
		return apperrors.ErrSessionNotFound
	}
	s.logger.Debug("Session deleted", zap.String("session_id", id.String()))
	return nil
}

func (s *gcacheStore) Count() int {
	return s.cache.Len(true)
}

func (s *gcacheStore) now() time.Time {
	return s.clock.Now()
}
