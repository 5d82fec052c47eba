package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// SessionUsecase handles session lifecycle logic
type SessionUsecase struct {
	sessionRepo repo.SessionRepo
	config      domain.SessionConfig
	locks       *senderLocks
}

// NewSessionUsecase creates a new session usecase
func NewSessionUsecase(sessionRepo repo.SessionRepo, config domain.SessionConfig) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo: sessionRepo,
		config:      config,
		locks:       newSenderLocks(),
	}
}

// Lock serializes processing for one sender. Call the returned func to release.
func (uc *SessionUsecase) Lock(sender string) (unlock func()) {
	return uc.locks.lock(sender)
}

// GetOrExpire returns the live session for sender, or nil.
// A session idle longer than the timeout is deleted first and nil is returned.
func (uc *SessionUsecase) GetOrExpire(ctx context.Context, sender string, now time.Time) (*domain.Session, error) {
	session, err := uc.sessionRepo.Get(ctx, sender)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.IsExpired(now, uc.config) {
		if err := uc.sessionRepo.Delete(ctx, sender); err != nil {
			return nil, fmt.Errorf("delete expired session: %w", err)
		}
		return nil, nil
	}

	return session, nil
}

// Upsert creates or overwrites the session for sender
func (uc *SessionUsecase) Upsert(ctx context.Context, sender string, topic domain.Topic, now time.Time) error {
	session, err := uc.sessionRepo.Get(ctx, sender)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		session = &domain.Session{Sender: sender}
	}
	session.Refresh(topic, now)

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Sweep deletes every session that would be expired at now.
// Senders with a message in flight are skipped; their cycle expires them itself.
func (uc *SessionUsecase) Sweep(ctx context.Context, now time.Time) (int64, error) {
	if uc.config.IdleTimeout <= 0 {
		return 0, nil
	}
	return uc.sessionRepo.CleanupStale(ctx, now.Add(-uc.config.IdleTimeout), uc.locks.held)
}

// ActiveCount returns the number of sessions currently held
func (uc *SessionUsecase) ActiveCount(ctx context.Context) (int, error) {
	return uc.sessionRepo.Count(ctx)
}
