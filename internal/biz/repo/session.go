package repo

import (
	"context"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
)

// SessionRepo is the session repository interface
// Sessions live in process memory only and are lost on restart.
type SessionRepo interface {
	// Get gets a session by sender, nil if none exists
	Get(ctx context.Context, sender string) (*domain.Session, error)

	// Save saves a session (create or overwrite)
	Save(ctx context.Context, session *domain.Session) error

	// Delete deletes a session
	Delete(ctx context.Context, sender string) error

	// CleanupStale deletes sessions whose last activity is before the given time.
	// Senders for which skip returns true are left alone; skip may be nil.
	CleanupStale(ctx context.Context, before time.Time, skip func(sender string) bool) (int64, error)

	// Count returns the number of live sessions
	Count(ctx context.Context) (int, error)
}
