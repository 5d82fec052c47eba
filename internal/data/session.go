package data

import (
	"context"
	"sync"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// sessionRepo implements the Session repository in process memory.
// Sessions do not survive a restart.
type sessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewSessionRepo creates a new Session repository
func NewSessionRepo() repo.SessionRepo {
	return &sessionRepo{sessions: make(map[string]domain.Session)}
}

// Get gets the session for a sender
func (r *sessionRepo) Get(ctx context.Context, sender string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sender]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Save saves a session
func (r *sessionRepo) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Sender] = *session
	return nil
}

// Delete deletes a session
func (r *sessionRepo) Delete(ctx context.Context, sender string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sender)
	return nil
}

// CleanupStale deletes sessions last active before the given time
func (r *sessionRepo) CleanupStale(ctx context.Context, before time.Time, skip func(sender string) bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for sender, s := range r.sessions {
		if skip != nil && skip(sender) {
			continue
		}
		if s.LastActivity.Before(before) {
			delete(r.sessions, sender)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions
func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions), nil
}
