package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
)

// SessionSweeper periodically drops idle sessions so the store stays bounded
type SessionSweeper struct {
	sessionUC *usecase.SessionUsecase
	logger    *zap.Logger

	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sessionUC *usecase.SessionUsecase, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionSweeper{
		sessionUC: sessionUC,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
	}
}

// Start starts the sweeper
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.stopCh)
	s.logger.Info("session sweeper started", zap.Duration("interval", s.interval))
}

// Stop stops the sweeper and waits for the loop to exit
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("session sweeper stopped")
}

func (s *SessionSweeper) loop(stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(context.Background())
		case <-stopCh:
			return
		}
	}
}

// SweepOnce runs a single sweep
func (s *SessionSweeper) SweepOnce(ctx context.Context) int64 {
	removed, err := s.sessionUC.Sweep(ctx, s.now())
	if err != nil {
		s.logger.Warn("session sweep failed", zap.Error(err))
		return 0
	}
	if removed > 0 {
		s.logger.Debug("idle sessions removed", zap.Int64("removed", removed))
	}
	return removed
}
