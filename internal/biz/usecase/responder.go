package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// ResponderConfig bounds calls to the generative backend
type ResponderConfig struct {
	Timeout   time.Duration // Per attempt
	Retries   int           // Extra attempts after the first
	MinJitter time.Duration // Backoff before a retry is drawn from [MinJitter, MaxJitter)
	MaxJitter time.Duration
}

// DefaultResponderConfig is one retry with a 20s per-attempt budget
var DefaultResponderConfig = ResponderConfig{
	Timeout:   20 * time.Second,
	Retries:   1,
	MinJitter: 100 * time.Millisecond,
	MaxJitter: 500 * time.Millisecond,
}

// ResponderUsecase wraps the generative backend with a timeout, a bounded
// retry and a canned fallback.
type ResponderUsecase struct {
	responderRepo repo.ResponderRepo
	config        ResponderConfig
	fallback      string
	logger        *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// NewResponderUsecase creates a new responder usecase
func NewResponderUsecase(responderRepo repo.ResponderRepo, config ResponderConfig, fallback string, logger *zap.Logger) *ResponderUsecase {
	return &ResponderUsecase{
		responderRepo: responderRepo,
		config:        config,
		fallback:      fallback,
		logger:        logger,
		sleep:         sleepContext,
	}
}

// ErrNoResponse is returned when every attempt failed and no fallback is configured
var ErrNoResponse = errors.New("generative responder unavailable")

// Reply returns generated text for the utterance. When every attempt fails
// it returns the fallback text, so the sender is never left without a reply.
func (uc *ResponderUsecase) Reply(ctx context.Context, instructions, utterance string) (text string, usedFallback bool, err error) {
	var lastErr error
	attempts := uc.config.Retries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := uc.sleep(ctx, uc.jitter()); err != nil {
				lastErr = err
				break
			}
		}

		text, err := uc.generate(ctx, instructions, utterance)
		if err == nil {
			return text, false, nil
		}
		lastErr = err
		uc.logger.Warn("generative attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err))
	}

	if uc.fallback == "" {
		return "", false, fmt.Errorf("%w: %v", ErrNoResponse, lastErr)
	}
	uc.logger.Warn("generative responder exhausted, sending fallback", zap.Error(lastErr))
	return uc.fallback, true, nil
}

func (uc *ResponderUsecase) generate(ctx context.Context, instructions, utterance string) (string, error) {
	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	text, err := uc.responderRepo.Generate(ctx, instructions, utterance)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("generate: empty response")
	}
	return text, nil
}

func (uc *ResponderUsecase) jitter() time.Duration {
	span := uc.config.MaxJitter - uc.config.MinJitter
	if span <= 0 {
		return uc.config.MinJitter
	}
	return uc.config.MinJitter + rand.N(span)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
