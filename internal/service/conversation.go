package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
)

// DefaultDedupeWindow is how long a channel message id is remembered
const DefaultDedupeWindow = 10 * time.Minute

// ConversationService is the boundary between the webhook and the conversation usecase.
// It drops redelivered messages and contains every failure, panics included.
type ConversationService struct {
	convUC *usecase.ConversationUsecase
	logger *zap.Logger

	// Message deduplication cache
	seenMu      sync.Mutex
	seen        map[string]time.Time // msgID -> first seen
	dedupeAfter time.Duration

	now func() time.Time
}

// NewConversationService creates a new conversation service
func NewConversationService(convUC *usecase.ConversationUsecase, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		convUC:      convUC,
		logger:      logger,
		seen:        make(map[string]time.Time),
		dedupeAfter: DefaultDedupeWindow,
		now:         time.Now,
	}
}

// MessageRequest represents one inbound message from the channel
type MessageRequest struct {
	MsgID  string
	Sender string
	Text   string
}

// HandleMessage processes a message. Errors are logged here; the returned
// error is informational and the caller must not surface it to the sender.
func (s *ConversationService) HandleMessage(ctx context.Context, req *MessageRequest) (outcome *usecase.Outcome, err error) {
	logger := s.logger.With(
		zap.String("trace", uuid.NewString()),
		zap.String("sender", req.Sender),
		zap.String("msg_id", req.MsgID),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling message: %v", r)
			logger.Error("recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	// 1. Drop redeliveries
	if req.MsgID != "" && !s.markSeen(req.MsgID) {
		logger.Info("duplicate message ignored")
		return nil, nil
	}

	logger.Info("message received", zap.String("text", truncate(req.Text, 80)))

	// 2. Route and perform side effects
	msg := &domain.InboundMessage{
		ID:         req.MsgID,
		Sender:     req.Sender,
		Text:       req.Text,
		ReceivedAt: s.now(),
	}
	outcome, err = s.convUC.Handle(ctx, msg)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if outcome != nil {
			fields = append(fields, zap.String("disposition", string(outcome.Disposition.Kind)))
		}
		logger.Error("message handling failed", fields...)
		return outcome, err
	}

	// 3. Log the decision
	switch outcome.Disposition.Kind {
	case domain.DispositionIgnored:
		logger.Info("group message ignored")
	case domain.DispositionCanned:
		logger.Info("canned reply sent", zap.String("option", outcome.Disposition.OptionID))
	case domain.DispositionEscalate:
		logger.Info("handoff requested")
	case domain.DispositionGenerated:
		logger.Info("generated reply sent",
			zap.Bool("new_session", outcome.IsNewSession),
			zap.Bool("fallback", outcome.UsedFallback))
	}
	return outcome, nil
}

// markSeen records msgID and reports whether it was new.
// Entries older than the dedupe window are purged on each call.
func (s *ConversationService) markSeen(msgID string) bool {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.dedupeAfter)
	for id, ts := range s.seen {
		if ts.Before(cutoff) {
			delete(s.seen, id)
		}
	}

	if _, exists := s.seen[msgID]; exists {
		return false
	}
	s.seen[msgID] = now
	return true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
