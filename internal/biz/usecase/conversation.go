package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// ConversationUsecase handles one inbound message end to end (aggregate)
type ConversationUsecase struct {
	sessionUC   *SessionUsecase
	routerUC    *RouterUsecase
	responderUC *ResponderUsecase
	messageRepo repo.MessageRepo
	auditRepo   repo.AuditRepo
	alertRepo   repo.AlertRepo // optional
	admins      []string
	logger      *zap.Logger

	now func() time.Time
}

// NewConversationUsecase creates a new conversation usecase
func NewConversationUsecase(
	sessionUC *SessionUsecase,
	routerUC *RouterUsecase,
	responderUC *ResponderUsecase,
	messageRepo repo.MessageRepo,
	auditRepo repo.AuditRepo,
	alertRepo repo.AlertRepo,
	admins []string,
	logger *zap.Logger,
) *ConversationUsecase {
	return &ConversationUsecase{
		sessionUC:   sessionUC,
		routerUC:    routerUC,
		responderUC: responderUC,
		messageRepo: messageRepo,
		auditRepo:   auditRepo,
		alertRepo:   alertRepo,
		admins:      admins,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source
func (uc *ConversationUsecase) SetClock(now func() time.Time) {
	uc.now = now
}

// Outcome describes what happened to one message
type Outcome struct {
	Disposition  domain.Disposition
	IsNewSession bool   // Only meaningful for generative replies
	Reply        string // Text sent to the sender, if any
	UsedFallback bool
}

// Handle routes one message and performs its side effects (core method).
// A failing collaborator ends the cycle; side effects already performed stay.
func (uc *ConversationUsecase) Handle(ctx context.Context, msg *domain.InboundMessage) (*Outcome, error) {
	catalog := uc.routerUC.Catalog()

	// 1. Group messages are dropped before anything else
	if uc.routerUC.IsIgnored(msg) {
		return &Outcome{Disposition: domain.Disposition{Kind: domain.DispositionIgnored}}, nil
	}

	// 2. Serialize this sender's expire-route-update cycle
	unlock := uc.sessionUC.Lock(msg.Sender)
	defer unlock()

	now := uc.now()

	// 3. Expire stale session before routing
	session, err := uc.sessionUC.GetOrExpire(ctx, msg.Sender, now)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	// 4. Route
	disposition := uc.routerUC.Route(msg)
	outcome := &Outcome{Disposition: disposition}

	switch disposition.Kind {
	case domain.DispositionEscalate:
		return outcome, uc.escalate(ctx, catalog, msg, now)

	case domain.DispositionCanned:
		if err := uc.sessionUC.Upsert(ctx, msg.Sender, domain.Topic(disposition.OptionID), now); err != nil {
			return outcome, fmt.Errorf("update session: %w", err)
		}
		if err := uc.messageRepo.SendText(ctx, msg.Sender, disposition.Reply); err != nil {
			return outcome, fmt.Errorf("send canned reply: %w", err)
		}
		outcome.Reply = disposition.Reply
		return outcome, nil

	case domain.DispositionGenerated:
		outcome.IsNewSession = session == nil
		return outcome, uc.generate(ctx, catalog, msg, now, outcome)
	}

	return outcome, nil
}

// escalate records the handoff request, acknowledges the sender and notifies every admin.
// The session is left untouched.
func (uc *ConversationUsecase) escalate(ctx context.Context, catalog *domain.Catalog, msg *domain.InboundMessage, now time.Time) error {
	rec := domain.AuditRecord{Sender: msg.Sender, Text: msg.Text, Timestamp: now}
	if err := uc.auditRepo.AppendEscalation(ctx, rec); err != nil {
		return fmt.Errorf("append escalation: %w", err)
	}

	if err := uc.messageRepo.SendText(ctx, msg.Sender, catalog.HandoffAck); err != nil {
		return fmt.Errorf("send handoff ack: %w", err)
	}

	notice := catalog.AdminNotification(msg.Sender, msg.Text)

	if uc.alertRepo != nil {
		if err := uc.alertRepo.Notify(ctx, notice); err != nil {
			uc.logger.Warn("alert mirror failed", zap.Error(err))
		}
	}

	// Every admin is attempted even if another fails
	var g errgroup.Group
	for _, admin := range uc.admins {
		g.Go(func() error {
			if err := uc.messageRepo.SendText(ctx, admin, notice); err != nil {
				return fmt.Errorf("notify admin %s: %w", admin, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// generate asks the generative responder and delivers its answer
func (uc *ConversationUsecase) generate(ctx context.Context, catalog *domain.Catalog, msg *domain.InboundMessage, now time.Time, outcome *Outcome) error {
	if outcome.IsNewSession {
		if err := uc.sessionUC.Upsert(ctx, msg.Sender, domain.TopicNone, now); err != nil {
			return fmt.Errorf("open session: %w", err)
		}
	}

	instructions := catalog.Instructions(outcome.IsNewSession)
	text, usedFallback, err := uc.responderUC.Reply(ctx, instructions, msg.Text)
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}
	outcome.UsedFallback = usedFallback

	if err := uc.sessionUC.Upsert(ctx, msg.Sender, domain.TopicUnstructured, now); err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	rec := domain.AuditRecord{Sender: msg.Sender, Text: msg.Text, Timestamp: now}
	if err := uc.auditRepo.AppendInterest(ctx, rec); err != nil {
		return fmt.Errorf("append interest: %w", err)
	}

	if err := uc.messageRepo.SendText(ctx, msg.Sender, text); err != nil {
		return fmt.Errorf("send generated reply: %w", err)
	}
	outcome.Reply = text
	return nil
}
