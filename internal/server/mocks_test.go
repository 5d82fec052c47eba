package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
	"github.com/kudobolivia/frontdesk/internal/service"
)

// Mock implementations

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func (m *mockSessionRepo) Get(ctx context.Context, sender string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sender]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Sender] = *session
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, sender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sender)
	return nil
}

func (m *mockSessionRepo) CleanupStale(ctx context.Context, before time.Time, skip func(sender string) bool) (int64, error) {
	return 0, nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

type sent struct{ to, text string }

type mockMessageRepo struct {
	mu   sync.Mutex
	sent []sent
}

// SendText fails on a done context, like an HTTP-backed sender
func (m *mockMessageRepo) SendText(ctx context.Context, to, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{to, text})
	return nil
}

func (m *mockMessageRepo) all() []sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sent(nil), m.sent...)
}

type mockAuditRepo struct {
	mu          sync.Mutex
	escalations []domain.AuditRecord
	interests   []domain.AuditRecord
	err         error
}

func (m *mockAuditRepo) AppendEscalation(ctx context.Context, rec domain.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.escalations = append(m.escalations, rec)
	return nil
}

func (m *mockAuditRepo) AppendInterest(ctx context.Context, rec domain.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.interests = append(m.interests, rec)
	return nil
}

func (m *mockAuditRepo) Close() error { return nil }

type mockResponderRepo struct{}

func (mockResponderRepo) Generate(ctx context.Context, instructions, utterance string) (string, error) {
	return "GENERATED", nil
}

var errSheet = errors.New("PERMISSION_DENIED")

type fixture struct {
	server   *WebhookServer
	messages *mockMessageRepo
	audit    *mockAuditRepo
}

func newFixture() *fixture {
	catalog := &domain.Catalog{
		Options: []domain.Option{
			{ID: "1", Reply: "HORARIOS", Triggers: []string{"horarios"}},
			{ID: "2", Reply: "PRECIOS", Triggers: []string{"precio"}},
		},
		Footer:         "\n\nMENU",
		HandoffPhrases: []string{"quiero hablar con una persona"},
		HandoffAck:     "ACK",
		AdminNotice:    "📩 Solicitud de atención humana del número: %s\nMensaje: %s",
		Persona:        "PERSONA",
		NoGreeting:     " NO SALUDES",
		Fallback:       "FALLBACK",
	}
	if err := catalog.Validate(); err != nil {
		panic(err)
	}

	logger := zap.NewNop()
	messages := &mockMessageRepo{}
	audit := &mockAuditRepo{}

	sessionUC := usecase.NewSessionUsecase(&mockSessionRepo{sessions: map[string]domain.Session{}}, domain.DefaultSessionConfig)
	routerUC := usecase.NewRouterUsecase(catalog, "-")
	responderUC := usecase.NewResponderUsecase(mockResponderRepo{}, usecase.DefaultResponderConfig, catalog.Fallback, logger)
	convUC := usecase.NewConversationUsecase(sessionUC, routerUC, responderUC, messages, audit, nil,
		[]string{"59179598641", "59176785574"}, logger)

	srv := NewWebhookServer(
		service.NewConversationService(convUC, logger),
		sessionUC,
		service.NewAuditProbe(audit),
		"mibotverificacion",
		logger,
	)
	return &fixture{server: srv, messages: messages, audit: audit}
}
