package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
)

// Mock implementations

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.Session)}
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
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, s := range m.sessions {
		if s.LastActivity.Before(before) {
			delete(m.sessions, k)
			n++
		}
	}
	return n, nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

type mockMessageRepo struct {
	mu    sync.Mutex
	sent  map[string][]string
	panic bool
}

func (m *mockMessageRepo) SendText(ctx context.Context, to, text string) error {
	if m.panic {
		panic("delivery exploded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[string][]string)
	}
	m.sent[to] = append(m.sent[to], text)
	return nil
}

func (m *mockMessageRepo) sentTo(to string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[to]
}

type mockAuditRepo struct {
	mu        sync.Mutex
	interests []domain.AuditRecord
	err       error
}

func (m *mockAuditRepo) AppendEscalation(ctx context.Context, rec domain.AuditRecord) error {
	return m.err
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

var errAudit = errors.New("audit down")

func testCatalog() *domain.Catalog {
	c := &domain.Catalog{
		Options: []domain.Option{
			{ID: "1", Reply: "HORARIOS", Triggers: []string{"horarios"}},
			{ID: "2", Reply: "PRECIOS", Triggers: []string{"precio"}},
		},
		Footer:         "\n\nMENU",
		HandoffPhrases: []string{"necesito ayuda"},
		HandoffAck:     "ACK",
		AdminNotice:    "%s: %s",
		Persona:        "PERSONA",
		NoGreeting:     " NO SALUDES",
		Fallback:       "FALLBACK",
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

type fixture struct {
	svc       *ConversationService
	sessionUC *usecase.SessionUsecase
	messages  *mockMessageRepo
	audit     *mockAuditRepo
}

func newFixture() *fixture {
	messages := &mockMessageRepo{}
	audit := &mockAuditRepo{}
	logger := zap.NewNop()

	sessionUC := usecase.NewSessionUsecase(newMockSessionRepo(), domain.DefaultSessionConfig)
	routerUC := usecase.NewRouterUsecase(testCatalog(), "-")
	responderUC := usecase.NewResponderUsecase(mockResponderRepo{}, usecase.DefaultResponderConfig, "FALLBACK", logger)
	convUC := usecase.NewConversationUsecase(sessionUC, routerUC, responderUC, messages, audit, nil, []string{"admin"}, logger)

	return &fixture{
		svc:       NewConversationService(convUC, logger),
		sessionUC: sessionUC,
		messages:  messages,
		audit:     audit,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
