package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
)

// Mock implementations

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	saves    int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepo) Get(ctx context.Context, sender string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sender]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	m.sessions[session.Sender] = &cp
	m.saves++
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
		if skip != nil && skip(k) {
			continue
		}
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

func (m *mockSessionRepo) get(sender string) *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sender]
}

type sentMessage struct {
	To   string
	Text string
}

type mockMessageRepo struct {
	mu     sync.Mutex
	sent   []sentMessage
	failTo map[string]bool
}

func (m *mockMessageRepo) SendText(ctx context.Context, to, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("delivery failed")
	}
	m.sent = append(m.sent, sentMessage{To: to, Text: text})
	return nil
}

func (m *mockMessageRepo) sentTo(to string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.sent {
		if s.To == to {
			out = append(out, s.Text)
		}
	}
	return out
}

func (m *mockMessageRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
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

func (m *mockAuditRepo) Close() error {
	return nil
}

type mockResponderRepo struct {
	mu           sync.Mutex
	reply        string
	errs         []error // consumed one per call before replying
	instructions []string
	utterances   []string
	block        bool // wait for ctx cancellation
}

func (m *mockResponderRepo) Generate(ctx context.Context, instructions, utterance string) (string, error) {
	m.mu.Lock()
	m.instructions = append(m.instructions, instructions)
	m.utterances = append(m.utterances, utterance)
	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return m.reply, nil
}

func (m *mockResponderRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instructions)
}

type mockAlertRepo struct {
	mu    sync.Mutex
	texts []string
}

func (m *mockAlertRepo) Notify(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return nil
}

// testCatalog mirrors the shape of the production catalog with short texts
func testCatalog() *domain.Catalog {
	c := &domain.Catalog{
		Options: []domain.Option{
			{ID: "1", Label: "Horarios", Reply: "HORARIOS", Triggers: []string{"horarios", "hora", "a qué hora"}},
			{ID: "2", Label: "Precios", Reply: "PRECIOS", Triggers: []string{"precio", "cuánto cuesta", "costo"}},
			{ID: "3", Label: "Disciplinas", Reply: "DISCIPLINAS", Triggers: []string{"disciplinas", "qué clases hay"}},
			{ID: "4", Label: "Inscripción", Reply: "INSCRIPCION", Triggers: []string{"inscribir", "inscripción"}},
			{ID: "5", Label: "Ubicación", Reply: "UBICACION", Triggers: []string{"dirección", "ubicación"}},
		},
		Footer:         "\n\nMENU",
		HandoffPhrases: []string{"hablar con alguien", "necesito ayuda", "quiero hablar con una persona"},
		HandoffAck:     "ACK",
		AdminNotice:    "handoff %s\nMensaje: %s",
		Persona:        "PERSONA.",
		NoGreeting:     " No inicies con saludos.",
		Fallback:       "FALLBACK",
	}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}
