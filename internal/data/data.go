package data

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
	"github.com/kudobolivia/frontdesk/internal/conf"
	"github.com/kudobolivia/frontdesk/internal/infra/lark"
	"github.com/kudobolivia/frontdesk/internal/infra/whatsapp"
)

// Repositories contains all repositories
type Repositories struct {
	Session   repo.SessionRepo
	Message   repo.MessageRepo
	Responder repo.ResponderRepo
	Audit     repo.AuditRepo
	Alert     repo.AlertRepo // nil when Lark is not configured
}

// NewRepositories creates all repositories for the configured providers
func NewRepositories(ctx context.Context, cfg *conf.Config, logger *zap.Logger) (*Repositories, error) {
	message, err := NewMessageRepo(cfg, logger)
	if err != nil {
		return nil, err
	}

	responder, err := NewResponderRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	audit, err := NewAuditRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var alert repo.AlertRepo
	if cfg.Lark.Enabled() {
		alert = NewLarkAlertRepo(lark.NewClient(cfg.Lark.AppID, cfg.Lark.AppSecret), cfg.Lark.ChatID)
	}

	return &Repositories{
		Session:   NewSessionRepo(),
		Message:   message,
		Responder: responder,
		Audit:     audit,
		Alert:     alert,
	}, nil
}

// NewMessageRepo creates the delivery repository for the configured provider
func NewMessageRepo(cfg *conf.Config, logger *zap.Logger) (repo.MessageRepo, error) {
	d := cfg.Delivery
	switch d.Provider {
	case conf.DeliveryWhatsApp:
		client := whatsapp.NewClient(d.WhatsAppToken, d.PhoneNumberID, d.WhatsAppAPIVersion, logger.Named("whatsapp"))
		return NewWhatsAppRepo(client), nil
	case conf.DeliveryTwilio:
		return NewTwilioRepo(d.TwilioAccountSID, d.TwilioAuthToken, d.TwilioFrom, logger.Named("twilio")), nil
	default:
		return nil, fmt.Errorf("unknown delivery provider %q", d.Provider)
	}
}

// NewResponderRepo creates the generative repository for the configured provider
func NewResponderRepo(ctx context.Context, cfg *conf.Config) (repo.ResponderRepo, error) {
	g := cfg.Generative
	switch g.Provider {
	case conf.GenerativeOpenAI:
		return NewOpenAIRepo(g.OpenAIAPIKey, g.OpenAIModel), nil
	case conf.GenerativeGemini:
		return NewGeminiRepo(ctx, g.GeminiAPIKey, g.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown generative provider %q", g.Provider)
	}
}

// NewAuditRepo creates the audit repository for the configured backend
func NewAuditRepo(ctx context.Context, cfg *conf.Config) (repo.AuditRepo, error) {
	a := cfg.Audit
	switch a.Backend {
	case conf.AuditSheets:
		return NewSheetsAuditRepo(ctx, a.SheetKey, a.CredentialsJSON)
	case conf.AuditSQLite:
		return NewSQLiteAuditRepo(a.DBPath)
	default:
		return nil, fmt.Errorf("unknown audit backend %q", a.Backend)
	}
}
