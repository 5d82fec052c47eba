package conf

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/usecase"
)

// Delivery providers
const (
	DeliveryWhatsApp = "whatsapp"
	DeliveryTwilio   = "twilio"
)

// Generative providers
const (
	GenerativeOpenAI = "openai"
	GenerativeGemini = "gemini"
)

// Audit backends
const (
	AuditSheets = "sheets"
	AuditSQLite = "sqlite"
)

// Config represents application configuration
type Config struct {
	// Outbound delivery
	Delivery DeliveryConfig

	// Generative responder
	Generative GenerativeConfig

	// Audit log
	Audit AuditConfig

	// Inbound webhook
	Webhook WebhookConfig

	// Session configuration
	Session SessionConfig

	// Optional Lark mirror of handoff notices
	Lark LarkConfig

	// Numbers notified on every human handoff request
	AdminNumbers []string

	// Path to a catalog YAML override
	CatalogPath string

	// Debug mode
	Debug bool
}

// DeliveryConfig contains outbound messaging configuration
type DeliveryConfig struct {
	Provider string

	WhatsAppToken      string
	PhoneNumberID      string
	WhatsAppAPIVersion string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
}

// GenerativeConfig contains generative backend configuration
type GenerativeConfig struct {
	Provider       string
	OpenAIAPIKey   string
	OpenAIModel    string
	GeminiAPIKey   string
	GeminiModel    string
	TimeoutSeconds int
}

// AuditConfig contains audit log configuration
type AuditConfig struct {
	Backend         string
	SheetKey        string
	CredentialsJSON string
	DBPath          string
}

// WebhookConfig contains inbound webhook configuration
type WebhookConfig struct {
	Port        string
	VerifyToken string
	GroupMarker string
}

// SessionConfig contains session configuration
type SessionConfig struct {
	IdleMinutes  int
	SweepMinutes int
}

// LarkConfig contains Lark alert configuration
type LarkConfig struct {
	AppID     string
	AppSecret string
	ChatID    string
}

// Enabled reports whether the Lark mirror is configured
func (c LarkConfig) Enabled() bool {
	return c.AppID != "" && c.AppSecret != "" && c.ChatID != ""
}

// DefaultAdminNumbers are notified when ADMIN_NUMBERS is unset
var DefaultAdminNumbers = []string{"59179598641", "59176785574"}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Admin numbers
	admins := DefaultAdminNumbers
	if val := os.Getenv("ADMIN_NUMBERS"); val != "" {
		admins = splitList(val)
	}

	// Group marker may be explicitly set to empty to disable group filtering
	groupMarker, ok := os.LookupEnv("GROUP_MARKER")
	if !ok {
		groupMarker = "-"
	}

	return &Config{
		Delivery: DeliveryConfig{
			Provider:           envOr("DELIVERY_PROVIDER", DeliveryWhatsApp),
			WhatsAppToken:      os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID:      os.Getenv("PHONE_NUMBER_ID"),
			WhatsAppAPIVersion: envOr("WHATSAPP_API_VERSION", "v18.0"),
			TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFrom:         os.Getenv("TWILIO_WHATSAPP_FROM"),
		},
		Generative: GenerativeConfig{
			Provider:       envOr("GENERATIVE_PROVIDER", GenerativeOpenAI),
			OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:    envOr("OPENAI_MODEL", "gpt-4.1"),
			GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
			GeminiModel:    envOr("GEMINI_MODEL", "gemini-2.5-flash"),
			TimeoutSeconds: envInt("GENERATIVE_TIMEOUT_SECONDS", 20),
		},
		Audit: AuditConfig{
			Backend:         envOr("AUDIT_BACKEND", AuditSheets),
			SheetKey:        os.Getenv("GOOGLE_SHEET_KEY"),
			CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
			DBPath:          envOr("AUDIT_DB_PATH", "data/audit.db"),
		},
		Webhook: WebhookConfig{
			Port:        envOr("PORT", "8000"),
			VerifyToken: envOr("WEBHOOK_VERIFY_TOKEN", "mibotverificacion"),
			GroupMarker: groupMarker,
		},
		Session: SessionConfig{
			IdleMinutes:  envInt("SESSION_IDLE_MINUTES", 30),
			SweepMinutes: envInt("SESSION_SWEEP_MINUTES", 5),
		},
		Lark: LarkConfig{
			AppID:     os.Getenv("LARK_APP_ID"),
			AppSecret: os.Getenv("LARK_APP_SECRET"),
			ChatID:    os.Getenv("LARK_ALERT_CHAT_ID"),
		},
		AdminNumbers: admins,
		CatalogPath:  os.Getenv("CATALOG_PATH"),
		Debug:        os.Getenv("DEBUG") == "true",
	}
}

// ToSessionConfig converts to domain session configuration
func (c *SessionConfig) ToSessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		IdleTimeout: time.Duration(c.IdleMinutes) * time.Minute,
	}
}

// SweepInterval returns how often idle sessions are purged
func (c *SessionConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepMinutes) * time.Minute
}

// ToResponderConfig converts to responder configuration
func (c *GenerativeConfig) ToResponderConfig() usecase.ResponderConfig {
	cfg := usecase.DefaultResponderConfig
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.ValidateDelivery(); err != nil {
		return err
	}

	switch c.Generative.Provider {
	case GenerativeOpenAI:
		if c.Generative.OpenAIAPIKey == "" {
			return &ConfigError{Field: "OPENAI_API_KEY", Message: "required"}
		}
	case GenerativeGemini:
		if c.Generative.GeminiAPIKey == "" {
			return &ConfigError{Field: "GEMINI_API_KEY", Message: "required"}
		}
	default:
		return &ConfigError{Field: "GENERATIVE_PROVIDER", Message: "unknown provider " + strconv.Quote(c.Generative.Provider)}
	}

	if err := c.ValidateAudit(); err != nil {
		return err
	}

	if c.Webhook.VerifyToken == "" {
		return &ConfigError{Field: "WEBHOOK_VERIFY_TOKEN", Message: "required"}
	}
	if c.Session.IdleMinutes <= 0 {
		return &ConfigError{Field: "SESSION_IDLE_MINUTES", Message: "must be positive"}
	}
	return nil
}

// ValidateDelivery checks the selected delivery provider's credentials
func (c *Config) ValidateDelivery() error {
	switch c.Delivery.Provider {
	case DeliveryWhatsApp:
		if c.Delivery.WhatsAppToken == "" || c.Delivery.PhoneNumberID == "" {
			return &ConfigError{Field: "WHATSAPP_TOKEN/PHONE_NUMBER_ID", Message: "required"}
		}
	case DeliveryTwilio:
		if c.Delivery.TwilioAccountSID == "" || c.Delivery.TwilioAuthToken == "" || c.Delivery.TwilioFrom == "" {
			return &ConfigError{Field: "TWILIO_ACCOUNT_SID/TWILIO_AUTH_TOKEN/TWILIO_WHATSAPP_FROM", Message: "required"}
		}
	default:
		return &ConfigError{Field: "DELIVERY_PROVIDER", Message: "unknown provider " + strconv.Quote(c.Delivery.Provider)}
	}
	return nil
}

// ValidateAudit checks the selected audit backend's settings
func (c *Config) ValidateAudit() error {
	switch c.Audit.Backend {
	case AuditSheets:
		if c.Audit.SheetKey == "" || c.Audit.CredentialsJSON == "" {
			return &ConfigError{Field: "GOOGLE_SHEET_KEY/GOOGLE_CREDENTIALS_JSON", Message: "required"}
		}
	case AuditSQLite:
		if c.Audit.DBPath == "" {
			return &ConfigError{Field: "AUDIT_DB_PATH", Message: "required"}
		}
	default:
		return &ConfigError{Field: "AUDIT_BACKEND", Message: "unknown backend " + strconv.Quote(c.Audit.Backend)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
