package domain

import "time"

// Topic is the last subject a sender was served.
// It is either a catalog option id or one of the sentinels below.
type Topic string

const (
	// TopicNone marks a session opened by a generative reply that has not completed yet.
	TopicNone Topic = ""
	// TopicUnstructured marks a session last served by the generative responder.
	TopicUnstructured Topic = "libre"
)

// Session represents per-sender conversational state
type Session struct {
	Sender       string
	Topic        Topic
	LastActivity time.Time
}

// SessionConfig represents session configuration (value object)
type SessionConfig struct {
	IdleTimeout time.Duration // Sessions idle strictly longer than this are expired
}

// DefaultSessionConfig is the 30 minute idle window used by the front desk.
var DefaultSessionConfig = SessionConfig{IdleTimeout: 30 * time.Minute}

// IsExpired reports whether the session has been idle longer than the timeout at now.
// Exactly IdleTimeout of inactivity is still a live session.
func (s *Session) IsExpired(now time.Time, cfg SessionConfig) bool {
	if cfg.IdleTimeout <= 0 {
		return false
	}
	return now.Sub(s.LastActivity) > cfg.IdleTimeout
}

// Refresh sets the topic and moves LastActivity forward to now.
// LastActivity never moves backwards.
func (s *Session) Refresh(topic Topic, now time.Time) {
	s.Topic = topic
	if now.After(s.LastActivity) {
		s.LastActivity = now
	}
}
