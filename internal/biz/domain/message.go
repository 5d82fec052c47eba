package domain

import (
	"strings"
	"time"
)

// InboundMessage represents one text message delivered by the webhook
type InboundMessage struct {
	ID         string // Channel message id (wamid), may be empty
	Sender     string
	Text       string
	ReceivedAt time.Time
}

// IsFromGroup checks if the sender identifier carries the group marker
func (m *InboundMessage) IsFromGroup(marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(m.Sender, marker)
}

// Normalized returns the lowercased text used for phrase matching
func (m *InboundMessage) Normalized() string {
	return strings.ToLower(m.Text)
}

// Selection returns the trimmed text used for direct menu selection
func (m *InboundMessage) Selection() string {
	return strings.TrimSpace(m.Text)
}
