package repo

import "context"

// MessageRepo is the outbound delivery interface
// Responsible for pushing text to a destination on the chat network
type MessageRepo interface {
	// SendText sends a text message to a destination identifier
	SendText(ctx context.Context, to, text string) error
}
