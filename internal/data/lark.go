package data

import (
	"context"
	"fmt"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
	"github.com/kudobolivia/frontdesk/internal/infra/lark"
)

// chatSender posts text into a chat
type chatSender interface {
	SendText(ctx context.Context, chatID, text string) error
}

var _ chatSender = (*lark.Client)(nil)

// larkAlertRepo mirrors handoff notices into a Lark chat
type larkAlertRepo struct {
	client chatSender
	chatID string
}

// NewLarkAlertRepo creates a Lark alert repository
func NewLarkAlertRepo(client *lark.Client, chatID string) repo.AlertRepo {
	return &larkAlertRepo{client: client, chatID: chatID}
}

// Notify posts the text to the configured chat
func (r *larkAlertRepo) Notify(ctx context.Context, text string) error {
	if err := r.client.SendText(ctx, r.chatID, text); err != nil {
		return fmt.Errorf("lark alert: %w", err)
	}
	return nil
}
