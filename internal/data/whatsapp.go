package data

import (
	"context"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
	"github.com/kudobolivia/frontdesk/internal/infra/whatsapp"
)

// whatsappRepo implements the message repository over the WhatsApp Cloud API
type whatsappRepo struct {
	client *whatsapp.Client
}

// NewWhatsAppRepo creates a new WhatsApp repository
func NewWhatsAppRepo(client *whatsapp.Client) repo.MessageRepo {
	return &whatsappRepo{client: client}
}

// SendText sends a text message
func (r *whatsappRepo) SendText(ctx context.Context, to, text string) error {
	_, err := r.client.SendText(ctx, to, text)
	return err
}
