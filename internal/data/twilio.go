package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// twilioMessenger is the subset of the Twilio API used for delivery
type twilioMessenger interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// twilioRepo implements the message repository over Twilio's WhatsApp channel
type twilioRepo struct {
	api    twilioMessenger
	from   string
	logger *zap.Logger
}

// NewTwilioRepo creates a new Twilio repository
func NewTwilioRepo(accountSID, authToken, from string, logger *zap.Logger) repo.MessageRepo {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioRepo{api: client.Api, from: whatsappAddress(from), logger: logger}
}

// SendText sends a text message.
// The Twilio SDK has no context support; ctx is only checked before the call.
func (r *twilioRepo) SendText(ctx context.Context, to, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(r.from)
	params.SetTo(whatsappAddress(to))
	params.SetBody(text)

	resp, err := r.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp.ErrorCode != nil {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	r.logger.Info("twilio message sent", zap.String("to", to), zap.String("sid", sid))
	return nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
