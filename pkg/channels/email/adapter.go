package email

import (
	"context"
	"fmt"
	"html"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

// Adapter delivers notifications over transactional email. Recipient ids on
// the EMAIL channel are email addresses.
type Adapter struct {
	sender Sender
}

// NewAdapter creates an email channel adapter over the given sender.
func NewAdapter(sender Sender) *Adapter {
	return &Adapter{sender: sender}
}

func (a *Adapter) Channel() notifications.Channel {
	return notifications.ChannelEmail
}

func (a *Adapter) AttemptDeliver(ctx context.Context, recipientID string, payload notifications.Payload) error {
	return a.sender.SendEmail(ctx, SendParams{
		SendTo:   recipientID,
		Subject:  payload.Title,
		BodyHTML: fmt.Sprintf("<p>%s</p>", html.EscapeString(payload.Message)),
		Tag:      payload.Type,
	})
}
