package email

import "context"

// Sender sends a single transactional email. The Postmark implementation is
// the production sender; tests inject their own.
type Sender interface {
	SendEmail(ctx context.Context, params SendParams) error
}

// SendParams are the fields the adapter fills from a notification payload.
type SendParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}
