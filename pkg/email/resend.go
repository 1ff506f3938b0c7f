package email

import (
	"context"
	"net/url"

	"github.com/resend/resend-go/v2"
)

// ResendTransport sends through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
	apiKey string
}

func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{
		client: resend.NewClient(apiKey),
		apiKey: apiKey,
	}
}

// WithBaseURL points the client at another API host (tests, proxies).
func (t *ResendTransport) WithBaseURL(raw string) (*ResendTransport, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	t.client.BaseURL = u
	return t, nil
}

func (t *ResendTransport) Configured() bool {
	return t.apiKey != ""
}

func (t *ResendTransport) Send(ctx context.Context, msg Message) error {
	_, err := t.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	return err
}
