package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTPTransport sends plain-text mail through an authenticated SMTP relay.
type SMTPTransport struct {
	host     string
	port     string
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPTransport(host, port, username, password string) *SMTPTransport {
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

func (t *SMTPTransport) Configured() bool {
	return t.host != "" && t.username != "" && t.password != ""
}

// Send ignores ctx cancellation once the SMTP dialogue has started; net/smtp has no
// context support.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(msg.From))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(strings.Join(msg.To, ", ")))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerValue(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Text)

	auth := smtp.PlainAuth("", t.username, t.password, t.host)
	addr := fmt.Sprintf("%s:%s", t.host, t.port)
	if err := t.sendMail(addr, auth, msg.From, msg.To, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// headerValue keeps user-supplied text (the subject carries the sender's name) on one header line.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
