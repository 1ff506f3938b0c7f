package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"portfolio-api/config"
)

// ErrNotConfigured is returned when no transport credentials or addresses are set.
var ErrNotConfigured = errors.New("email service is not configured")

// Message is a provider-neutral plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Transport delivers a rendered Message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Configured() bool
}

// EmailService renders site emails and hands them to a Transport
type EmailService struct {
	transport Transport
	fromEmail string
	toEmail   string
	siteName  string
	now       func() time.Time
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Company     string
	Message     string
}

// FitAlertData holds a scored job description for the notification digest
type FitAlertData struct {
	Score             int
	Verdict           string
	Source            string // "upload", "paste" or "both"
	Rationale         string
	Strengths         []string
	Gaps              []string
	ResumeBullets     []string
	Tags              []string
	CoverLetterOpener string
	JobText           string
}

const jobSnippetChars = 800

// NewEmailService selects the transport named by cfg.EmailProvider.
func NewEmailService(cfg *config.Config) *EmailService {
	var transport Transport
	switch cfg.EmailProvider {
	case "smtp":
		transport = NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	default:
		transport = NewResendTransport(cfg.ResendAPIKey)
	}
	return NewEmailServiceWithTransport(transport, cfg.ContactFrom, cfg.ContactTo, cfg.SiteName)
}

func NewEmailServiceWithTransport(t Transport, from, to, siteName string) *EmailService {
	return &EmailService{
		transport: t,
		fromEmail: from,
		toEmail:   to,
		siteName:  siteName,
		now:       time.Now,
	}
}

const contactEmailTemplate = `Name: {{.SenderName}}
Email: {{.SenderEmail}}
Company: {{.Company}}

Message:
{{.Message}}

— {{.Site}}`

const fitAlertTemplate = `Role Fit Check — {{.Timestamp}}

Verdict: {{.Verdict}}
Score:   {{.Score}}
Source:  {{.Source}}

Rationale:
{{.Rationale}}

Top strengths:
{{range .TopStrengths}}- {{.}}
{{end}}
Top gaps:
{{range .TopGaps}}- {{.}}
{{end}}
Suggested résumé bullets:
{{range .ResumeBullets}}- {{.}}
{{end}}
Tags: {{.Tags}}

Cover-letter opener:
{{.CoverLetterOpener}}

JD (snippet):
{{.Snippet}}
— {{.Site}}`

var (
	contactTmpl  = template.Must(template.New("contact").Parse(contactEmailTemplate))
	fitAlertTmpl = template.Must(template.New("fit_alert").Parse(fitAlertTemplate))
)

// SendContactEmail forwards a contact form submission to the site owner with
// Reply-To set to the sender.
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	body, err := render(contactTmpl, struct {
		ContactEmailData
		Site string
	}{data, s.siteName})
	if err != nil {
		return err
	}

	subject := "New inquiry — " + data.SenderName
	if data.Company != "" {
		subject += " @ " + data.Company
	}

	if err := s.transport.Send(ctx, Message{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		ReplyTo: data.SenderEmail,
		Subject: subject,
		Text:    body,
	}); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

// SendFitAlert mails the fit-check digest to the site owner.
func (s *EmailService) SendFitAlert(ctx context.Context, data FitAlertData) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	verdict := strings.ToUpper(data.Verdict)
	body, err := render(fitAlertTmpl, struct {
		FitAlertData
		Verdict      string
		Timestamp    string
		TopStrengths []string
		TopGaps      []string
		Tags         string
		Snippet      string
		Site         string
	}{
		FitAlertData: data,
		Verdict:      verdict,
		Timestamp:    s.now().UTC().Format(time.RFC3339),
		TopStrengths: firstN(data.Strengths, 3),
		TopGaps:      firstN(data.Gaps, 3),
		Tags:         strings.Join(data.Tags, ", "),
		Snippet:      truncateRunes(data.JobText, jobSnippetChars),
		Site:         s.siteName,
	})
	if err != nil {
		return err
	}

	if err := s.transport.Send(ctx, Message{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		Subject: fmt.Sprintf("Fit alert — %d (%s) — Role fit check", data.Score, verdict),
		Text:    body,
	}); err != nil {
		return fmt.Errorf("failed to send fit alert: %w", err)
	}
	return nil
}

// IsConfigured checks that the transport has credentials and both addresses are set
func (s *EmailService) IsConfigured() bool {
	return s.transport != nil && s.transport.Configured() && s.fromEmail != "" && s.toEmail != ""
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}

// firstN always returns n entries, padding with blanks, so the digest layout is fixed.
func firstN(items []string, n int) []string {
	out := make([]string, n)
	copy(out, items)
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
