package usecase

import (
	"context"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/email"
)

// NotifyPolicy decides which scored results are worth an email.
type NotifyPolicy struct {
	Enabled  bool
	MinScore int
}

func (p NotifyPolicy) ShouldNotify(r domain.FitResult) bool {
	if !p.Enabled {
		return false
	}
	return r.Verdict == domain.VerdictYes || r.Score >= p.MinScore
}

// FitAlertMailer is the part of email.EmailService the notifier needs.
type FitAlertMailer interface {
	SendFitAlert(ctx context.Context, data email.FitAlertData) error
	IsConfigured() bool
}

type emailFitNotifier struct {
	mailer FitAlertMailer
}

// NewEmailFitNotifier mails the fit digest. Without mail configuration it does nothing.
func NewEmailFitNotifier(mailer FitAlertMailer) domain.FitNotifier {
	return &emailFitNotifier{mailer: mailer}
}

func (n *emailFitNotifier) Notify(ctx context.Context, result domain.FitResult, jobText string, source domain.Source) error {
	if !n.mailer.IsConfigured() {
		return nil
	}
	return n.mailer.SendFitAlert(ctx, email.FitAlertData{
		Score:             result.Score,
		Verdict:           string(result.Verdict),
		Source:            string(source),
		Rationale:         result.Rationale,
		Strengths:         result.Strengths,
		Gaps:              result.Gaps,
		ResumeBullets:     result.ResumeBullets,
		Tags:              result.Tags,
		CoverLetterOpener: result.CoverLetterOpener,
		JobText:           jobText,
	})
}
