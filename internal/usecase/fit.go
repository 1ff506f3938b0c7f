package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/apperror"
	"portfolio-api/pkg/extract"
	"portfolio-api/pkg/llm"
	"portfolio-api/pkg/logger"
	"portfolio-api/pkg/security"
)

const (
	fitEndpoint = "/api/fit"
	// MinJobTextChars is the shortest combined text worth scoring.
	MinJobTextChars = 200

	defaultScoreTimeout = 25 * time.Second
	notifyTimeout       = 15 * time.Second
)

// FitVerifier is a BotVerifier that also knows whether checking is switched on.
type FitVerifier interface {
	domain.BotVerifier
	SiteKeyConfigured() bool
	Bypassed() bool
}

// TextExtractor turns an uploaded document into text.
type TextExtractor interface {
	Extract(data []byte, declaredMediaType, filename string) (string, error)
	Accepted() string
}

type FitDeps struct {
	Verifier     FitVerifier
	Extractor    TextExtractor
	Completer    llm.Completer
	Notifier     domain.FitNotifier
	Policy       NotifyPolicy
	ScoreTimeout time.Duration
	SecLog       *security.SecurityLogger
}

type fitUsecase struct {
	verifier     FitVerifier
	extractor    TextExtractor
	completer    llm.Completer
	notifier     domain.FitNotifier
	policy       NotifyPolicy
	scoreTimeout time.Duration
	secLog       *security.SecurityLogger
	profile      domain.CandidateProfileDescription
}

func NewFitUsecase(deps FitDeps) domain.FitUsecase {
	timeout := deps.ScoreTimeout
	if timeout <= 0 {
		timeout = defaultScoreTimeout
	}
	secLog := deps.SecLog
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &fitUsecase{
		verifier:     deps.Verifier,
		extractor:    deps.Extractor,
		completer:    deps.Completer,
		notifier:     deps.Notifier,
		policy:       deps.Policy,
		scoreTimeout: timeout,
		secLog:       secLog,
		profile:      domain.CandidateProfile,
	}
}

func (uc *fitUsecase) CheckFit(ctx context.Context, in *domain.FitCheckInput, meta domain.RequestMeta) (*domain.FitResult, error) {
	if uc.verifier.SiteKeyConfigured() && !uc.verifier.Bypassed() {
		if !uc.verifier.Verify(ctx, in.Token, meta.ClientIP) {
			uc.secLog.LogVerificationFailed(ctx, meta.ClientIP, meta.UserAgent, meta.RequestID, fitEndpoint)
			return nil, apperror.VerificationFailed("Verification failed. Please try again.")
		}
	}

	if in.PastedText == "" && in.File == nil {
		return nil, apperror.BadRequest("Provide a file or pasted text.")
	}

	jobText, source, err := uc.combine(ctx, in, meta)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(jobText) < MinJobTextChars {
		return nil, apperror.BadRequest("The job description seems too short. Please paste or upload the full text.")
	}

	if !uc.completer.Configured() {
		logger.Log.Error("scoring provider not configured", "provider", uc.completer.Name())
		return nil, apperror.Configuration(uc.completer.CredentialEnv())
	}

	content, err := uc.score(ctx, jobText)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logger.Log.Warn("scoring response was not JSON", "request_id", meta.RequestID, "error", err)
		parsed = map[string]any{}
	}
	result := domain.SanitizeFitResult(parsed)

	if uc.policy.ShouldNotify(result) {
		uc.notifyDetached(ctx, result, jobText, source)
	}

	return &result, nil
}

// combine joins pasted text and extracted file text, pasted first.
func (uc *fitUsecase) combine(ctx context.Context, in *domain.FitCheckInput, meta domain.RequestMeta) (string, domain.Source, error) {
	pasted := strings.TrimSpace(in.PastedText)
	if in.File == nil {
		return pasted, domain.SourcePaste, nil
	}

	// The handler skips reading a part whose header already exceeds the cap.
	if in.File.Size > extract.MaxFileBytes {
		uc.secLog.LogUploadRejected(ctx, meta.ClientIP, meta.RequestID, in.File.Filename, "file too large")
		return "", "", uc.extractionError(fmt.Errorf("%w: %d bytes", extract.ErrTooLarge, in.File.Size))
	}

	extracted, err := uc.extractor.Extract(in.File.Data, in.File.MediaType, in.File.Filename)
	if err != nil {
		uc.secLog.LogUploadRejected(ctx, meta.ClientIP, meta.RequestID, in.File.Filename, err.Error())
		return "", "", uc.extractionError(err)
	}

	source := domain.SourceUpload
	if pasted != "" && extracted != "" {
		source = domain.SourceBoth
	}
	return strings.TrimSpace(pasted + "\n\n" + extracted), source, nil
}

func (uc *fitUsecase) extractionError(err error) error {
	switch {
	case errors.Is(err, extract.ErrTooLarge):
		return apperror.TooLarge(fmt.Sprintf("File too large (max %dMB).", extract.MaxFileBytes>>20), err)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return apperror.UnsupportedFormat(fmt.Sprintf("Unsupported file type. Please upload a %s.", orList(uc.extractor.Accepted())), err)
	default:
		return apperror.ExtractionFailed("Could not read text from the file. Try another format or paste the text instead.", err)
	}
}

func (uc *fitUsecase) score(ctx context.Context, jobText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.scoreTimeout)
	defer cancel()

	content, err := uc.completer.Complete(ctx, buildScoreRequest(uc.profile, jobText))
	if err == nil {
		if strings.TrimSpace(content) == "" {
			content = "{}"
		}
		return content, nil
	}

	logger.Log.Error("scoring call failed", "provider", uc.completer.Name(), "error", err)

	if errors.Is(err, context.DeadlineExceeded) {
		return "", apperror.Upstream("Scoring timed out. Please try again.", err)
	}
	var upErr *llm.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode > 0 {
		return "", apperror.Upstream(fmt.Sprintf("Scoring failed: %s error %d.", upErr.Provider, upErr.StatusCode), err)
	}
	return "", apperror.Upstream(fmt.Sprintf("Scoring failed: %s request error.", uc.completer.Name()), err)
}

// notifyDetached runs the notifier off the request path. Its result is only logged.
func (uc *fitUsecase) notifyDetached(ctx context.Context, result domain.FitResult, jobText string, source domain.Source) {
	if uc.notifier == nil {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Log.Error("fit notification panicked", "panic", r)
			}
		}()

		if err := uc.notifier.Notify(notifyCtx, result, jobText, source); err != nil {
			logger.Log.Warn("fit notification failed", "error", err)
		}
	}()
}

// orList turns "PDF, DOCX, TXT" into "PDF, DOCX, or TXT".
func orList(accepted string) string {
	parts := strings.Split(accepted, ", ")
	if len(parts) < 2 {
		return accepted
	}
	last := len(parts) - 1
	parts[last] = "or " + parts[last]
	if len(parts) == 2 {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts, ", ")
}
