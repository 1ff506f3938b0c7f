package usecase_test

import (
	"context"
	"sync"

	"portfolio-api/internal/domain"
	"portfolio-api/pkg/email"
	"portfolio-api/pkg/llm"
	"portfolio-api/pkg/security"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func nopSecLog() *security.SecurityLogger {
	return security.NewSecurityLogger(zap.NewNop(), "portfolio-api", "test")
}

type MockVerifier struct {
	mock.Mock
	siteKey bool
	bypass  bool
}

func (m *MockVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	return m.Called(ctx, token, remoteIP).Bool(0)
}
func (m *MockVerifier) SiteKeyConfigured() bool { return m.siteKey }
func (m *MockVerifier) Bypassed() bool          { return m.bypass }

type MockContactMailer struct {
	mock.Mock
}

func (m *MockContactMailer) SendContactEmail(ctx context.Context, data email.ContactEmailData) error {
	return m.Called(ctx, data).Error(0)
}

type MockFitMailer struct {
	mock.Mock
	configured bool
}

func (m *MockFitMailer) SendFitAlert(ctx context.Context, data email.FitAlertData) error {
	return m.Called(ctx, data).Error(0)
}
func (m *MockFitMailer) IsConfigured() bool { return m.configured }

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(data []byte, declaredMediaType, filename string) (string, error) {
	args := m.Called(data, declaredMediaType, filename)
	return args.String(0), args.Error(1)
}
func (m *MockExtractor) Accepted() string { return "PDF, DOCX, TXT" }

type MockCompleter struct {
	mock.Mock
	configured bool
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *MockCompleter) Configured() bool      { return m.configured }
func (m *MockCompleter) CredentialEnv() string { return "OPENAI_API_KEY" }
func (m *MockCompleter) Name() string          { return "openai" }

type notifyCall struct {
	result  domain.FitResult
	jobText string
	source  domain.Source
}

// recordingNotifier is safe to read from the test goroutine while the
// detached notification runs.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
	panic bool
}

func (n *recordingNotifier) Notify(_ context.Context, result domain.FitResult, jobText string, source domain.Source) error {
	n.mu.Lock()
	n.calls = append(n.calls, notifyCall{result, jobText, source})
	n.mu.Unlock()
	if n.panic {
		panic("notifier exploded")
	}
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func (n *recordingNotifier) last() notifyCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[len(n.calls)-1]
}
