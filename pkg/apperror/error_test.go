package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  *AppError
		code int
		kind Kind
	}{
		{BadRequest("Invalid input"), http.StatusBadRequest, KindValidation},
		{VerificationFailed("Verification failed"), http.StatusBadRequest, KindVerification},
		{UnsupportedFormat("bad type", nil), http.StatusBadRequest, KindUnsupportedFormat},
		{TooLarge("too big", nil), http.StatusBadRequest, KindTooLarge},
		{ExtractionFailed("corrupt", nil), http.StatusBadRequest, KindExtractionFailed},
		{Upstream("llm down", nil), http.StatusInternalServerError, KindUpstream},
		{Configuration("OPENAI_API_KEY"), http.StatusInternalServerError, KindConfiguration},
		{Internal(errors.New("boom")), http.StatusInternalServerError, KindInternal},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, c.err.Code, c.err.Message)
		assert.Equal(t, c.kind, c.err.Kind, c.err.Message)
	}
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("dial tcp 10.0.0.5:6379: refused"))
	assert.Equal(t, "Server error", err.Message)
	assert.NotContains(t, err.Message, "10.0.0.5")
}

func TestConfigurationNamesVariable(t *testing.T) {
	err := Configuration("OPENAI_API_KEY")
	assert.Contains(t, err.Message, "OPENAI_API_KEY")
}

func TestKindOfWrapped(t *testing.T) {
	base := TooLarge("File too large (max 10MB).", nil)
	wrapped := fmt.Errorf("reading upload: %w", base)
	assert.Equal(t, KindTooLarge, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("Scoring failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Scoring failed: connection reset", err.Error())
}
