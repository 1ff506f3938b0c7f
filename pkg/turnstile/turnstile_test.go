package turnstile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"portfolio-api/pkg/turnstile"

	"github.com/stretchr/testify/assert"
)

func newServer(t *testing.T, status int, body string, seen *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-key", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"success", http.StatusOK, `{"success":true}`, true},
		{"explicit failure", http.StatusOK, `{"success":false,"error-codes":["invalid-input-response"]}`, false},
		{"non 2xx", http.StatusBadGateway, `{"success":true}`, false},
		{"non json", http.StatusOK, `<html>oops</html>`, false},
		{"missing success field", http.StatusOK, `{}`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := newServer(t, c.status, c.body, &calls)
			client := turnstile.NewClient(turnstile.Config{SecretKey: "secret-key", VerifyURL: srv.URL})

			assert.Equal(t, c.want, client.Verify(context.Background(), "tok", ""))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestVerify_SendsRemoteIP(t *testing.T) {
	var gotIP string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotIP = r.PostForm.Get("remoteip")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := turnstile.NewClient(turnstile.Config{SecretKey: "s", VerifyURL: srv.URL})
	assert.True(t, client.Verify(context.Background(), "tok", "198.51.100.4"))
	assert.Equal(t, "198.51.100.4", gotIP)
}

func TestVerify_ShortCircuits(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, http.StatusOK, `{"success":true}`, &calls)

	t.Run("missing token", func(t *testing.T) {
		client := turnstile.NewClient(turnstile.Config{SecretKey: "secret-key", VerifyURL: srv.URL})
		assert.False(t, client.Verify(context.Background(), "", ""))
	})

	t.Run("missing secret", func(t *testing.T) {
		client := turnstile.NewClient(turnstile.Config{VerifyURL: srv.URL})
		assert.False(t, client.Verify(context.Background(), "tok", ""))
	})

	t.Run("bypass", func(t *testing.T) {
		client := turnstile.NewClient(turnstile.Config{Bypass: true, VerifyURL: srv.URL})
		assert.True(t, client.Verify(context.Background(), "", ""))
		assert.True(t, client.Bypassed())
	})

	assert.Equal(t, int32(0), calls.Load())
}

func TestVerify_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := turnstile.NewClient(turnstile.Config{SecretKey: "s", VerifyURL: url})
	assert.False(t, client.Verify(context.Background(), "tok", ""))
}

func TestSiteKeyConfigured(t *testing.T) {
	assert.False(t, turnstile.NewClient(turnstile.Config{}).SiteKeyConfigured())
	assert.True(t, turnstile.NewClient(turnstile.Config{SiteKey: "0x4AAA"}).SiteKeyConfigured())
}
