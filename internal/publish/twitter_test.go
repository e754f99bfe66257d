package publish

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postbot/internal/config"
	logx "postbot/pkg/logx"
)

func testCreds() TwitterCredentials {
	return TwitterCredentials{
		APIKey:       "k",
		APISecret:    "ks",
		AccessToken:  "t",
		AccessSecret: "ts",
	}
}

func TestTwitterPublish(t *testing.T) {
	t.Parallel()
	var gotStatus, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/statuses/update.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotStatus = r.PostFormValue("status")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id": 1}`))
	}))
	defer srv.Close()

	p := NewTwitter(testCreds(), srv.URL, logx.Nop())
	if err := p.Publish(context.Background(), "hello world"); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if gotStatus != "hello world" {
		t.Fatalf("status = %q", gotStatus)
	}
	if !strings.Contains(gotAuth, `oauth_consumer_key="k"`) {
		t.Fatalf("Authorization missing oauth signature: %q", gotAuth)
	}
}

func TestTwitterPublishAPIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"code":187,"message":"Status is a duplicate."}]}`))
	}))
	defer srv.Close()

	p := NewTwitter(testCreds(), srv.URL, logx.Nop())
	err := p.Publish(context.Background(), "dup")
	if err == nil {
		t.Fatal("expected error on 403")
	}
	if !strings.Contains(err.Error(), "Status is a duplicate") {
		t.Fatalf("err = %v, want duplicate detail", err)
	}
}

func TestTwitterMissingCredentials(t *testing.T) {
	t.Parallel()
	p := NewTwitter(TwitterCredentials{APIKey: "k"}, "", logx.Nop())
	err := p.Publish(context.Background(), "hi")
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	// No network call may happen before validation; BaseURL points at the
	// real API here, so reaching it would fail loudly anyway.
}

func TestTelegramMissingCredentials(t *testing.T) {
	t.Parallel()
	p := NewTelegram("", 0, logx.Nop())
	if err := p.ValidateCredentials(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
	p = NewTelegram("123:abc", 0, logx.Nop())
	if err := p.ValidateCredentials(); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials for missing chat id", err)
	}
}

func TestNewSelectsDriver(t *testing.T) {
	t.Parallel()
	tests := []struct {
		driver   string
		platform string
	}{
		{"", "twitter"},
		{"twitter", "twitter"},
		{"telegram", "telegram"},
	}
	for _, tt := range tests {
		p, err := New(config.PublisherConfig{Driver: tt.driver}, logx.Nop())
		if err != nil {
			t.Fatalf("New(%q): %v", tt.driver, err)
		}
		if p.Platform() != tt.platform {
			t.Fatalf("Platform = %q, want %q", p.Platform(), tt.platform)
		}
	}

	if _, err := New(config.PublisherConfig{Driver: "fax"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
