package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	logx "postbot/pkg/logx"
)

const twitterAPIBase = "https://api.twitter.com"

// TwitterCredentials is the OAuth 1.0a user-context quad. All four values are
// required; posting needs elevated write access on the X API.
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

type Twitter struct {
	creds   TwitterCredentials
	baseURL string
	client  *http.Client
	log     logx.Logger
}

// NewTwitter builds the X backend. baseURL overrides the API host (tests);
// empty means the real API.
func NewTwitter(creds TwitterCredentials, baseURL string, log logx.Logger) *Twitter {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = twitterAPIBase
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	cfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	client := cfg.Client(oauth1.NoContext, token)
	client.Timeout = 15 * time.Second

	return &Twitter{
		creds:   creds,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}
}

func (t *Twitter) Platform() string { return "twitter" }

func (t *Twitter) ValidateCredentials() error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(t.creds.APIKey) == "" {
		missing = append(missing, "api key")
	}
	if strings.TrimSpace(t.creds.APISecret) == "" {
		missing = append(missing, "api secret")
	}
	if strings.TrimSpace(t.creds.AccessToken) == "" {
		missing = append(missing, "access token")
	}
	if strings.TrimSpace(t.creds.AccessSecret) == "" {
		missing = append(missing, "access secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (set TWITTER_*/X_* env or publisher.twitter config)",
			ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Publish posts via the v1.1 statuses/update endpoint.
func (t *Twitter) Publish(ctx context.Context, text string) error {
	if err := t.ValidateCredentials(); err != nil {
		return err
	}

	form := url.Values{"status": {text}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/1.1/statuses/update.json", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twitter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twitter: %s: %s", resp.Status, apiErrorDetail(resp.Body))
	}

	t.log.Debug("tweet accepted", logx.Int("status", resp.StatusCode))
	return nil
}

// apiErrorDetail extracts the message from a v1.1 error body:
//
//	{"errors":[{"code":187,"message":"Status is a duplicate."}]}
func apiErrorDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return "no error detail"
	}
	var payload struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		e := payload.Errors[0]
		return fmt.Sprintf("code %d: %s", e.Code, e.Message)
	}
	return strings.TrimSpace(string(body))
}
