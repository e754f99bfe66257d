// Package publish is the boundary to the external posting API.
//
// The rest of the program treats a publisher as "send text, get success or
// failure"; everything transport-specific (auth, endpoints, response codes)
// stays behind the Publisher interface so the rotation core runs in tests
// without credentials or network.
package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postbot/internal/config"
	logx "postbot/pkg/logx"
)

// ErrMissingCredentials marks a fatal configuration error: required secrets
// are absent. It is raised before any network call.
var ErrMissingCredentials = errors.New("missing publisher credentials")

type Publisher interface {
	// Platform names the backend ("twitter", "telegram").
	Platform() string

	// ValidateCredentials checks that required secrets are present.
	ValidateCredentials() error

	// Publish posts text. A nil return means the post is confirmed live;
	// only then may the caller advance the rotation cursor.
	Publish(ctx context.Context, text string) error
}

// New selects the backend by cfg.Driver.
func New(cfg config.PublisherConfig, log logx.Logger) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "twitter":
		return NewTwitter(TwitterCredentials{
			APIKey:       cfg.Twitter.APIKey,
			APISecret:    cfg.Twitter.APISecret,
			AccessToken:  cfg.Twitter.AccessToken,
			AccessSecret: cfg.Twitter.AccessSecret,
		}, cfg.Twitter.BaseURL, log), nil
	case "telegram":
		return NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log), nil
	default:
		return nil, fmt.Errorf("unknown publisher driver: %s", cfg.Driver)
	}
}
