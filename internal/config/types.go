package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values applied by Normalize().
const (
	DefaultContentPath = "./content/ideas.txt"
	DefaultStatePath   = "./data/state.json"
	DefaultTimezone    = "Europe/Riga"
	DefaultLimit       = 280
)

type Config struct {
	Content ContentConfig `json:"content"`
	State   StateConfig   `json:"state"`

	// Post controls how the selected idea is turned into final text.
	Post PostConfig `json:"post"`

	// Window optionally restricts posting to a local-time interval.
	// Both bounds empty disables gating.
	Window WindowConfig `json:"window"`

	Publisher PublisherConfig `json:"publisher"`

	// History is the optional post log. Omitted or driver "none" disables it.
	History *HistoryConfig `json:"history,omitempty"`

	Logging LoggingConfig `json:"logging"`

	// Schedule controls daemon mode. One-shot runs ignore it.
	Schedule ScheduleConfig `json:"schedule"`
}

type ContentConfig struct {
	Path string `json:"path"`
}

type StateConfig struct {
	Path string `json:"path"`
}

// PostConfig mirrors the env contract: TOPIC, TIMEZONE, ADD_DATE, ADD_HASHTAG.
//
// AddDate is a pointer so we can distinguish "omitted" (default true) from an
// explicit false.
type PostConfig struct {
	Topic    string `json:"topic,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	AddDate  *bool  `json:"add_date,omitempty"`
	Hashtag  string `json:"hashtag,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type WindowConfig struct {
	Start string `json:"start,omitempty"` // "HH:MM"
	End   string `json:"end,omitempty"`   // "HH:MM"
}

// PublisherConfig selects the posting backend.
//
// Driver values:
//   - "twitter": X API v1.1 statuses/update via OAuth 1.0a (default)
//   - "telegram": send to a chat/channel via a bot token
type PublisherConfig struct {
	Driver   string         `json:"driver,omitempty"`
	Twitter  TwitterConfig  `json:"twitter,omitempty"`
	Telegram TelegramConfig `json:"telegram,omitempty"`
}

type TwitterConfig struct {
	APIKey       string `json:"api_key,omitempty"`
	APISecret    string `json:"api_secret,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	AccessSecret string `json:"access_secret,omitempty"`

	// BaseURL overrides the API host. Tests point this at a local server.
	BaseURL string `json:"base_url,omitempty"`
}

type TelegramConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
}

// HistoryConfig controls the optional post log.
//
// Driver values:
//   - "file": append-only JSON Lines
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", history is disabled.
type HistoryConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

type LoggingConfig struct {
	Level   string      `json:"level,omitempty"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// ScheduleConfig controls the built-in daemon trigger.
//
// Spec accepts robfig/cron syntax ("30 9 * * *") or the "@every 24h" form.
// MinInterval is a floor between posts regardless of Spec; it protects against
// a mistyped schedule firing in a tight loop.
type ScheduleConfig struct {
	Enabled     bool   `json:"enabled"`
	Spec        string `json:"spec,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	MinInterval string `json:"min_interval,omitempty"`
}

// Normalize fills defaults in place. Call after file decode and env overlay.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Content.Path) == "" {
		c.Content.Path = DefaultContentPath
	}
	if strings.TrimSpace(c.State.Path) == "" {
		c.State.Path = DefaultStatePath
	}
	if strings.TrimSpace(c.Post.Timezone) == "" {
		c.Post.Timezone = DefaultTimezone
	}
	if c.Post.AddDate == nil {
		t := true
		c.Post.AddDate = &t
	}
	if c.Post.Limit <= 0 {
		c.Post.Limit = DefaultLimit
	}
	if strings.TrimSpace(c.Publisher.Driver) == "" {
		c.Publisher.Driver = "twitter"
	}
	if strings.TrimSpace(c.Schedule.Spec) == "" {
		c.Schedule.Spec = "@every 24h"
	}
}

// Validate rejects configs that cannot possibly run. Credential presence is
// checked by the publisher itself so dry runs work without secrets.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Publisher.Driver)) {
	case "", "twitter", "telegram":
	default:
		return fmt.Errorf("publisher.driver: unknown driver %q", c.Publisher.Driver)
	}
	if c.History != nil {
		switch strings.ToLower(strings.TrimSpace(c.History.Driver)) {
		case "", "none", "file", "sqlite", "sqlite3":
		default:
			return fmt.Errorf("history.driver: unknown driver %q", c.History.Driver)
		}
		if _, err := ParseDurationField("history.busy_timeout", c.History.BusyTimeout); err != nil {
			return err
		}
	}
	if c.Schedule.Enabled {
		if _, err := ParseDurationField("schedule.min_interval", c.Schedule.MinInterval); err != nil {
			return err
		}
		if strings.TrimSpace(c.Schedule.Timezone) != "" {
			if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
				return fmt.Errorf("schedule.timezone: %w", err)
			}
		}
	}
	// Window bounds and post.timezone are deliberately not validated here:
	// the gate fails open on malformed input rather than blocking the run.
	return nil
}
