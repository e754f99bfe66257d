package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays the process environment onto cfg.
//
// The env contract predates the config file and stays authoritative: a set
// variable always wins over the corresponding file field. Credentials accept
// both TWITTER_* and X_* spellings (TWITTER_* checked first).
func ApplyEnv(cfg *Config) {
	if v, ok := lookup("TOPIC"); ok {
		cfg.Post.Topic = v
	}
	if v, ok := lookup("TIMEZONE"); ok {
		cfg.Post.Timezone = v
	}
	if v, ok := lookup("RUN_WINDOW_START"); ok {
		cfg.Window.Start = v
	}
	if v, ok := lookup("RUN_WINDOW_END"); ok {
		cfg.Window.End = v
	}
	if v, ok := lookup("ADD_DATE"); ok {
		b := ParseBool(v, false)
		cfg.Post.AddDate = &b
	}
	if v, ok := lookup("ADD_HASHTAG"); ok {
		cfg.Post.Hashtag = v
	}

	if v, ok := lookupFirst("TWITTER_API_KEY", "X_API_KEY"); ok {
		cfg.Publisher.Twitter.APIKey = v
	}
	if v, ok := lookupFirst("TWITTER_API_SECRET", "X_API_SECRET"); ok {
		cfg.Publisher.Twitter.APISecret = v
	}
	if v, ok := lookupFirst("TWITTER_ACCESS_TOKEN", "X_ACCESS_TOKEN"); ok {
		cfg.Publisher.Twitter.AccessToken = v
	}
	if v, ok := lookupFirst("TWITTER_ACCESS_SECRET", "X_ACCESS_SECRET"); ok {
		cfg.Publisher.Twitter.AccessSecret = v
	}

	if v, ok := lookup("TELEGRAM_BOT_TOKEN"); ok {
		cfg.Publisher.Telegram.Token = v
	}
	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok {
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.Publisher.Telegram.ChatID = id
		}
	}
}

// ParseBool parses boolean-like env values: 1/true/yes/y and 0/false/no/n.
// Anything else returns def.
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	default:
		return def
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func lookupFirst(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := lookup(k); ok {
			return v, true
		}
	}
	return "", false
}
