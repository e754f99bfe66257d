// Package compose turns a raw idea line into final post text.
package compose

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TopicPlaceholder is the token in idea lines replaced by the configured topic.
const TopicPlaceholder = "{topic}"

// DefaultLimit is the platform character limit applied when Limit is unset.
const DefaultLimit = 280

// Composer holds the per-run text settings. The zero value composes the raw
// idea unchanged apart from the length limit.
type Composer struct {
	Topic   string
	Hashtag string
	AddDate bool
	Limit   int

	// Location for the date suffix; nil means UTC.
	Location *time.Location
}

// Compose substitutes the topic, appends the optional date and hashtag
// suffixes, trims surrounding whitespace, and enforces the length limit.
func (c Composer) Compose(raw string, now time.Time) string {
	text := raw
	if c.Topic != "" && strings.Contains(text, TopicPlaceholder) {
		text = strings.ReplaceAll(text, TopicPlaceholder, c.Topic)
	}

	var b strings.Builder
	b.WriteString(text)
	if c.AddDate {
		loc := c.Location
		if loc == nil {
			loc = time.UTC
		}
		b.WriteString("\n\n")
		b.WriteString(now.In(loc).Format("2006-01-02"))
	}
	if c.Hashtag != "" {
		b.WriteString(" #")
		b.WriteString(c.Hashtag)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Trim(strings.TrimSpace(b.String()), limit)
}

// Trim caps s at limit runes. Oversized text is cut at the last space inside
// the limit when there is one (no mid-word cuts), then capped at limit-1 runes
// and finished with a single ellipsis. The result never exceeds limit runes.
func Trim(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	cutoff := firstRunes(s, limit)
	if i := strings.LastIndex(cutoff, " "); i >= 0 {
		cutoff = cutoff[:i]
	}
	return firstRunes(cutoff, limit-1) + "…"
}

// firstRunes returns the prefix of s holding at most n runes.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
