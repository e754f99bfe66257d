package history

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("history disabled")

// Config configures the post log.
//
// Driver values:
//   - "file": dependency-free JSON Lines backend
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// PostRecord describes one published post.
// Keep it compact and schema-stable.
type PostRecord struct {
	At        time.Time `json:"at"`
	Platform  string    `json:"platform"`
	IdeaIndex int       `json:"idea_index"`
	Cursor    int       `json:"cursor"`
	Text      string    `json:"text"`
	Chars     int       `json:"chars"`
}
