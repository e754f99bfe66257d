// Package rotation tracks which ideas have been posted and picks the next one.
//
// Progress persists as a small JSON file:
//
//	{"index": 3, "order": [2, 0, 4, 1, 3], "last_posted_at": "2026-01-02T09:00:00Z"}
//
// Order is a shuffled permutation of idea indexes, index is the cursor into it.
package rotation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type State struct {
	Index        int    `json:"index"`
	Order        []int  `json:"order"`
	LastPostedAt string `json:"last_posted_at,omitempty"`
}

// TryLoad reads the state file and surfaces every failure, including a
// missing file. Most callers want Load; TryLoad exists so the fallback to a
// fresh state is an explicit, loggable decision rather than a silent swallow.
func TryLoad(path string) (State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, err
	}
	if st.Index < 0 {
		st.Index = 0
	}
	return st, nil
}

// Load is the lenient variant: absent or corrupt files yield a fresh zero
// state. The rotation engine regenerates the order on the next run either way.
func Load(path string) State {
	st, err := TryLoad(path)
	if err != nil {
		return State{}
	}
	return st
}

// Save writes the state atomically (tmp file + rename) so a crash mid-write
// leaves the previous state readable.
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// MarkPosted advances the cursor and stamps the publish time. Call only after
// the publisher confirmed success; a failed post must retry the same item.
func (s *State) MarkPosted(now time.Time) {
	s.Index++
	s.LastPostedAt = now.UTC().Format(time.RFC3339)
}
