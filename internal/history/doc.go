package history

// Package history keeps an optional log of published posts.
//
// It answers "what went out, when, from which idea" without re-reading the
// timeline. Failures here never fail a run; the state file alone is
// authoritative for rotation.
