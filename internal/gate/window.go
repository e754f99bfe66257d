// Package gate decides whether a run is inside the allowed posting window.
package gate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is a daily local-time interval in which posting is allowed.
// Bounds are "HH:MM" strings; leaving either empty disables gating.
type Window struct {
	Start    string
	End      string
	Timezone string // IANA name; empty keeps now's own location
}

// Open reports whether now falls inside the window.
//
// The interval is half-open: start inclusive, end exclusive. When end <= start
// the window wraps past midnight (e.g. 22:00-02:00). Malformed bounds or an
// unknown timezone fail open: gating is a convenience, never a reason to skip
// the day's post.
func (w Window) Open(now time.Time) bool {
	if strings.TrimSpace(w.Start) == "" || strings.TrimSpace(w.End) == "" {
		return true
	}

	if tz := strings.TrimSpace(w.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return true
		}
		now = now.In(loc)
	}

	sh, sm, err := parseHHMM(w.Start)
	if err != nil {
		return true
	}
	eh, em, err := parseHHMM(w.End)
	if err != nil {
		return true
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), sh, sm, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), eh, em, 0, 0, now.Location())

	if !end.After(start) {
		// window wraps past midnight
		return !now.Before(start) || now.Before(end)
	}
	return !now.Before(start) && now.Before(end)
}

func parseHHMM(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
