package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"
	"unicode/utf8"

	"postbot/internal/compose"
	"postbot/internal/content"
	"postbot/internal/gate"
	"postbot/internal/history"
	"postbot/internal/rotation"
	logx "postbot/pkg/logx"
)

// Result reports what a run did.
type Result struct {
	// Gated is true when the run was skipped because the posting window was
	// closed. Not an error: the scheduler will try again.
	Gated bool

	// Text is the final composed post (also set on dry runs).
	Text string

	// IdeaIndex is the selected position in the idea file.
	IdeaIndex int

	DryRun bool
}

// RunOnce performs one complete posting cycle:
// gate -> ideas + state -> select -> compose -> publish -> persist.
//
// State write ordering is the careful part. A regenerated or reshuffled
// permutation is persisted before publishing, so a failed publish leaves the
// next run retrying the same deterministic item. The cursor itself advances
// only after the publisher confirms success.
func (a *App) RunOnce(ctx context.Context) (Result, error) {
	cfg := a.config()
	now := a.now()

	w := gate.Window{
		Start:    cfg.Window.Start,
		End:      cfg.Window.End,
		Timezone: cfg.Post.Timezone,
	}
	if !w.Open(now) {
		a.log.Info("outside posting window; skipping",
			logx.String("start", cfg.Window.Start),
			logx.String("end", cfg.Window.End),
			logx.String("timezone", cfg.Post.Timezone))
		return Result{Gated: true}, nil
	}

	// Credentials are checked before any state mutation or network call.
	if !a.dryRun {
		if err := a.pub.ValidateCredentials(); err != nil {
			return Result{}, err
		}
	}

	ideas, err := content.Load(cfg.Content.Path)
	if err != nil {
		return Result{}, err
	}

	st, err := rotation.TryLoad(cfg.State.Path)
	if err != nil {
		if isNotExist(err) {
			a.log.Debug("no state file; starting fresh", logx.String("path", cfg.State.Path))
		} else {
			a.log.Warn("state file unreadable; starting fresh",
				logx.String("path", cfg.State.Path), logx.Err(err))
		}
		st = rotation.State{}
	}

	changed := a.engine.EnsureOrder(&st, len(ideas))
	ideaIdx, reshuffled := a.engine.Next(&st)
	raw := ideas[ideaIdx]

	loc := a.location(cfg.Post.Timezone)
	composer := compose.Composer{
		Topic:    cfg.Post.Topic,
		Hashtag:  cfg.Post.Hashtag,
		AddDate:  cfg.Post.AddDate != nil && *cfg.Post.AddDate,
		Limit:    cfg.Post.Limit,
		Location: loc,
	}
	text := composer.Compose(raw, now)

	if a.dryRun {
		a.log.Info("dry run; not publishing", logx.Int("idea_index", ideaIdx))
		return Result{Text: text, IdeaIndex: ideaIdx, DryRun: true}, nil
	}

	// Persist a fresh permutation before the network call so the retry
	// target stays stable across failed runs.
	if changed || reshuffled {
		if err := rotation.Save(cfg.State.Path, st); err != nil {
			return Result{}, fmt.Errorf("save rotation state: %w", err)
		}
	}

	if err := a.pub.Publish(ctx, text); err != nil {
		return Result{}, fmt.Errorf("publish: %w", err)
	}

	st.MarkPosted(now)
	if err := rotation.Save(cfg.State.Path, st); err != nil {
		// The post is live; a failed save means tomorrow repeats it.
		return Result{}, fmt.Errorf("save rotation state after publish: %w", err)
	}

	a.appendHistory(ctx, st, ideaIdx, text, now)

	a.log.Info("posted",
		logx.String("platform", a.pub.Platform()),
		logx.Int("idea_index", ideaIdx),
		logx.Int("cursor", st.Index),
		logx.Int("chars", utf8.RuneCountInString(text)))
	return Result{Text: text, IdeaIndex: ideaIdx}, nil
}

func (a *App) appendHistory(ctx context.Context, st rotation.State, ideaIdx int, text string, now time.Time) {
	if a.hist == nil {
		return
	}
	rec := history.PostRecord{
		At:        now.UTC(),
		Platform:  a.pub.Platform(),
		IdeaIndex: ideaIdx,
		Cursor:    st.Index,
		Text:      text,
		Chars:     utf8.RuneCountInString(text),
	}
	if err := a.hist.AppendPost(ctx, rec); err != nil {
		a.log.Warn("history append failed", logx.Err(err))
	}
}

// location resolves the configured timezone, falling back to UTC. The gate
// already fails open on bad zones; composition degrades the same way instead
// of aborting the run.
func (a *App) location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		a.log.Warn("unknown timezone; using UTC", logx.String("timezone", tz))
		return time.UTC
	}
	return loc
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
