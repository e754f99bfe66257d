package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	sd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"postbot/internal/config"
	logx "postbot/pkg/logx"
)

const defaultMinInterval = time.Hour

// Daemon runs the built-in scheduler until ctx is done. It replaces an
// external cron entry: the configured spec fires RunOnce, the config file is
// hot-reloaded, and sd_notify/watchdog are handled when running under systemd.
//
// mgr may be nil when there is no config file to watch.
func (a *App) Daemon(ctx context.Context, mgr *config.Manager) error {
	cfg := a.config()

	spec := strings.TrimSpace(cfg.Schedule.Spec)
	loc := a.location(firstNonEmpty(cfg.Schedule.Timezone, cfg.Post.Timezone))

	minInterval, err := config.ParseDurationOrDefault(
		"schedule.min_interval", cfg.Schedule.MinInterval, defaultMinInterval)
	if err != nil {
		return err
	}
	// The limiter is a guard against a mistyped spec (e.g. "* * * * *")
	// flooding the timeline, not a scheduling mechanism.
	limiter := rate.NewLimiter(rate.Every(minInterval), 1)

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		if !limiter.Allow() {
			a.log.Warn("schedule fired too soon; suppressed",
				logx.String("spec", spec),
				logx.Duration("min_interval", minInterval))
			return
		}
		res, err := a.RunOnce(ctx)
		switch {
		case err != nil:
			a.log.Error("scheduled run failed", logx.Err(err))
		case res.Gated:
			// RunOnce already logged the skip.
		default:
			a.log.Info("scheduled run posted", logx.Int("idea_index", res.IdeaIndex))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule.spec %q: %w", spec, err)
	}

	// Config hot-reload.
	var updates chan *config.Config
	if mgr != nil {
		updates = mgr.Subscribe(1)
		defer mgr.Unsubscribe(updates)
		go func() {
			if err := mgr.Watch(ctx); err != nil {
				a.log.Warn("config watch stopped", logx.Err(err))
			}
		}()
	}

	c.Start()
	defer c.Stop()
	a.log.Info("daemon started", logx.String("spec", spec), logx.String("timezone", loc.String()))

	// systemd integration is a no-op outside systemd (NOTIFY_SOCKET unset).
	if ok, err := sd.SdNotify(false, sd.SdNotifyReady); err != nil {
		a.log.Debug("sd_notify failed", logx.Err(err))
	} else if ok {
		a.log.Debug("sd_notify ready sent")
	}
	stopWatchdog := a.startWatchdog(ctx)
	defer stopWatchdog()

	for {
		select {
		case <-ctx.Done():
			_, _ = sd.SdNotify(false, sd.SdNotifyStopping)
			a.log.Info("daemon stopping")
			return nil
		case cfg, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			a.Apply(cfg)
		}
	}
}

// startWatchdog pings the systemd watchdog at half the configured interval.
// Returns a stop func; a no-op when the watchdog is disabled.
func (a *App) startWatchdog(ctx context.Context) func() {
	interval, err := sd.SdWatchdogEnabled(false)
	if err != nil || interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval / 2)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-t.C:
				_, _ = sd.SdNotify(false, sd.SdNotifyWatchdog)
			}
		}
	}()
	return func() { close(done) }
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
