// Package app wires config, content, rotation, composition and publishing
// into the one-post-per-run control flow.
package app

import (
	"math/rand"
	"sync"
	"time"

	"postbot/internal/config"
	"postbot/internal/history"
	"postbot/internal/publish"
	"postbot/internal/rotation"
	logx "postbot/pkg/logx"
)

type App struct {
	mu  sync.Mutex
	cfg *config.Config

	log    logx.Logger
	logSvc *logx.Service

	pub    publish.Publisher
	hist   history.Store
	engine *rotation.Engine

	// now is a clock hook; tests pin it.
	now func() time.Time

	dryRun bool
}

type Options struct {
	DryRun bool

	// Publisher overrides the config-selected backend (tests).
	Publisher publish.Publisher

	// Source seeds the rotation engine (tests). Nil means time-seeded.
	Source rand.Source

	// Now overrides the clock (tests).
	Now func() time.Time
}

// New builds the app from a normalized config. logSvc may be nil when the
// caller manages logging itself (tests pass a plain logger).
func New(cfg *config.Config, log logx.Logger, logSvc *logx.Service, opts Options) (*App, error) {
	if log.IsZero() {
		log = logx.Nop()
	}

	pub := opts.Publisher
	if pub == nil {
		var err error
		pub, err = publish.New(cfg.Publisher, log)
		if err != nil {
			return nil, err
		}
	}

	var hist history.Store
	if cfg.History != nil {
		busy, err := config.ParseDurationField("history.busy_timeout", cfg.History.BusyTimeout)
		if err != nil {
			return nil, err
		}
		hist, err = history.Open(history.Config{
			Driver:      cfg.History.Driver,
			Path:        cfg.History.Path,
			BusyTimeout: busy,
		}, log)
		if err != nil {
			return nil, err
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		cfg:    cfg,
		log:    log,
		logSvc: logSvc,
		pub:    pub,
		hist:   hist,
		engine: rotation.NewEngine(opts.Source),
		now:    now,
		dryRun: opts.DryRun,
	}, nil
}

// Apply swaps in a reloaded config (daemon mode). The env overlay stays
// authoritative over file fields. Logging settings take effect immediately;
// everything else is read per run.
func (a *App) Apply(cfg *config.Config) {
	config.ApplyEnv(cfg)
	cfg.Normalize()
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()
	if a.logSvc != nil {
		a.logSvc.Apply(logx.Config{
			Level:   cfg.Logging.Level,
			Console: cfg.Logging.Console,
			File: logx.FileConfig{
				Enabled: cfg.Logging.File.Enabled,
				Path:    cfg.Logging.File.Path,
			},
		})
	}
	a.log.Info("config applied")
}

func (a *App) config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

func (a *App) Close() error {
	if a.hist != nil {
		return a.hist.Close()
	}
	return nil
}
