package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"postbot/internal/app"
	"postbot/internal/config"
	logx "postbot/pkg/logx"
)

func main() {
	var (
		cfgPath    string
		dryRun     bool
		daemonMode bool
	)
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config yaml/json (optional; env vars alone are enough)")
	flag.BoolVar(&dryRun, "dry-run", false, "compose and print the next post without publishing or touching state")
	flag.BoolVar(&daemonMode, "daemon", false, "keep running and post on the configured schedule")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfgPath, dryRun, daemonMode); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, dryRun, daemonMode bool) error {
	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.LoadOrDefault()
	if err != nil {
		return err
	}
	config.ApplyEnv(cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	defer logSvc.Close()

	mgr.SetLogger(log)
	mgr.SetValidator(func(_ context.Context, c *config.Config) error {
		cc := *c
		config.ApplyEnv(&cc)
		cc.Normalize()
		return cc.Validate()
	})

	a, err := app.New(cfg, log, logSvc, app.Options{DryRun: dryRun})
	if err != nil {
		return err
	}
	defer a.Close()

	if daemonMode {
		return a.Daemon(ctx, mgr)
	}

	res, err := a.RunOnce(ctx)
	if err != nil {
		return err
	}
	if res.Gated {
		// Normal skip: the next scheduled invocation will try again.
		return nil
	}
	fmt.Println(res.Text)
	return nil
}
