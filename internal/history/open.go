package history

import (
	"context"
	"errors"
	"strings"

	logx "postbot/pkg/logx"
)

// Store is the minimal post-log API used by the app.
type Store interface {
	AppendPost(ctx context.Context, r PostRecord) error
	Recent(ctx context.Context, n int) ([]PostRecord, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if history is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown history driver: " + driver)
	}
}
