package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/smbc/backend/internal/infrastructure/logger"
	"github.com/smbc/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// runtime is what a command needs from the environment
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *persistence.Database
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadEnvFiles(); err != nil {
		return nil, err
	}
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// openRuntime loads config and builds a logger writing to stderr, so command
// output on stdout stays clean. The database is opened only when withDB is set.
func openRuntime(ctx context.Context, configPath string, withDB bool) (*runtime, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log}
	if !withDB {
		return rt, nil
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	rt.db = db
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return rt, nil
}

// clock returns "now" in the business timezone
func (r *runtime) clock() func() time.Time {
	loc := r.cfg.App.Location()
	return func() time.Time { return time.Now().In(loc) }
}

func (r *runtime) Close() {
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			r.log.Warn("closing database", zap.Error(err))
		}
	}
	_ = r.log.Sync()
}
