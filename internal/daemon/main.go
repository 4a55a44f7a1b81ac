// Package daemon wires the database, the session storage, the workspace registry and the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/db"
	"github.com/code-server-panel/code-server-panel/internal/db/dsn"
	"github.com/code-server-panel/code-server-panel/internal/panel"
	"github.com/code-server-panel/code-server-panel/internal/web"
)

// SessionTable holds the sessions in the SQL session storages.
const SessionTable = "sessions"

// ErrNilConfig is returned by New without a configuration.
var ErrNilConfig = errors.New("daemon: config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	workspaces *panel.Registry
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go d.workspaces.Run(ctx, d.cfg.Webserver.Session.SweepPeriod, d.cfg.Webserver.Session.ExpiryTime)

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("engine", d.cfg.DB.GormEngine).Msg("starting web service")

	go func() {
		_ = d.webService.Start(addr)
	}()

	d.webService.WaitShutdown()

	return d.Close()
}

// Close releases the session storage and the database connection.
func (d *Daemon) Close() error {
	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}

	return errors.Wrap(sqlDB.Close(), "failed to close database")
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config, fastShutDown bool) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	return build(cfg, gdb, fastShutDown)
}

// build seeds gdb and assembles the daemon. gdb is closed when seeding fails.
func build(cfg *config.Config, gdb *gorm.DB, fastShutDown bool) (*Daemon, error) {
	if err := seed(gdb); err != nil {
		if sqlDB, errDB := gdb.DB(); errDB == nil {
			_ = sqlDB.Close()
		}

		return nil, err
	}

	storage := sessionStorage(cfg)
	workspaces := panel.NewRegistry(nil)

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		storage:    storage,
		workspaces: workspaces,
		webService: web.New(cfg, gdb, workspaces, web.Options{
			Storage:      storage,
			FastShutDown: fastShutDown,
		}),
	}, nil
}

// sessionStorage keeps sessions next to the panel tables. SQLite sessions stay in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         SessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         SessionTable,
		})
	default:
		return nil
	}
}
