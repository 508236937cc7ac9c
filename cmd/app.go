package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/db"
	"github.com/castelle/tipcast/db/repository"
	dbservice "github.com/castelle/tipcast/db/service"
	"github.com/castelle/tipcast/logger"
	"github.com/castelle/tipcast/notifications"
	"github.com/castelle/tipcast/publisher"
	"github.com/castelle/tipcast/scheduler"
)

// App bundles the wired-up collaborators shared by the daemon and the
// one-shot subcommands.
type App struct {
	Config    *config.Config
	Database  *db.Database
	Ledger    *dbservice.LedgerService
	Scheduler *scheduler.Scheduler
}

// NewApp loads content and ledger state and builds the scheduler with its
// concrete LinkedIn (or Instagram) publisher.
func NewApp(cfg *config.Config) (*App, error) {
	store, err := content.NewStore(filepath.Join(cfg.Options.SaveLocation, "data"))
	if err != nil {
		return nil, fmt.Errorf("loading content library: %w", err)
	}

	database, err := db.NewDatabase(cfg.Options.SaveLocation)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	ledger := dbservice.NewLedgerService(
		repository.NewTipPostRepository(database.DB),
		repository.NewMCQPostRepository(database.DB),
		repository.NewPostedTipRepository(database.DB),
	)

	var pub publisher.Publisher = publisher.NewLinkedInClient(cfg.LinkedIn)
	if cfg.Instagram.Enabled {
		pub = publisher.NewInstagramClient(cfg.Instagram)
	}

	notifier := notifications.NewNotificationService(cfg)

	sched := scheduler.NewScheduler(store, ledger, pub, notifier, cfg, logger.Logger)

	return &App{
		Config:    cfg,
		Database:  database,
		Ledger:    ledger,
		Scheduler: sched,
	}, nil
}

// Close releases the ledger connection.
func (a *App) Close() error {
	return a.Database.Close()
}
