package db

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/castelle/tipcast/db/models"
	"github.com/castelle/tipcast/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Database represents the ledger database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the posting ledger under saveLocation.
func NewDatabase(saveLocation string) (*Database, error) {
	dbPath := filepath.Join(saveLocation, "ledger.db")
	return open(dbPath)
}

// NewMemoryDatabase opens a private in-memory ledger, used by tests.
func NewMemoryDatabase() (*Database, error) {
	name := fmt.Sprintf("file:mem%d?mode=memory&cache=shared", memDBSeq.Add(1))
	return open(name)
}

var memDBSeq atomic.Int64

// open binds gorm to the pure-Go sqlite driver registered by the modernc
// blank import, keeping cgo out of the build.
func open(dsn string) (*Database, error) {
	dialector := &sqlite.Dialector{DriverName: "sqlite", DSN: dsn}

	logConfig := gormlogger.Config{
		LogLevel: gormlogger.Warn, // Log only warnings and errors
		Colorful: true,
	}

	var gormCfg gorm.Config
	if logger.Logger != nil {
		gormCfg.Logger = gormlogger.New(logger.Logger, logConfig)
	}

	db, err := gorm.Open(dialector, &gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.TipPost{}, &models.MCQPost{}, &models.PostedTip{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
