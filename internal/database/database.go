package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/libreria/internal/entities"
	"github.com/mrlokans/libreria/internal/logger"
)

// Models lists every table, join tables included, in migration order.
var Models = []any{
	&entities.User{},
	&entities.Book{},
	&entities.Category{},
	&entities.Cart{},
	&entities.Sale{},
	&entities.BookCategory{},
	&entities.CartBook{},
	&entities.SaleBook{},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite file at dbPath with foreign keys enforced
// and creates any missing tables.
func NewDatabase(dbPath string, logSQL bool) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger:         logger.NewGormLogger(logSQL),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Get().Info().Str("path", dbPath).Msg("database initialized")

	return &Database{DB: db}, nil
}

// dsn appends the connection options every pooled connection needs;
// foreign_keys is a per-connection pragma in SQLite.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn as one unit of work bound to ctx. It commits when fn
// returns nil and rolls back otherwise, including on panic.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}

// Tables returns the names of the tables created by NewDatabase.
func (d *Database) Tables() ([]string, error) {
	return d.DB.Migrator().GetTables()
}
