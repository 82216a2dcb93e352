package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festflow/festflow-api/internal/config"
)

const slowQueryThreshold = 500 * time.Millisecond

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN())
}

// OpenPostgresWithURL accepts either a postgres:// URL or a keyword/value DSN.
func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// OpenSQLite opens a file or in-memory SQLite database. SQLite allows a
// single writer, so the pool is pinned to one connection and concurrent
// transactions queue up instead of failing with "database is locked".
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Open picks the driver named in the config. A non-empty databaseURL wins
// over the postgres section.
func Open(conf *config.AppConfig, databaseURL string) (*gorm.DB, error) {
	switch {
	case conf.Database.Driver == config.DriverSQLite:
		return OpenSQLite(conf.Database.SQLitePath)
	case databaseURL != "":
		return OpenPostgresWithURL(databaseURL)
	default:
		return OpenPostgres(conf.Postgres)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: newGormLogger(nil, slowQueryThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}

	return sqlDB.Close()
}
