// Package gormdb stores users, books and borrows in SQLite or PostgreSQL
// through gorm.
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gnur/booklend"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDatabase is returned by Open for a dsn it cannot handle
var ErrUnsupportedDatabase = errors.New("unsupported database, use file:// or postgres://")

// DB implements booklend.Store
type DB struct {
	db   *gorm.DB
	inTx bool
}

var _ booklend.Store = (*DB)(nil)

// Open connects to the database named by dsn and makes sure the tables exist.
// file://<path> opens a SQLite file, postgres:// and postgresql:// URLs open
// PostgreSQL.
func Open(dsn string, log *logrus.Entry) (*DB, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}
	return New(dialector, log)
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(dsn, "file://"):
		return sqlite.Open(sqlitePath(strings.TrimPrefix(dsn, "file://"))), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDatabase, dsn)
}

// sqlitePath turns on foreign keys, SQLite leaves them off per connection
func sqlitePath(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// New wraps a gorm dialector and migrates the schema
func New(dialector gorm.Dialector, log *logrus.Entry) (*DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	// Create the tables
	err = db.AutoMigrate(
		&booklend.User{},
		&booklend.Book{},
		&booklend.Borrow{},
	)
	if err != nil {
		return nil, fmt.Errorf("could not create tables: %w", err)
	}

	return &DB{
		db: db,
	}, nil
}

func (d *DB) Close() error {
	if d.inTx {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Transaction(ctx context.Context, fn func(booklend.Store) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{db: tx, inTx: true})
	})
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booklend.ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", booklend.ErrDuplicate, err)
	}
	return err
}
