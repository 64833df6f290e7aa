package repositories

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnsupported = errors.New("operation not supported by this store")
	// ErrInvalidBackup is returned when a backup cannot be loaded.
	ErrInvalidBackup = errors.New("invalid backup")
)

// Store drivers accepted by Open.
const (
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// InMemory as a badger path opens an in-memory database.
const InMemory = ":memory:"

// Options selects and configures the persistence adapter.
type Options struct {
	Driver string
	// BadgerPath is the badger directory; "" or InMemory keeps data in memory.
	BadgerPath string
	// DSN is the SQLite file or PostgreSQL connection string.
	DSN    string
	Logger zerolog.Logger
}

// Store bundles the repositories of one persistence adapter.
type Store struct {
	Posts    PostRepository
	Comments CommentRepository

	badger *badger.DB
	sql    *gorm.DB
}

// Open connects to the configured store.
func Open(opts Options) (*Store, error) {
	switch opts.Driver {
	case DriverBadger, "":
		return openBadger(opts)
	case DriverSQLite:
		return openGorm(sqlite.Open(opts.DSN), opts.Logger)
	case DriverPostgres:
		return openGorm(postgres.Open(opts.DSN), opts.Logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

func openBadger(opts Options) (*Store, error) {
	var bopts badger.Options
	if opts.BadgerPath == "" || opts.BadgerPath == InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.BadgerPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		bopts = badger.DefaultOptions(opts.BadgerPath)
	}
	bopts = bopts.
		WithLogger(newBadgerLogger(opts.Logger)).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an open badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		badger:   db,
	}
}

func openGorm(dialector gorm.Dialector, log zerolog.Logger) (*Store, error) {
	level := logger.Warn
	if log.GetLevel() > zerolog.WarnLevel {
		level = logger.Silent
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore migrates the schema and wraps an open gorm connection.
func NewGormStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Post{}, &models.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		sql:      db,
	}, nil
}

func (s *Store) Close() error {
	if s.badger != nil {
		return s.badger.Close()
	}
	if s.sql != nil {
		sqlDB, err := s.sql.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Clear removes every post and comment.
func (s *Store) Clear() error {
	if s.badger != nil {
		return s.badger.DropAll()
	}
	if s.sql != nil {
		return s.sql.Transaction(func(tx *gorm.DB) error {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error
		})
	}
	return nil
}

// SupportsBackup reports whether Backup and Restore work on this store.
func (s *Store) SupportsBackup() bool {
	return s.badger != nil
}

// Backup writes a full backup of a badger store to w.
func (s *Store) Backup(w io.Writer) error {
	if !s.SupportsBackup() {
		return ErrUnsupported
	}
	_, err := s.badger.Backup(w, 0)
	return err
}

// Restore replaces the store contents with a backup produced by Backup. The
// backup is first loaded into a scratch database; the live store is only
// cleared once that succeeds, and its previous contents are reloaded if the
// final load still fails.
func (s *Store) Restore(r io.Reader) error {
	if !s.SupportsBackup() {
		return ErrUnsupported
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := verifyBackup(data); err != nil {
		return err
	}

	var previous bytes.Buffer
	if _, err := s.badger.Backup(&previous, 0); err != nil {
		return fmt.Errorf("failed to snapshot store: %w", err)
	}
	if err := s.badger.DropAll(); err != nil {
		return err
	}
	if err := loadBackup(s.badger, data); err != nil {
		if rerr := s.rollback(previous.Bytes()); rerr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rerr)
		}
		return err
	}
	return nil
}

func (s *Store) rollback(snapshot []byte) error {
	if err := s.badger.DropAll(); err != nil {
		return err
	}
	return loadBackup(s.badger, snapshot)
}

// verifyBackup checks the record framing, then loads data into a throwaway
// in-memory database.
func verifyBackup(data []byte) error {
	if err := checkFraming(data); err != nil {
		return err
	}

	scratch, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("failed to open scratch database: %w", err)
	}
	defer scratch.Close()

	return loadBackup(scratch, data)
}

// checkFraming walks the length-prefixed records of a badger backup so that a
// corrupt length is rejected before badger allocates a buffer for it.
func checkFraming(data []byte) error {
	for rest := data; len(rest) > 0; {
		if len(rest) < 8 {
			return fmt.Errorf("%w: truncated record header", ErrInvalidBackup)
		}
		sz := binary.LittleEndian.Uint64(rest[:8])
		rest = rest[8:]
		if sz > uint64(len(rest)) {
			return fmt.Errorf("%w: record of %d bytes exceeds remaining %d", ErrInvalidBackup, sz, len(rest))
		}
		rest = rest[sz:]
	}
	return nil
}

// loadBackup runs badger's Load, turning the panics it raises on malformed
// input into ErrInvalidBackup.
func loadBackup(db *badger.DB, data []byte) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidBackup, p)
		}
	}()
	if err := db.Load(bytes.NewReader(data), 256); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return nil
}
