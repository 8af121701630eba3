package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/kaamwala/kaamwala/assets"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	Customer() CustomerRepository
	Worker() WorkerRepository
	Job() JobRepository

	Close() error
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db           *sqlx.DB
	customerRepo CustomerRepository
	workerRepo   WorkerRepository
	jobRepo      JobRepository

	mu sync.Mutex
}

// New initializes a database connection pool and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	return &DatabaseImpl{db: db}, nil
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DatabaseImpl) Customer() CustomerRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.customerRepo == nil {
		d.customerRepo = NewCustomerRepository(d.db)
	}
	return d.customerRepo
}

func (d *DatabaseImpl) Worker() WorkerRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.workerRepo == nil {
		d.workerRepo = NewWorkerRepository(d.db)
	}
	return d.workerRepo
}

func (d *DatabaseImpl) Job() JobRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.jobRepo == nil {
		d.jobRepo = NewJobRepository(d.db)
	}
	return d.jobRepo
}
