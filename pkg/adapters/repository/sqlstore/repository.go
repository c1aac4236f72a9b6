package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"                                // Postgres driver
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
)

// Dialect names the database/sql driver backing a Repository.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectLibSQL   Dialect = "libsql"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the driver from the shape of the connection string.
func DialectFor(dbURL string) Dialect {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return DialectPostgres
	case strings.Contains(dbURL, "libsql://"), strings.Contains(dbURL, "wss://"):
		return DialectLibSQL
	default:
		return DialectSQLite
	}
}

type Repository struct {
	db      *sqlx.DB
	dialect Dialect
}

// NewRepository opens the database and applies pending migrations.
func NewRepository(ctx context.Context, dbURL string) (*Repository, error) {
	repo, err := Open(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	if _, err := Migrate(dbURL); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// Open connects without touching the schema.
func Open(ctx context.Context, dbURL string) (*Repository, error) {
	dialect := DialectFor(dbURL)

	db, err := sqlx.Open(string(dialect), dbURL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// One writer at a time; also keeps shared-cache memory databases alive.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return &Repository{db: db, dialect: dialect}, nil
}

func (r *Repository) Dialect() Dialect {
	return r.dialect
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, link *domain.Link) error {
	query := r.db.Rebind(`INSERT INTO urls (short_id, original_url, created_at, clicks)
			  VALUES (?, ?, ?, 0) RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query, link.ShortID, link.OriginalURL, link.CreatedAt).Scan(&link.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrShortIDTaken
		}
		return fmt.Errorf("insert link %s: %w", link.ShortID, err)
	}
	link.Clicks = 0
	return nil
}

// Resolve bumps the click counter and appends the click event as one unit,
// so clicks always matches the number of rows in the clicks table.
func (r *Repository) Resolve(ctx context.Context, shortID string, clickedAt time.Time) (string, error) {
	var originalURL string

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		bump := tx.Rebind(`UPDATE urls SET clicks = clicks + 1 WHERE short_id = ? RETURNING original_url`)
		err := tx.QueryRowxContext(ctx, bump, shortID).Scan(&originalURL)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("increment clicks for %s: %w", shortID, err)
		}

		record := tx.Rebind(`INSERT INTO clicks (short_id, clicked_at) VALUES (?, ?)`)
		if _, err := tx.ExecContext(ctx, record, shortID, clickedAt); err != nil {
			return fmt.Errorf("record click for %s: %w", shortID, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return originalURL, nil
}

func (r *Repository) Exists(ctx context.Context, shortID string) (bool, error) {
	var exists bool
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM urls WHERE short_id = ?)`)
	if err := r.db.QueryRowxContext(ctx, query, shortID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check short id %s: %w", shortID, err)
	}
	return exists, nil
}

func (r *Repository) GetByShortID(ctx context.Context, shortID string) (*domain.Link, error) {
	query := r.db.Rebind(`SELECT id, short_id, original_url, created_at, clicks
			  FROM urls WHERE short_id = ?`)

	var link domain.Link
	err := r.db.GetContext(ctx, &link, query, shortID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get link %s: %w", shortID, err)
	}
	return &link, nil
}

func (r *Repository) CountClicks(ctx context.Context, shortID string) (int64, error) {
	var count int64
	query := r.db.Rebind(`SELECT COUNT(*) FROM clicks WHERE short_id = ?`)
	if err := r.db.GetContext(ctx, &count, query, shortID); err != nil {
		return 0, fmt.Errorf("count clicks for %s: %w", shortID, err)
	}
	return count, nil
}

func (r *Repository) Dump(ctx context.Context) ([]domain.Link, error) {
	links := []domain.Link{}
	query := `SELECT id, short_id, original_url, created_at, clicks FROM urls ORDER BY id`
	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("dump links: %w", err)
	}
	return links, nil
}

// withTx runs fn inside a transaction. The deferred rollback releases the
// connection on every path; after a successful commit it is a no-op.
func (r *Repository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
