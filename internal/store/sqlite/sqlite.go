package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/store"
)

// Timestamps are stored as integer unix nanoseconds so descending-time
// ordering is a plain integer sort.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cakes (
        cake_id    TEXT PRIMARY KEY,
        name       TEXT NOT NULL,
        comment    TEXT NOT NULL,
        image_url  TEXT NOT NULL,
        yum_factor INTEGER NOT NULL CHECK (yum_factor BETWEEN 1 AND 5),
        created_at INTEGER NOT NULL,
        updated_at INTEGER NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS cakes_name_ci ON cakes (lower(name))`,
}

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies the cakes DDL, including the case-insensitive unique
// index on name.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// NewWithDB constructs a SQLite-backed cake store.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Create(ctx context.Context, c *model.Cake) (*model.Cake, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO cakes (cake_id, name, comment, image_url, yum_factor, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)
    `, id, c.Name, c.Comment, c.ImageURL, c.YumFactor, now.UnixNano(), now.UnixNano())
	if err != nil {
		return nil, mapError(err)
	}
	out := *c
	out.ID = id
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (s *sqliteStore) GetByID(ctx context.Context, id string) (*model.Cake, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT cake_id, name, comment, image_url, yum_factor, created_at, updated_at
        FROM cakes WHERE cake_id=?
    `, id)
	return scanCake(row)
}

func (s *sqliteStore) GetByName(ctx context.Context, name string) (*model.Cake, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT cake_id, name, comment, image_url, yum_factor, created_at, updated_at
        FROM cakes WHERE lower(name)=lower(?)
    `, name)
	return scanCake(row)
}

func (s *sqliteStore) List(ctx context.Context) ([]*model.CakeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT cake_id, name, image_url
        FROM cakes ORDER BY created_at DESC, rowid DESC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.CakeSummary
	for rows.Next() {
		var cs model.CakeSummary
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, &cs)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Update(ctx context.Context, c *model.Cake) (*model.Cake, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
        UPDATE cakes SET name=?, comment=?, image_url=?, yum_factor=?, updated_at=?
        WHERE cake_id=?
    `, c.Name, c.Comment, c.ImageURL, c.YumFactor, now.UnixNano(), c.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return s.GetByID(ctx, c.ID)
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cakes WHERE cake_id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCake(row rowScanner) (*model.Cake, error) {
	var out model.Cake
	var created, updated int64
	if err := row.Scan(&out.ID, &out.Name, &out.Comment, &out.ImageURL, &out.YumFactor, &created, &updated); err != nil {
		return nil, mapError(err)
	}
	out.CreatedAt = time.Unix(0, created).UTC()
	out.UpdatedAt = time.Unix(0, updated).UTC()
	return &out, nil
}

// mapError translates driver errors into the store sentinels. The modernc
// driver reports constraint failures only through the error text.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return model.ErrDuplicateName
	}
	return err
}
