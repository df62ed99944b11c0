package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies the cakes DDL. All statements are idempotent, so it is
// safe to run on every startup. The lower(name) unique index is the
// authoritative uniqueness guard behind the service-level pre-check.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStore) Create(ctx context.Context, c *model.Cake) (*model.Cake, error) {
	id := uuid.New().String()
	var created, updated time.Time
	row := s.db.QueryRowContext(ctx, `
        INSERT INTO cakes (cake_id, name, comment, image_url, yum_factor)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at
    `, id, c.Name, c.Comment, c.ImageURL, c.YumFactor)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, mapError(err)
	}
	out := *c
	out.ID = id
	out.CreatedAt = created
	out.UpdatedAt = updated
	return &out, nil
}

func (s *pgStore) GetByID(ctx context.Context, id string) (*model.Cake, error) {
	var out model.Cake
	row := s.db.QueryRowContext(ctx, `
        SELECT cake_id, name, comment, image_url, yum_factor, created_at, updated_at
        FROM cakes WHERE cake_id=$1
    `, id)
	if err := row.Scan(&out.ID, &out.Name, &out.Comment, &out.ImageURL, &out.YumFactor, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (s *pgStore) GetByName(ctx context.Context, name string) (*model.Cake, error) {
	var out model.Cake
	row := s.db.QueryRowContext(ctx, `
        SELECT cake_id, name, comment, image_url, yum_factor, created_at, updated_at
        FROM cakes WHERE lower(name)=lower($1)
    `, name)
	if err := row.Scan(&out.ID, &out.Name, &out.Comment, &out.ImageURL, &out.YumFactor, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

func (s *pgStore) List(ctx context.Context) ([]*model.CakeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT cake_id, name, image_url
        FROM cakes ORDER BY created_at DESC, cake_id
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

func (s *pgStore) Update(ctx context.Context, c *model.Cake) (*model.Cake, error) {
	var created, updated time.Time
	row := s.db.QueryRowContext(ctx, `
        UPDATE cakes SET name=$1, comment=$2, image_url=$3, yum_factor=$4, updated_at=now()
        WHERE cake_id=$5
        RETURNING created_at, updated_at
    `, c.Name, c.Comment, c.ImageURL, c.YumFactor, c.ID)
	if err := row.Scan(&created, &updated); err != nil {
		return nil, mapError(err)
	}
	out := *c
	out.CreatedAt = created
	out.UpdatedAt = updated
	return &out, nil
}

func (s *pgStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cakes WHERE cake_id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// mapError translates driver errors into the store sentinels. SQLSTATE 23505
// is the unique index firing, which the service treats as an authoritative
// Conflict even when its pre-check passed.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return model.ErrDuplicateName
	}
	return err
}
