package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/se-builders/crm-sync/internal/model"
)

// Pool is the subset of pgxpool.Pool used by the journal. pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool (used by tests).
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS activities (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	object_id  TEXT NOT NULL,
	detail     TEXT,
	source     TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_activities_kind ON activities(kind);
CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) RecordActivity(ctx context.Context, activity model.Activity) (*model.Activity, error) {
	activity.ID = uuid.New().String()
	activity.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO activities (id, kind, object_id, detail, source, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		activity.ID, string(activity.Kind), activity.ObjectID, activity.Detail, activity.Source, activity.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert activity")
	}
	return &activity, nil
}

func (s *PostgresStore) ListActivities(ctx context.Context, filter ActivityFilter) ([]model.Activity, error) {
	query := `SELECT id, kind, object_id, detail, source, created_at FROM activities`
	var args []any
	var where []string

	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		where = append(where, "kind = $1")
	}
	if filter.Source != "" {
		args = append(args, filter.Source)
		if len(args) == 1 {
			where = append(where, "source = $1")
		} else {
			where = append(where, "source = $2")
		}
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	switch len(args) {
	case 1:
		query += " LIMIT $1"
	case 2:
		query += " LIMIT $2"
	case 3:
		query += " LIMIT $3"
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list activities")
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		var detail, source sql.NullString
		if err := rows.Scan(&a.ID, &a.Kind, &a.ObjectID, &detail, &source, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan activity")
		}
		a.Detail = detail.String
		a.Source = source.String
		activities = append(activities, a)
	}
	return activities, eris.Wrap(rows.Err(), "postgres: iterate activities")
}

func (s *PostgresStore) CountByKind(ctx context.Context, since time.Time) (map[model.ActivityKind]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT kind, COUNT(*) FROM activities WHERE created_at >= $1 GROUP BY kind`,
		since.UTC(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count activities")
	}
	defer rows.Close()

	counts := make(map[model.ActivityKind]int)
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[model.ActivityKind(kind)] = int(n)
	}
	return counts, eris.Wrap(rows.Err(), "postgres: iterate counts")
}
