package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var _ entity.PreferenceStore = (*PreferenceRepository)(nil)

type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

type preferenceQueries struct {
	create string
	get    string
	upsert string
}

var queriesByDialect = map[Dialect]preferenceQueries{
	DialectPostgres: {
		create: `CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		get: `SELECT value FROM preferences WHERE key = $1`,
		upsert: `INSERT INTO preferences (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
	},
	DialectSQLite: {
		create: `CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		get: `SELECT value FROM preferences WHERE key = ?`,
		upsert: `INSERT INTO preferences (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key)
			DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	},
}

// PreferenceRepository é o key-value das preferências numa tabela SQL.
type PreferenceRepository struct {
	DB *sql.DB
	q  preferenceQueries
}

// NewPreferenceRepository garante que a tabela existe.
func NewPreferenceRepository(ctx context.Context, db *sql.DB, dialect Dialect) (*PreferenceRepository, error) {
	q, ok := queriesByDialect[dialect]
	if !ok {
		return nil, fmt.Errorf("dialeto desconhecido: %d", dialect)
	}
	if _, err := db.ExecContext(ctx, q.create); err != nil {
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &PreferenceRepository{DB: db, q: q}, nil
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select preference %s: %w", key, err)
	}
	return value, true, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.DB.ExecContext(ctx, r.q.upsert, key, value); err != nil {
		return fmt.Errorf("upsert preference %s: %w", key, err)
	}
	return nil
}
