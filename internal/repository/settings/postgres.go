package settings

import (
	"context"
	"errors"

	"storefront-tagging/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM settings WHERE key = $1`
	var value string
	err := r.pool.QueryRow(ctx, q, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *postgresRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO settings (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`
	_, err := r.pool.Exec(ctx, q, key, value)
	return err
}

func (r *postgresRepo) EnsureDefaults(ctx context.Context) error {
	const q = `INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
	defaults := []struct{ key, value string }{
		{KeyServerAddress, DefaultServerAddress},
		{KeyAccountID, ""},
		{KeyUseDefaultElements, "1"},
		{KeyCurrencyType, "1"},
	}
	for _, d := range defaults {
		if _, err := r.pool.Exec(ctx, q, d.key, d.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepo) CurrencyCode(ctx context.Context) (string, error) {
	const q = `
SELECT c.code
FROM currencies c
JOIN settings s ON s.key = $1 AND s.value ~ '^[0-9]+$' AND c.id = s.value::bigint
`
	var code string
	err := r.pool.QueryRow(ctx, q, KeyCurrencyType).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}
