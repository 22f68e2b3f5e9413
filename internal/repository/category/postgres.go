package category

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

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Term, error) {
	const q = `SELECT id, slug, name, COALESCE(parent_id, 0) FROM categories WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Term, error) {
	const q = `SELECT id, slug, name, COALESCE(parent_id, 0) FROM categories WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.Term, error) {
	var t domain.Term
	err := r.pool.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Slug, &t.Name, &t.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, t domain.Term) (*domain.Term, error) {
	const q = `
INSERT INTO categories (slug, name, parent_id)
VALUES ($1, $2, NULLIF($3, 0::bigint))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    parent_id = EXCLUDED.parent_id
RETURNING id
`
	out := t
	if err := r.pool.QueryRow(ctx, q, t.Slug, t.Name, t.ParentID).Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}
