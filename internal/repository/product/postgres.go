package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront-tagging/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, COALESCE(parent_id, 0), slug, name, permalink, image_url, description, published_at, in_stock, has_variations, price, special_price`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) Parent(ctx context.Context, productID int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = (SELECT parent_id FROM products WHERE id = $1)
`
	return r.getOne(ctx, q, productID)
}

func (r *postgresRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.ParentID, &p.Slug, &p.Name, &p.Permalink, &p.ImageURL,
		&p.Description, &p.PublishedAt, &p.InStock, &p.HasVariations,
		&p.Price, &p.SpecialPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get arg=%v error=%v", arg, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) CategoriesOf(ctx context.Context, productID int64) ([]domain.Term, error) {
	const q = `
SELECT c.id, c.slug, c.name, COALESCE(c.parent_id, 0)
FROM categories c
JOIN product_categories pc ON pc.category_id = c.id
WHERE pc.product_id = $1
ORDER BY c.id
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("product repo: categories product_id=%d error=%v", productID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Term
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.ParentID); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) VariationPrices(ctx context.Context, parentID int64) ([]domain.VariationPrice, error) {
	const q = `SELECT price, special_price FROM products WHERE parent_id = $1`
	rows, err := r.pool.Query(ctx, q, parentID)
	if err != nil {
		r.logger.Printf("product repo: variation prices parent_id=%d error=%v", parentID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.VariationPrice
	for rows.Next() {
		var v domain.VariationPrice
		if err := rows.Scan(&v.Price, &v.SpecialPrice); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (parent_id, slug, name, permalink, image_url, description, published_at, in_stock, has_variations, price, special_price)
VALUES (NULLIF($1, 0::bigint), $2, $3, $4, $5, $6, COALESCE($7, now()), $8, $9, $10, $11)
ON CONFLICT (slug) DO UPDATE SET
    parent_id = EXCLUDED.parent_id,
    name = EXCLUDED.name,
    permalink = EXCLUDED.permalink,
    image_url = EXCLUDED.image_url,
    description = EXCLUDED.description,
    in_stock = EXCLUDED.in_stock,
    has_variations = EXCLUDED.has_variations,
    price = EXCLUDED.price,
    special_price = EXCLUDED.special_price
RETURNING id, published_at
`
	out := p
	var publishedAt interface{}
	if !p.PublishedAt.IsZero() {
		publishedAt = p.PublishedAt
	}
	err := r.pool.QueryRow(ctx, q,
		p.ParentID, p.Slug, p.Name, p.Permalink, p.ImageURL, p.Description,
		publishedAt, p.InStock, p.HasVariations, p.Price, p.SpecialPrice,
	).Scan(&out.ID, &out.PublishedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%d", out.Slug, out.ID)
	return &out, nil
}
