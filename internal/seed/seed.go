package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Slug   string
	Name   string
	Parent string
}

type productSeed struct {
	Slug         string
	Name         string
	Parent       string
	Permalink    string
	ImageURL     string
	Description  string
	InStock      bool
	HasVariants  bool
	Price        float64
	SpecialPrice float64
	Categories   []string
}

// Apply inserts a small demo catalog plus one cart and one finalized
// order for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Slug: "apparel", Name: "Apparel"},
		{Slug: "shirts", Name: "Shirts", Parent: "apparel"},
		{Slug: "accessories", Name: "Accessories"},
		{Slug: "bags", Name: "Bags", Parent: "accessories"},
	}
	categoryIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c, categoryIDs)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
	}

	products := []productSeed{
		{
			Slug:        "demo-shirt",
			Name:        "Demo T-Shirt",
			Permalink:   "https://shop.example/products/demo-shirt",
			ImageURL:    "https://shop.example/images/demo-shirt.jpg",
			Description: "Soft cotton tee for demo purposes",
			InStock:     true,
			HasVariants: true,
			Price:       19.99,
			Categories:  []string{"shirts"},
		},
		{Slug: "demo-shirt-s", Name: "Demo T-Shirt (S)", Parent: "demo-shirt", InStock: true, Price: 19.99},
		{Slug: "demo-shirt-m", Name: "Demo T-Shirt (M)", Parent: "demo-shirt", InStock: true, Price: 21.99, SpecialPrice: 17.99},
		{
			Slug:         "demo-tote",
			Name:         "Demo Canvas Tote",
			Permalink:    "https://shop.example/products/demo-tote",
			ImageURL:     "https://shop.example/images/demo-tote.jpg",
			Description:  "Canvas tote with demo logo",
			InStock:      true,
			Price:        24.90,
			SpecialPrice: 19.90,
			Categories:   []string{"bags"},
		},
		{
			Slug:        "demo-mug",
			Name:        "Demo Mug",
			Permalink:   "https://shop.example/products/demo-mug",
			ImageURL:    "https://shop.example/images/demo-mug.jpg",
			Description: "Ceramic mug with demo logo",
			Price:       12.99,
			Categories:  []string{"accessories"},
		},
	}
	productIDs := make(map[string]int64, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, p, productIDs)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
		productIDs[p.Slug] = id
		for _, slug := range p.Categories {
			if err := linkCategory(ctx, pool, id, categoryIDs[slug]); err != nil {
				return fmt.Errorf("link product %s to %s: %w", p.Slug, slug, err)
			}
		}
	}

	if err := ensureUser(ctx, pool); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	if err := ensureCart(ctx, pool, productIDs); err != nil {
		return fmt.Errorf("ensure cart: %w", err)
	}
	if err := ensureOrder(ctx, pool, productIDs); err != nil {
		return fmt.Errorf("ensure order: %w", err)
	}
	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed, ids map[string]int64) (int64, error) {
	const q = `
INSERT INTO categories (slug, name, parent_id)
VALUES ($1, $2, NULLIF($3, 0::bigint))
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, c.Slug, c.Name, ids[c.Parent]).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed, ids map[string]int64) (int64, error) {
	const q = `
INSERT INTO products (parent_id, slug, name, permalink, image_url, description, in_stock, has_variations, price, special_price)
VALUES (NULLIF($1, 0::bigint), $2, $3, $4, $5, $6, $7, $8, $9, $10)
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
RETURNING id
`
	var id int64
	err := pool.QueryRow(ctx, q,
		ids[p.Parent], p.Slug, p.Name, p.Permalink, p.ImageURL, p.Description,
		p.InStock, p.HasVariants, p.Price, p.SpecialPrice,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func linkCategory(ctx context.Context, pool *pgxpool.Pool, productID, categoryID int64) error {
	const q = `
INSERT INTO product_categories (product_id, category_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	_, err := pool.Exec(ctx, q, productID, categoryID)
	return err
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
INSERT INTO users (login, first_name, last_name, email)
VALUES ('demo', 'Demo', 'Shopper', 'demo@shop.example')
ON CONFLICT (login) DO NOTHING
`
	_, err := pool.Exec(ctx, q)
	return err
}

// demoCartID is fixed so repeated seeding does not pile up carts.
const demoCartID = "00000000-0000-0000-0000-000000000001"

func ensureCart(ctx context.Context, pool *pgxpool.Pool, products map[string]int64) error {
	if _, err := pool.Exec(ctx, `INSERT INTO carts (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, demoCartID); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, demoCartID); err != nil {
		return err
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, name, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)
`
	if _, err := pool.Exec(ctx, q, demoCartID, products["demo-shirt-m"], "Demo T-Shirt (M)", 2, 17.99); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, q, demoCartID, products["demo-mug"], "Demo Mug", 1, 12.99)
	return err
}

func ensureOrder(ctx context.Context, pool *pgxpool.Pool, products map[string]int64) error {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM purchase_logs)`).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	var logID int64
	if err := pool.QueryRow(ctx, `INSERT INTO purchase_logs DEFAULT VALUES RETURNING id`).Scan(&logID); err != nil {
		return err
	}
	const itemQ = `
INSERT INTO purchase_log_items (log_id, product_id, name, quantity, price)
VALUES ($1, $2, $3, $4, $5)
`
	if _, err := pool.Exec(ctx, itemQ, logID, products["demo-tote"], "Demo Canvas Tote", 1, 19.90); err != nil {
		return err
	}
	const formQ = `
INSERT INTO checkout_form (log_id, key, value)
VALUES ($1, 'billingfirstname', 'Demo'), ($1, 'billinglastname', 'Shopper'), ($1, 'billingemail', 'demo@shop.example')
`
	if _, err := pool.Exec(ctx, formQ, logID); err != nil {
		return err
	}
	const gatewayQ = `
INSERT INTO gateway_data (log_id, tax, shipping, discount)
VALUES ($1, 1.59, 4.95, 0)
`
	_, err := pool.Exec(ctx, gatewayQ, logID)
	return err
}
