package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront-tagging/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.PurchaseLog, error) {
	const q = `SELECT id, created_at FROM purchase_logs WHERE id = $1`
	var pl domain.PurchaseLog
	err := r.pool.QueryRow(ctx, q, id).Scan(&pl.ID, &pl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &pl, nil
}

func (r *postgresRepo) CartContents(ctx context.Context, logID int64) ([]domain.PurchasedItem, error) {
	const q = `
SELECT product_id, name, quantity, price
FROM purchase_log_items
WHERE log_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, logID)
	if err != nil {
		r.logger.Printf("order repo: cart contents log_id=%d error=%v", logID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.PurchasedItem
	for rows.Next() {
		var item domain.PurchasedItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *postgresRepo) CheckoutForm(ctx context.Context, logID int64) (map[string]string, error) {
	const q = `SELECT key, value FROM checkout_form WHERE log_id = $1`
	rows, err := r.pool.Query(ctx, q, logID)
	if err != nil {
		r.logger.Printf("order repo: checkout form log_id=%d error=%v", logID, err)
		return nil, err
	}
	defer rows.Close()

	form := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		form[key] = value
	}
	return form, rows.Err()
}

func (r *postgresRepo) GatewayData(ctx context.Context, logID int64) (domain.GatewayData, error) {
	const q = `SELECT tax, shipping, discount FROM gateway_data WHERE log_id = $1`
	var gd domain.GatewayData
	err := r.pool.QueryRow(ctx, q, logID).Scan(&gd.Tax, &gd.Shipping, &gd.Discount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GatewayData{}, nil
		}
		r.logger.Printf("order repo: gateway data log_id=%d error=%v", logID, err)
		return domain.GatewayData{}, err
	}
	return gd, nil
}
