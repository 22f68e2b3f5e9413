package order

import (
	"context"

	"storefront-tagging/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.PurchaseLog, error)
	CartContents(ctx context.Context, logID int64) ([]domain.PurchasedItem, error)
	// CheckoutForm returns the checkout form fields keyed by field name.
	CheckoutForm(ctx context.Context, logID int64) (map[string]string, error)
	// GatewayData returns zero amounts when the gateway reported nothing.
	GatewayData(ctx context.Context, logID int64) (domain.GatewayData, error)
}
