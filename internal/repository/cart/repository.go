package cart

import (
	"context"

	"storefront-tagging/internal/domain"
)

type Repository interface {
	// GetByID loads a cart with its items. Returns domain.ErrNotFound
	// for unknown cart ids.
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
}
