package product

import (
	"context"

	"storefront-tagging/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// Parent resolves the parent product of a variant row. Returns
	// domain.ErrNotFound for top-level products.
	Parent(ctx context.Context, productID int64) (*domain.Product, error)
	CategoriesOf(ctx context.Context, productID int64) ([]domain.Term, error)
	VariationPrices(ctx context.Context, parentID int64) ([]domain.VariationPrice, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
