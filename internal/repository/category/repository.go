package category

import (
	"context"

	"storefront-tagging/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Term, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Term, error)
	Upsert(ctx context.Context, t domain.Term) (*domain.Term, error)
}
