package user

import (
	"context"

	"storefront-tagging/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
