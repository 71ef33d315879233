package product

import (
	"context"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// BatchGet loads every listed product in one read. Unknown ids are simply
	// absent from the result.
	BatchGet(ctx context.Context, ids []string) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	// Delete removes the product and cascade-removes it from every user's
	// cart and wishlist in the same transaction.
	Delete(ctx context.Context, id string) error

	IsNameUnique(ctx context.Context, name, excludeID string) (bool, error)
	IsSlugUnique(ctx context.Context, slug, excludeID string) (bool, error)
}
