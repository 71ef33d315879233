package user

import (
	"context"

	"github.com/hamrostore/hamrostore-api/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	// Delete removes the user; cart and wishlist rows go with it.
	Delete(ctx context.Context, id string) error

	GetCart(ctx context.Context, userID string) ([]model.CartEntry, error)
	UpsertCartEntry(ctx context.Context, entry *model.CartEntry) error
	RemoveCartEntry(ctx context.Context, userID, productID string) error

	GetWishlist(ctx context.Context, userID string) ([]model.WishlistEntry, error)
	HasWishlistEntry(ctx context.Context, userID, productID string) (bool, error)
	AddWishlistEntry(ctx context.Context, entry *model.WishlistEntry) error
	RemoveWishlistEntry(ctx context.Context, userID, productID string) error
}
