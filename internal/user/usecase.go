package user

import (
	"context"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input *dto.LoginInput) (string, *model.User, error)
	// EnsureAdmin creates the administrative account if it does not exist yet.
	EnsureAdmin(ctx context.Context, username, email, password string) error

	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id string) error

	GetCart(ctx context.Context, userID string) ([]dto.CartItem, error)
	AddCartItem(ctx context.Context, userID, productID string, quantity int) error
	// UpdateCartItem sets the quantity; zero or less removes the entry.
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID string) error

	// ToggleWishlist adds the product if absent, removes it if present, and
	// reports whether it is on the wishlist afterwards.
	ToggleWishlist(ctx context.Context, userID, productID string) (bool, error)
	GetWishlist(ctx context.Context, userID string) ([]model.Product, error)
}
