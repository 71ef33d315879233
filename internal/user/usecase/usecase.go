package usecase

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/product"
	"github.com/hamrostore/hamrostore-api/internal/user"
	"github.com/hamrostore/hamrostore-api/internal/user/dto"
)

type userUseCase struct {
	repo     user.Repository
	products product.Repository
	hasher   *auth.PasswordHasher
	jwt      *auth.JWTManager
	logger   *zap.Logger
}

func NewUserUseCase(repo user.Repository, products product.Repository, hasher *auth.PasswordHasher, jwt *auth.JWTManager, log *zap.Logger) user.UseCase {
	return &userUseCase{
		repo:     repo,
		products: products,
		hasher:   hasher,
		jwt:      jwt,
		logger:   log,
	}
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, user.ErrInvalidEmail
	}
	if len(input.Password) < 8 {
		return nil, user.ErrWeakPassword
	}

	if existing, err := uc.repo.FindByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, user.ErrUsernameTaken
	}
	if existing, err := uc.repo.FindByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (string, *model.User, error) {
	u, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !uc.hasher.Verify(input.Password, u.PasswordHash) {
		return "", nil, user.ErrInvalidCredentials
	}

	token, err := uc.jwt.Generate(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (uc *userUseCase) EnsureAdmin(ctx context.Context, username, email, password string) error {
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, admin); err != nil {
		return err
	}
	uc.logger.Info("bootstrapped admin account", zap.String("email", email))
	return nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *userUseCase) GetCart(ctx context.Context, userID string) ([]dto.CartItem, error) {
	entries, err := uc.repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []dto.CartItem{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := uc.products.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]dto.CartItem, 0, len(entries))
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			// A product deleted between cascade and read; skip rather than
			// surface a phantom row.
			continue
		}
		items = append(items, dto.CartItem{
			ProductID:          p.ID,
			Quantity:           e.Quantity,
			Name:               p.Name,
			Slug:               p.Slug,
			ImageURL:           p.ImageURL,
			Price:              p.Price,
			DiscountPercentage: p.DiscountPercentage,
			StockQuantity:      p.StockQuantity,
		})
	}
	return items, nil
}

func (uc *userUseCase) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return user.ErrInvalidQuantity
	}

	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return user.ErrProductNotFound
	}
	if !p.InStock(quantity) {
		return user.ErrQuantityExceeds
	}

	return uc.repo.UpsertCartEntry(ctx, &model.CartEntry{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (uc *userUseCase) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return uc.repo.RemoveCartEntry(ctx, userID, productID)
	}
	return uc.AddCartItem(ctx, userID, productID, quantity)
}

func (uc *userUseCase) RemoveCartItem(ctx context.Context, userID, productID string) error {
	return uc.repo.RemoveCartEntry(ctx, userID, productID)
}

func (uc *userUseCase) ToggleWishlist(ctx context.Context, userID, productID string) (bool, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, user.ErrProductNotFound
	}

	present, err := uc.repo.HasWishlistEntry(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if present {
		return false, uc.repo.RemoveWishlistEntry(ctx, userID, productID)
	}
	return true, uc.repo.AddWishlistEntry(ctx, &model.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	})
}

func (uc *userUseCase) GetWishlist(ctx context.Context, userID string) ([]model.Product, error) {
	entries, err := uc.repo.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []model.Product{}, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := uc.products.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve wishlist insertion order.
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		if p, ok := byID[e.ProductID]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
