package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/product"
	"github.com/hamrostore/hamrostore-api/internal/user"
	"github.com/hamrostore/hamrostore-api/internal/user/dto"
)

type memUserRepo struct {
	users    map[string]*model.User
	carts    map[string]map[string]*model.CartEntry
	wishlist map[string][]model.WishlistEntry
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:    make(map[string]*model.User),
		carts:    make(map[string]map[string]*model.CartEntry),
		wishlist: make(map[string][]model.WishlistEntry),
	}
}

func (m *memUserRepo) Create(_ context.Context, u *model.User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	delete(m.carts, id)
	delete(m.wishlist, id)
	return nil
}

func (m *memUserRepo) GetCart(_ context.Context, userID string) ([]model.CartEntry, error) {
	out := make([]model.CartEntry, 0, len(m.carts[userID]))
	for _, e := range m.carts[userID] {
		out = append(out, *e)
	}
	return out, nil
}

func (m *memUserRepo) UpsertCartEntry(_ context.Context, entry *model.CartEntry) error {
	if m.carts[entry.UserID] == nil {
		m.carts[entry.UserID] = make(map[string]*model.CartEntry)
	}
	cp := *entry
	m.carts[entry.UserID][entry.ProductID] = &cp
	return nil
}

func (m *memUserRepo) RemoveCartEntry(_ context.Context, userID, productID string) error {
	delete(m.carts[userID], productID)
	return nil
}

func (m *memUserRepo) GetWishlist(_ context.Context, userID string) ([]model.WishlistEntry, error) {
	return m.wishlist[userID], nil
}

func (m *memUserRepo) HasWishlistEntry(_ context.Context, userID, productID string) (bool, error) {
	for _, e := range m.wishlist[userID] {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) AddWishlistEntry(_ context.Context, entry *model.WishlistEntry) error {
	m.wishlist[entry.UserID] = append(m.wishlist[entry.UserID], *entry)
	return nil
}

func (m *memUserRepo) RemoveWishlistEntry(_ context.Context, userID, productID string) error {
	kept := m.wishlist[userID][:0]
	for _, e := range m.wishlist[userID] {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	m.wishlist[userID] = kept
	return nil
}

type stubProductRepo struct {
	product.Repository
	products map[string]*model.Product
}

func (s *stubProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) BatchGet(_ context.Context, ids []string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type userFixture struct {
	uc       user.UseCase
	repo     *memUserRepo
	products *stubProductRepo
}

func newUserFixture() *userFixture {
	repo := newMemUserRepo()
	products := &stubProductRepo{products: make(map[string]*model.Product)}
	jwt := auth.NewJWTManager(auth.JWTConfig{
		SecretKey: "test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "hamrostore-test",
	})
	return &userFixture{
		uc:       NewUserUseCase(repo, products, auth.NewPasswordHasher(), jwt, zap.NewNop()),
		repo:     repo,
		products: products,
	}
}

func (f *userFixture) addProduct(id, name string, price float64, stock int) {
	f.products.products[id] = &model.Product{
		BaseModel:     model.BaseModel{ID: id},
		Name:          name,
		Slug:          name,
		Price:         decimal.NewFromFloat(price),
		StockQuantity: stock,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newUserFixture()

	u, err := f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram",
		Email:    "ram@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "correct-horse", u.PasswordHash, "password stored hashed")

	token, logged, err := f.uc.Login(context.Background(), &dto.LoginInput{
		Email:    "ram@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, logged.ID)

	_, _, err = f.uc.Login(context.Background(), &dto.LoginInput{
		Email:    "ram@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram", Email: "not-an-email", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram", Email: "ram@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, user.ErrWeakPassword)
}

func TestRegister_Uniqueness(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram", Email: "ram@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram", Email: "other@example.com", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	_, err = f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "shyam", Email: "ram@example.com", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	f := newUserFixture()

	require.NoError(t, f.uc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "super-secret"))
	require.NoError(t, f.uc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "super-secret"))

	assert.Len(t, f.repo.users, 1)
	admin, err := f.repo.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestAddCartItem(t *testing.T) {
	f := newUserFixture()
	f.addProduct("P1", "widget", 10, 5)

	require.NoError(t, f.uc.AddCartItem(context.Background(), "u1", "P1", 2))

	items, err := f.uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "widget", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestAddCartItem_Rejections(t *testing.T) {
	f := newUserFixture()
	f.addProduct("P1", "widget", 10, 5)

	assert.ErrorIs(t, f.uc.AddCartItem(context.Background(), "u1", "P1", 0), user.ErrInvalidQuantity)
	assert.ErrorIs(t, f.uc.AddCartItem(context.Background(), "u1", "missing", 1), user.ErrProductNotFound)
	assert.ErrorIs(t, f.uc.AddCartItem(context.Background(), "u1", "P1", 6), user.ErrQuantityExceeds)
}

func TestUpdateCartItem_ReplacesQuantity(t *testing.T) {
	f := newUserFixture()
	f.addProduct("P1", "widget", 10, 5)

	require.NoError(t, f.uc.AddCartItem(context.Background(), "u1", "P1", 2))
	require.NoError(t, f.uc.UpdateCartItem(context.Background(), "u1", "P1", 4))

	items, err := f.uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity, "upsert replaces, not adds")
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	f := newUserFixture()
	f.addProduct("P1", "widget", 10, 5)

	require.NoError(t, f.uc.AddCartItem(context.Background(), "u1", "P1", 2))
	require.NoError(t, f.uc.UpdateCartItem(context.Background(), "u1", "P1", 0))

	items, err := f.uc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleWishlist(t *testing.T) {
	f := newUserFixture()
	f.addProduct("P1", "widget", 10, 5)

	added, err := f.uc.ToggleWishlist(context.Background(), "u1", "P1")
	require.NoError(t, err)
	assert.True(t, added)

	wl, err := f.uc.GetWishlist(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, wl, 1)
	assert.Equal(t, "P1", wl[0].ID)

	added, err = f.uc.ToggleWishlist(context.Background(), "u1", "P1")
	require.NoError(t, err)
	assert.False(t, added, "second toggle removes")

	wl, err = f.uc.GetWishlist(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, wl)
}

func TestToggleWishlist_UnknownProduct(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.ToggleWishlist(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, user.ErrProductNotFound)
}

func TestDeleteUser(t *testing.T) {
	f := newUserFixture()

	u, err := f.uc.Register(context.Background(), &dto.RegisterInput{
		Username: "ram", Email: "ram@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteUser(context.Background(), u.ID))
	assert.ErrorIs(t, f.uc.DeleteUser(context.Background(), u.ID), user.ErrNotFound)
}
