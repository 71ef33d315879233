package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/product"
	"github.com/hamrostore/hamrostore-api/internal/product/dto"
)

type memProductRepo struct {
	products map[string]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*model.Product)}
}

func (m *memProductRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *memProductRepo) BatchGet(_ context.Context, ids []string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) IsNameUnique(_ context.Context, name, excludeID string) (bool, error) {
	for _, p := range m.products {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return false, nil
		}
	}
	return true, nil
}

func (m *memProductRepo) IsSlugUnique(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range m.products {
		if p.ID != excludeID && p.Slug == slug {
			return false, nil
		}
	}
	return true, nil
}

func newUC(repo *memProductRepo) product.UseCase {
	return NewProductUseCase(repo, nil, nil, zap.NewNop())
}

func createInput(name string, price float64) *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Category: "Electronics",
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wireless Mouse":     "wireless-mouse",
		"  USB-C Cable 2m  ": "usb-c-cable-2m",
		"A + B / C":          "a-b-c",
		"Sale!!!":            "sale",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestCreateProduct(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	p, err := uc.CreateProduct(context.Background(), createInput("Wireless Mouse", 24.99))
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "wireless-mouse", p.Slug)
	assert.Equal(t, "electronics", p.Category, "category normalized")
	assert.Nil(t, p.Description, "empty description stored as NULL")
	assert.Contains(t, repo.products, p.ID)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := newUC(newMemProductRepo())

	in := createInput("Mouse", 10)
	in.Price = decimal.NewFromInt(-1)
	_, err := uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	in = createInput("Mouse", 10)
	in.DiscountPercentage = decimal.NewFromInt(101)
	_, err = uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidDiscount)

	in = createInput("Mouse", 10)
	in.StockQuantity = -5
	_, err = uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidStock)
}

func TestCreateProduct_NameTaken(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	_, err := uc.CreateProduct(context.Background(), createInput("Wireless Mouse", 24.99))
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), createInput("wireless mouse", 19.99))
	assert.ErrorIs(t, err, product.ErrNameTaken)
}

func TestCreateProduct_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	first, err := uc.CreateProduct(context.Background(), createInput("Coffee: Mug", 8))
	require.NoError(t, err)
	require.Equal(t, "coffee-mug", first.Slug)

	// Different name, same slug once normalized.
	second, err := uc.CreateProduct(context.Background(), createInput("Coffee Mug!", 9))
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "coffee-mug-"), "slug = %s", second.Slug)
}

func TestUpdateProduct(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	p, err := uc.CreateProduct(context.Background(), createInput("Wireless Mouse", 24.99))
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:            p.ID,
		Name:          "Wireless Trackball",
		Price:         decimal.NewFromFloat(34.99),
		Category:      "electronics",
		StockQuantity: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, "Wireless Trackball", updated.Name)
	assert.Equal(t, "wireless-trackball", updated.Slug, "slug follows the renamed product")
	assert.Equal(t, 12, updated.StockQuantity)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(34.99)))
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc := newUC(newMemProductRepo())

	_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:    "missing",
		Name:  "Anything",
		Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestUpdateProduct_NameTaken(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	_, err := uc.CreateProduct(context.Background(), createInput("Keyboard", 50))
	require.NoError(t, err)
	p, err := uc.CreateProduct(context.Background(), createInput("Mouse", 20))
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:    p.ID,
		Name:  "Keyboard",
		Price: decimal.NewFromInt(20),
	})
	assert.ErrorIs(t, err, product.ErrNameTaken)
}

func TestDeleteProduct(t *testing.T) {
	repo := newMemProductRepo()
	uc := newUC(repo)

	p, err := uc.CreateProduct(context.Background(), createInput("Mouse", 20))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	assert.NotContains(t, repo.products, p.ID)

	assert.ErrorIs(t, uc.DeleteProduct(context.Background(), p.ID), product.ErrNotFound)
}
