package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/internal/model"
	"github.com/hamrostore/hamrostore-api/internal/pkg/cache"
	"github.com/hamrostore/hamrostore-api/internal/pkg/search"
	"github.com/hamrostore/hamrostore-api/internal/product"
	"github.com/hamrostore/hamrostore-api/internal/product/dto"
)

const searchIndex = "products"

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

// Slugify turns a product name into its URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func validate(price, discount decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return product.ErrInvalidPrice
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return product.ErrInvalidDiscount
	}
	if stock < 0 {
		return product.ErrInvalidStock
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validate(input.Price, input.DiscountPercentage, input.StockQuantity); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsNameUnique(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrNameTaken
	}

	slug := Slugify(input.Name)
	slugFree, err := uc.repo.IsSlugUnique(ctx, slug, "")
	if err != nil {
		return nil, err
	}
	if !slugFree {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
	}

	now := time.Now()
	description := &input.Description
	if input.Description == "" {
		description = nil
	}
	imageURL := &input.ImageURL
	if input.ImageURL == "" {
		imageURL = nil
	}

	p := &model.Product{
		BaseModel:          model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:               input.Name,
		Slug:               slug,
		Description:        description,
		Price:              input.Price,
		Category:           strings.ToLower(strings.TrimSpace(input.Category)),
		ImageURL:           imageURL,
		DiscountPercentage: input.DiscountPercentage,
		StockQuantity:      input.StockQuantity,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return uc.repo.FindBySlug(ctx, slug)
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "category", "description"},
			},
		},
	}
	if filters.Category != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{
				"category": strings.ToLower(filters.Category),
			},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
		q["from"] = (filters.Page - 1) * filters.PageSize
	}

	res, err := uc.es.Search(ctx, searchIndex, q)
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validate(input.Price, input.DiscountPercentage, input.StockQuantity); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}

	if !strings.EqualFold(p.Name, input.Name) {
		unique, err := uc.repo.IsNameUnique(ctx, input.Name, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrNameTaken
		}

		slug := Slugify(input.Name)
		slugFree, err := uc.repo.IsSlugUnique(ctx, slug, p.ID)
		if err != nil {
			return nil, err
		}
		if !slugFree {
			slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
		}
		p.Slug = slug
	}

	p.Name = input.Name
	if input.Description != "" {
		desc := input.Description
		p.Description = &desc
	} else {
		p.Description = nil
	}
	p.Price = input.Price
	p.Category = strings.ToLower(strings.TrimSpace(input.Category))
	if input.ImageURL != "" {
		img := input.ImageURL
		p.ImageURL = &img
	} else {
		p.ImageURL = nil
	}
	p.DiscountPercentage = input.DiscountPercentage
	p.StockQuantity = input.StockQuantity
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return product.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), searchIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"slug": { "type": "keyword" },
				"description": { "type": "text" },
				"category": { "type": "keyword" },
				"price": { "type": "double" },
				"stock_quantity": { "type": "integer" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, searchIndex, mapping)

	if err := uc.es.Index(ctx, searchIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
