package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/caching"
	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

const productCacheTTL = 5 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidatePositiveFloat(product.Price, "price", 10000000.0); err != nil {
		return err
	}
	if product.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}

	existing, err := s.productRepo.GetByName(ctx, product.Name)
	if err != nil {
		return fmt.Errorf("check product name: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("a product with this name already exists")
	}

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	return s.productRepo.Create(ctx, product)
}

// GetByID reads through the cache; (nil, nil) means no such product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	cached, cacheErr := s.cacheService.GetProduct(ctx, id)
	if cacheErr != nil {
		log.Printf("Failed to read product %s from cache: %v", id.String(), cacheErr)
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, productCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache product %s: %v", product.ID.String(), cacheErr)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.productRepo.List(ctx, limit, offset)
}
