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

const customerCacheTTL = 5 * time.Minute

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	cacheService caching.CacheService
}

func NewCustomerService(customerRepo repositories.CustomerRepository, cacheService caching.CacheService) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		cacheService: cacheService,
	}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := common.ValidateRequiredString(customer.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(customer.Email, "email"); err != nil {
		return err
	}

	existing, err := s.customerRepo.GetByEmail(ctx, customer.Email)
	if err != nil {
		return fmt.Errorf("check customer email: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("a customer with this email already exists")
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	return s.customerRepo.Create(ctx, customer)
}

// GetByID reads through the cache; (nil, nil) means no such customer.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	cached, cacheErr := s.cacheService.GetCustomer(ctx, id)
	if cacheErr != nil {
		log.Printf("Failed to read customer %s from cache: %v", id.String(), cacheErr)
	} else if cached != nil {
		return cached, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}

	if cacheErr := s.cacheService.SetCustomer(ctx, customer, customerCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache customer %s: %v", customer.ID.String(), cacheErr)
	}
	return customer, nil
}

func (s *customerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.List(ctx, limit, offset)
}
