package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"storefront/internal/caching"
	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

const orderCacheTTL = 10 * time.Minute

// CreateOrderInput is the order placement request: the buying customer
// and the requested (product, quantity) lines.
type CreateOrderInput struct {
	CustomerID uuid.UUID                 `json:"customer_id"`
	Products   []models.OrderLineRequest `json:"products"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	cacheService caching.CacheService
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository, cacheService caching.CacheService) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		cacheService: cacheService,
	}
}

// CreateOrder validates the request against the customer and product
// stores, persists the order with per-line price snapshots, then writes
// the decremented stock levels back. No write happens before every
// validation passes. A stock-update failure after the order insert
// propagates as-is; there is no compensating delete (accepted
// inconsistency window, see DESIGN.md).
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	if customer == nil {
		return nil, common.NewEntityNotFound("Could not find any customer with the given id")
	}

	existing, err := s.productRepo.FindAllByID(ctx, input.Products)
	if err != nil {
		return nil, fmt.Errorf("look up products: %w", err)
	}

	productsByID := make(map[uuid.UUID]*models.Product, len(existing))
	for _, product := range existing {
		productsByID[product.ID] = product
	}

	// The batch lookup silently drops unknown ids; diff in request order.
	var missing []string
	for _, line := range input.Products {
		if _, ok := productsByID[line.ID]; !ok {
			missing = append(missing, line.ID.String())
		}
	}
	if len(missing) > 0 {
		return nil, common.NewEntityNotFound("Could not find products " + strings.Join(missing, ", "))
	}

	var outOfStock []string
	for _, line := range input.Products {
		if productsByID[line.ID].Quantity < line.Quantity {
			outOfStock = append(outOfStock, line.ID.String())
		}
	}
	if len(outOfStock) > 0 {
		return nil, &common.InsufficientStockError{ProductIDs: outOfStock}
	}

	now := time.Now()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Customer:   customer,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range input.Products {
		order.OrderProducts = append(order.OrderProducts, models.OrderProduct{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ID,
			Price:     productsByID[line.ID].Price,
			Quantity:  json.Number(strconv.Itoa(line.Quantity)),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// New absolute stock levels, computed from the quantities read above.
	restocked := make([]models.OrderLineRequest, 0, len(input.Products))
	for _, line := range input.Products {
		restocked = append(restocked, models.OrderLineRequest{
			ID:       line.ID,
			Quantity: productsByID[line.ID].Quantity - line.Quantity,
		})
	}
	if _, err := s.productRepo.UpdateQuantity(ctx, restocked); err != nil {
		return nil, fmt.Errorf("update product stock: %w", err)
	}

	for _, line := range input.Products {
		if cacheErr := s.cacheService.DeleteProduct(ctx, line.ID); cacheErr != nil {
			log.Printf("Failed to invalidate cache for product %s: %v", line.ID.String(), cacheErr)
		}
	}
	if cacheErr := s.cacheService.SetOrder(ctx, order, orderCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache order %s: %v", order.ID.String(), cacheErr)
	}

	return order, nil
}

// FindByID returns (nil, nil) when no order matches the id; absence is a
// normal outcome, not an error. Found orders come back with every line
// quantity in canonical integer form.
func (s *orderService) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	cached, cacheErr := s.cacheService.GetOrder(ctx, id)
	if cacheErr != nil {
		log.Printf("Failed to read order %s from cache: %v", id.String(), cacheErr)
	} else if cached != nil {
		return normalizeOrder(cached), nil
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	order = normalizeOrder(order)
	if cacheErr := s.cacheService.SetOrder(ctx, order, orderCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache order %s: %v", order.ID.String(), cacheErr)
	}
	return order, nil
}

// normalizeOrder copies the order, rewriting each line quantity from its
// stored representation (possibly text like "3.000" out of a numeric
// column) into integer form. All other fields pass through as stored.
func normalizeOrder(order *models.Order) *models.Order {
	normalized := *order
	normalized.OrderProducts = make([]models.OrderProduct, len(order.OrderProducts))
	for i, line := range order.OrderProducts {
		quantity, err := line.Quantity.Int64()
		if err != nil {
			if f, ferr := line.Quantity.Float64(); ferr == nil {
				quantity = int64(f)
			}
		}
		line.Quantity = json.Number(strconv.FormatInt(quantity, 10))
		normalized.OrderProducts[i] = line
	}
	return &normalized
}
