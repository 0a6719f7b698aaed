package jobs

import (
	"context"
	"log"

	"storefront/internal/repositories"

	"github.com/google/uuid"
)

const lowStockScanLimit = 1000

// StockAlertService flags products whose stock has fallen to or below a
// threshold so replenishment can be triggered before sales start failing.
type StockAlertService struct {
	productRepo repositories.ProductRepository
}

type StockAlert struct {
	ProductID    uuid.UUID
	ProductName  string
	CurrentStock int
	Threshold    int
}

func NewStockAlertService(productRepo repositories.ProductRepository) *StockAlertService {
	return &StockAlertService{
		productRepo: productRepo,
	}
}

func (a *StockAlertService) CheckLowStock(ctx context.Context, threshold int) ([]StockAlert, error) {
	if threshold <= 0 {
		threshold = 10 // Default threshold
	}

	products, err := a.productRepo.ListLowStock(ctx, threshold, lowStockScanLimit)
	if err != nil {
		log.Printf("Failed to list low-stock products: %v", err)
		return nil, err
	}

	var alerts []StockAlert
	for _, product := range products {
		alerts = append(alerts, StockAlert{
			ProductID:    product.ID,
			ProductName:  product.Name,
			CurrentStock: product.Quantity,
			Threshold:    threshold,
		})
		log.Printf("Low stock alert: product %s (%s) has %d units left (threshold %d)",
			product.Name, product.ID.String(), product.Quantity, threshold)
	}

	return alerts, nil
}
