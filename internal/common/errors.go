package common

import (
	"fmt"
	"strings"
)

// EntityNotFoundError reports a request that references a customer or
// product id with no matching record. It is a client-correctable error,
// not a system fault.
type EntityNotFoundError struct {
	Message string
}

func (e *EntityNotFoundError) Error() string { return e.Message }

func NewEntityNotFound(message string) *EntityNotFoundError {
	return &EntityNotFoundError{Message: message}
}

// InsufficientStockError reports order lines whose requested quantity
// exceeds the product's current stock.
type InsufficientStockError struct {
	ProductIDs []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("quantity not available for products %s", strings.Join(e.ProductIDs, ", "))
}
