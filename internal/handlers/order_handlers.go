package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/common"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CustomerID string `json:"customer_id"`
		Products   []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"products"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if len(req.Products) == 0 {
		return common.SendValidationError(c, "products", "at least one product is required")
	}

	input := services.CreateOrderInput{CustomerID: customerID}
	for _, line := range req.Products {
		productID, err := common.ValidateUUID(line.ID, "products.id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		// Max 10,000 units per line
		if err := common.ValidatePositiveInteger(line.Quantity, "products.quantity", 10000); err != nil {
			return common.SendValidationError(c, "products.quantity", err.Error())
		}
		input.Products = append(input.Products, models.OrderLineRequest{ID: productID, Quantity: line.Quantity})
	}

	order, err := h.orderService.CreateOrder(ctx, input)
	if err != nil {
		var notFound *common.EntityNotFoundError
		if errors.As(err, &notFound) {
			return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", notFound.Message, nil))
		}
		var insufficient *common.InsufficientStockError
		if errors.As(err, &insufficient) {
			return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("INSUFFICIENT_STOCK", insufficient.Error(), nil))
		}
		return common.SendServerError(c, "Failed to create order")
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.FindByID(ctx, id)
	if err != nil {
		return common.SendServerError(c, "Failed to get order")
	}
	if order == nil {
		return common.SendNotFoundError(c, "Order")
	}

	return c.JSON(http.StatusOK, order)
}
