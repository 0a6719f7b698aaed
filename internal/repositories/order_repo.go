package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the order row and all of its line items in a single
// transaction. The caller fills ids and line prices beforehand.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.CustomerID); err != nil {
		return err
	}

	lineQuery := `
		INSERT INTO order_products (id, order_id, product_id, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	for _, line := range order.OrderProducts {
		quantity, err := line.Quantity.Int64()
		if err != nil {
			return fmt.Errorf("order line quantity %q is not an integer: %w", line.Quantity.String(), err)
		}
		if _, err := tx.Exec(ctx, lineQuery, line.ID, line.OrderID, line.ProductID, line.Price, quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID eager-loads the order's customer and line items. Returns
// (nil, nil) when no order matches the id. Line quantities are selected
// as text because the column is numeric; callers normalize.
func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{Customer: &models.Customer{}}
	orderQuery := `
		SELECT o.id, o.customer_id, o.created_at, o.updated_at,
		       c.id, c.name, c.email, c.created_at, c.updated_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`
	err := r.db.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID, &order.CustomerID, &order.CreatedAt, &order.UpdatedAt,
		&order.Customer.ID, &order.Customer.Name, &order.Customer.Email,
		&order.Customer.CreatedAt, &order.Customer.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lineQuery := `
		SELECT id, order_id, product_id, price, quantity::text, created_at, updated_at
		FROM order_products
		WHERE order_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		line := models.OrderProduct{}
		var quantity string
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Price, &quantity, &line.CreatedAt, &line.UpdatedAt); err != nil {
			return nil, err
		}
		line.Quantity = json.Number(quantity)
		order.OrderProducts = append(order.OrderProducts, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}
