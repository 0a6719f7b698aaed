package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	FindAllByID(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error)
	UpdateQuantity(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error)
	ListLowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error)
}

type productRepo struct {
	db DB
}

func NewProductRepo(db DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Price, product.Quantity)
	return err
}

// GetByID returns (nil, nil) when no product matches the id.
func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE name = $1
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindAllByID fetches every product matching the requested line ids in one
// batched query. Ids with no matching product are silently dropped from
// the result; callers diff against the request to detect them.
func (r *productRepo) FindAllByID(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}

	query := `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// UpdateQuantity sets each product's stock to the given absolute value
// (not a delta) and returns the updated rows.
func (r *productRepo) UpdateQuantity(ctx context.Context, lines []models.OrderLineRequest) ([]*models.Product, error) {
	query := `
		UPDATE products
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, price, quantity, created_at, updated_at
	`
	updated := make([]*models.Product, 0, len(lines))
	for _, line := range lines {
		product := &models.Product{}
		err := r.db.QueryRow(ctx, query, line.Quantity, line.ID).Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}
		updated = append(updated, product)
	}
	return updated, nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error) {
	query := `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products
		WHERE quantity <= $1
		ORDER BY quantity ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
