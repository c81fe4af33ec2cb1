package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, name, description, price, category, stock, image, company_id, created_at, updated_at`

type ProductService struct {
	db *database.DB
}

func NewProductService(db *database.DB) *ProductService {
	return &ProductService{db: db}
}

type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Image       *string
	CompanyID   *uuid.UUID
}

// UpdateProductParams carries partial updates: nil fields keep their stored
// value.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Stock       *int
	Image       *string
	CompanyID   *uuid.UUID
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+productColumns+` FROM products ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.Stock, &p.Image, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Stock, &p.Image, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Create(ctx context.Context, params CreateProductParams) (*models.Product, error) {
	var p models.Product
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, stock, image, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns+`
	`, params.Name, params.Description, params.Price, params.Category, params.Stock, params.Image, params.CompanyID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Stock, &p.Image, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*models.Product, error) {
	var p models.Product
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE products SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			category = COALESCE($4, category),
			stock = COALESCE($5, stock),
			image = COALESCE($6, image),
			company_id = COALESCE($7, company_id),
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+productColumns+`
	`, params.Name, params.Description, params.Price, params.Category, params.Stock, params.Image, params.CompanyID, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Stock, &p.Image, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}
