package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCompanyNotFound = errors.New("company not found")

const companyColumns = `id, name, email, phone, address, country, website, created_at, updated_at`

type CompanyService struct {
	db *database.DB
}

func NewCompanyService(db *database.DB) *CompanyService {
	return &CompanyService{db: db}
}

type CreateCompanyParams struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Country string
	Website *string
}

// UpdateCompanyParams carries partial updates: nil fields keep their stored
// value.
type UpdateCompanyParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Country *string
	Website *string
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+companyColumns+` FROM companies ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+companyColumns+` FROM companies WHERE id = $1
	`, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CompanyService) Create(ctx context.Context, params CreateCompanyParams) (*models.Company, error) {
	var c models.Company
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO companies (name, email, phone, address, country, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+companyColumns+`
	`, params.Name, params.Email, params.Phone, params.Address, params.Country, params.Website).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &c, nil
}

func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, params UpdateCompanyParams) (*models.Company, error) {
	var c models.Company
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE companies SET
			name = COALESCE($1, name),
			email = COALESCE($2, email),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address),
			country = COALESCE($5, country),
			website = COALESCE($6, website),
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+companyColumns+`
	`, params.Name, params.Email, params.Phone, params.Address, params.Country, params.Website, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.Country, &c.Website, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return &c, nil
}

func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
