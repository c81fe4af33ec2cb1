package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Username: fmt.Sprintf("Test User %d", f.counter),
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Role:     models.RoleUser,
	}

	password := "password123"

	for _, opt := range opts {
		opt(user, &password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, google_id, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, user.Username, user.Email, string(hash), user.GoogleID, user.Role, user.Phone, user.Address).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User, *string)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User, _ *string) {
		u.Email = email
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User, _ *string) {
		u.Role = role
	}
}

// WithPassword sets the user's password
func WithPassword(password string) UserOption {
	return func(_ *models.User, p *string) {
		*p = password
	}
}

// WithGoogleID sets the user's linked google identity
func WithGoogleID(googleID string) UserOption {
	return func(u *models.User, _ *string) {
		u.GoogleID = &googleID
	}
}

// CreateCompany creates a test company with default values
func (f *Fixtures) CreateCompany(t *testing.T) *models.Company {
	t.Helper()
	f.counter++

	company := &models.Company{
		Name:    fmt.Sprintf("Company %d", f.counter),
		Email:   fmt.Sprintf("company%d@example.com", f.counter),
		Phone:   "+250781234567",
		Address: "KG 123 St",
		Country: "Rwanda",
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO companies (name, email, phone, address, country, website)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, company.Name, company.Email, company.Phone, company.Address, company.Country, company.Website).Scan(
		&company.ID, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create company: %v", err)
	}

	return company
}

// CreateProduct creates a test product with default values
func (f *Fixtures) CreateProduct(t *testing.T, companyID *uuid.UUID) *models.Product {
	t.Helper()
	f.counter++

	product := &models.Product{
		Name:        fmt.Sprintf("Product %d", f.counter),
		Description: "A test product",
		Price:       decimal.NewFromFloat(19.99),
		Category:    "electronics",
		Stock:       10,
		CompanyID:   companyID,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category, stock, image, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, product.Name, product.Description, product.Price, product.Category, product.Stock, product.Image, product.CompanyID).Scan(
		&product.ID, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}

// CreateOrder creates a test order owned by the given user, with one line item
// per product id
func (f *Fixtures) CreateOrder(t *testing.T, userID uuid.UUID, productIDs ...uuid.UUID) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID: userID,
		Total:  decimal.NewFromFloat(49.99),
		Status: models.OrderStatusPending,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO orders (user_id, total, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, order.UserID, order.Total, order.Status).Scan(
		&order.ID, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	for _, productID := range productIDs {
		var item models.OrderItem
		err = f.db.Pool.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id, order_id, product_id, quantity
		`, order.ID, productID, 1).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity)
		if err != nil {
			t.Fatalf("failed to create order item: %v", err)
		}
		order.Items = append(order.Items, item)
	}

	return order
}
