package handlers

import (
	"context"
	"time"

	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/cyusa/shopstream-api/internal/oauth"
	"github.com/cyusa/shopstream-api/internal/services"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CompanyServiceInterface defines the methods used by handlers from CompanyService
type CompanyServiceInterface interface {
	List(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Create(ctx context.Context, params services.CreateCompanyParams) (*models.Company, error)
	Update(ctx context.Context, id uuid.UUID, params services.UpdateCompanyParams) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductServiceInterface defines the methods used by handlers from ProductService
type ProductServiceInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, params services.CreateProductParams) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, params services.UpdateProductParams) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderServiceInterface defines the methods used by handlers from OrderService
type OrderServiceInterface interface {
	Create(ctx context.Context, params services.CreateOrderParams) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAllDetailed(ctx context.Context) ([]models.OrderDetail, error)
	Update(ctx context.Context, id uuid.UUID, params services.UpdateOrderParams) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateToken(userID uuid.UUID, role string) (string, error)
	ValidateToken(token string) (*services.Claims, error)
	Expiry() time.Duration
}
