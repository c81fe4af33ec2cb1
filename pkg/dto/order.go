package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest carries no user field: the owner always comes from the
// authenticated identity.
type CreateOrderRequest struct {
	Products []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	Total    *decimal.Decimal   `json:"total" validate:"required"`
	Status   string             `json:"status" validate:"omitempty,oneof=pending paid shipped delivered completed"`
}

type UpdateOrderRequest struct {
	Total  *decimal.Decimal `json:"total"`
	Status *string          `json:"status" validate:"omitempty,oneof=pending paid shipped delivered completed"`
}
