package handlers

import (
	"context"
	"errors"

	"github.com/cyusa/shopstream-api/internal/middleware"
	"github.com/cyusa/shopstream-api/internal/services"
	"github.com/cyusa/shopstream-api/internal/validation"
	"github.com/cyusa/shopstream-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type OrderHandler struct {
	orderService OrderServiceInterface
}

func NewOrderHandler(orderService OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	if !req.Total.IsPositive() {
		c.BadRequest("total must be positive")
		return
	}

	items := make([]services.OrderItemParams, len(req.Products))
	for i, p := range req.Products {
		items[i] = services.OrderItemParams{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		}
	}

	// Owner comes from the token, never from the payload
	order, err := h.orderService.Create(context.Background(), services.CreateOrderParams{
		UserID: userID,
		Items:  items,
		Total:  *req.Total,
		Status: req.Status,
	})
	if err != nil {
		c.InternalServerError("failed to create order")
		return
	}

	_ = c.JSON(201, order)
}

func (h *OrderHandler) ListMine(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	orders, err := h.orderService.ListByUser(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to list orders")
		return
	}

	_ = c.JSON(200, orders)
}

func (h *OrderHandler) ListAll(c *drift.Context) {
	orders, err := h.orderService.ListAllDetailed(context.Background())
	if err != nil {
		c.InternalServerError("failed to list orders")
		return
	}

	_ = c.JSON(200, orders)
}

// Get performs no ownership check: any authenticated user may fetch any order
// by id.
func (h *OrderHandler) Get(c *drift.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("order not found")
		return
	}

	order, err := h.orderService.GetByID(context.Background(), orderID)
	if err != nil {
		c.NotFound("order not found")
		return
	}

	_ = c.JSON(200, order)
}

func (h *OrderHandler) Update(c *drift.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("order not found")
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	if req.Total != nil && !req.Total.IsPositive() {
		c.BadRequest("total must be positive")
		return
	}

	order, err := h.orderService.Update(context.Background(), orderID, services.UpdateOrderParams{
		Total:  req.Total,
		Status: req.Status,
	})
	if errors.Is(err, services.ErrOrderNotFound) {
		c.NotFound("order not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to update order")
		return
	}

	_ = c.JSON(200, order)
}

func (h *OrderHandler) Delete(c *drift.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("order not found")
		return
	}

	err = h.orderService.Delete(context.Background(), orderID)
	if errors.Is(err, services.ErrOrderNotFound) {
		c.NotFound("order not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to delete order")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "order deleted"})
}
