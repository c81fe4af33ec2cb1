package handlers

import (
	"context"
	"errors"

	"github.com/cyusa/shopstream-api/internal/services"
	"github.com/cyusa/shopstream-api/internal/validation"
	"github.com/cyusa/shopstream-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProductHandler struct {
	productService ProductServiceInterface
}

func NewProductHandler(productService ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *drift.Context) {
	products, err := h.productService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list products")
		return
	}

	_ = c.JSON(200, products)
}

func (h *ProductHandler) Get(c *drift.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("product not found")
		return
	}

	product, err := h.productService.GetByID(context.Background(), productID)
	if err != nil {
		c.NotFound("product not found")
		return
	}

	_ = c.JSON(200, product)
}

func (h *ProductHandler) Create(c *drift.Context) {
	var req dto.CreateProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	if req.Price.IsNegative() {
		c.BadRequest("price must be non-negative")
		return
	}

	product, err := h.productService.Create(context.Background(), services.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       *req.Stock,
		Image:       req.Image,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		c.InternalServerError("failed to create product")
		return
	}

	_ = c.JSON(201, product)
}

func (h *ProductHandler) Update(c *drift.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("product not found")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	if req.Price != nil && req.Price.IsNegative() {
		c.BadRequest("price must be non-negative")
		return
	}

	product, err := h.productService.Update(context.Background(), productID, services.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
		CompanyID:   req.CompanyID,
	})
	if errors.Is(err, services.ErrProductNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to update product")
		return
	}

	_ = c.JSON(200, product)
}

func (h *ProductHandler) Delete(c *drift.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("product not found")
		return
	}

	err = h.productService.Delete(context.Background(), productID)
	if errors.Is(err, services.ErrProductNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to delete product")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "product deleted"})
}
