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

type CompanyHandler struct {
	companyService CompanyServiceInterface
}

func NewCompanyHandler(companyService CompanyServiceInterface) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) List(c *drift.Context) {
	companies, err := h.companyService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list companies")
		return
	}

	_ = c.JSON(200, companies)
}

func (h *CompanyHandler) Get(c *drift.Context) {
	// Unparseable ids resolve to nothing, same as unknown ids
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("company not found")
		return
	}

	company, err := h.companyService.GetByID(context.Background(), companyID)
	if err != nil {
		c.NotFound("company not found")
		return
	}

	_ = c.JSON(200, company)
}

func (h *CompanyHandler) Create(c *drift.Context) {
	var req dto.CreateCompanyRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	company, err := h.companyService.Create(context.Background(), services.CreateCompanyParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Country: req.Country,
		Website: req.Website,
	})
	if err != nil {
		c.InternalServerError("failed to create company")
		return
	}

	_ = c.JSON(201, company)
}

func (h *CompanyHandler) Update(c *drift.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("company not found")
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	company, err := h.companyService.Update(context.Background(), companyID, services.UpdateCompanyParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Country: req.Country,
		Website: req.Website,
	})
	if errors.Is(err, services.ErrCompanyNotFound) {
		c.NotFound("company not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to update company")
		return
	}

	_ = c.JSON(200, company)
}

func (h *CompanyHandler) Delete(c *drift.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.NotFound("company not found")
		return
	}

	err = h.companyService.Delete(context.Background(), companyID)
	if errors.Is(err, services.ErrCompanyNotFound) {
		c.NotFound("company not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to delete company")
		return
	}

	_ = c.JSON(200, dto.MessageResponse{Message: "company deleted"})
}
