package dto

type CreateCompanyRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required"`
	Address string  `json:"address" validate:"required"`
	Country string  `json:"country" validate:"required"`
	Website *string `json:"website"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Country *string `json:"country"`
	Website *string `json:"website"`
}
