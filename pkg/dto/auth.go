package dto

import "github.com/cyusa/shopstream-api/internal/models"

type RegisterRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"omitempty,oneof=user admin"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// LoginRequest deliberately does not validate the email format: a malformed
// email must produce the same "invalid credentials" response as a wrong
// password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ConsentURLResponse struct {
	URL string `json:"url"`
}

type OAuthLoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
