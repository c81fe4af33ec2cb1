package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cyusa/shopstream-api/internal/config"
	"github.com/cyusa/shopstream-api/internal/oauth"
	"github.com/cyusa/shopstream-api/internal/services"
	"github.com/cyusa/shopstream-api/internal/validation"
	"github.com/cyusa/shopstream-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	google      oauth.Provider
	userService UserServiceInterface
	jwtService  JWTServiceInterface
	states      sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(cfg *config.Config, userService UserServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	h := &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}

	if cfg.Google.ClientID != "" {
		h.google = oauth.NewGoogleProvider(cfg.Google)
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	user, err := h.userService.Register(context.Background(), services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if errors.Is(err, services.ErrEmailExists) {
		c.BadRequest("email already exists")
		return
	}
	if err != nil {
		c.InternalServerError("failed to register user")
		return
	}

	_ = c.JSON(201, user)
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if err := validation.Check(req); err != nil {
		c.BadRequest(err.Error())
		return
	}

	user, err := h.userService.Authenticate(context.Background(), req.Email, req.Password)
	if err != nil {
		// Same response for unknown email and wrong password
		c.BadRequest("invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.InternalServerError("failed to generate token")
		return
	}

	_ = c.JSON(200, dto.LoginResponse{
		Token: token,
		User:  *user,
	})
}

func (h *AuthHandler) GoogleConsent(c *drift.Context) {
	if h.google == nil {
		c.BadRequest("google oauth is not configured")
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: h.google.GetConsentURL(state),
	})
}

func (h *AuthHandler) GoogleCallback(c *drift.Context) {
	if h.google == nil {
		c.BadRequest("google oauth is not configured")
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		c.Unauthorized("missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		c.Unauthorized("invalid or expired state")
		return
	}

	sdTyped, ok := sd.(stateData)
	if !ok || time.Now().After(sdTyped.expiresAt) {
		c.Unauthorized("state expired")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		c.Unauthorized("missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userInfo, err := h.google.ExchangeCode(ctx, code)
	if err != nil {
		c.Unauthorized("google authentication failed")
		return
	}

	user, err := h.userService.FindOrCreateFromOAuth(ctx, userInfo)
	if errors.Is(err, services.ErrNoEmail) {
		c.Unauthorized("no email provided by google")
		return
	}
	if err != nil {
		c.InternalServerError("failed to create user")
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.InternalServerError("failed to generate token")
		return
	}

	_ = c.JSON(200, dto.OAuthLoginResponse{
		Message: "google login successful",
		Token:   token,
		User:    *user,
	})
}

func (h *AuthHandler) Failure(c *drift.Context) {
	c.Unauthorized("google authentication failed")
}
