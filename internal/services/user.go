package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/cyusa/shopstream-api/internal/oauth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the login response cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoEmail            = errors.New("no email provided by google")
	ErrUserNotFound       = errors.New("user not found")
)

const userColumns = `id, username, email, password_hash, google_id, role, phone, address, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
	Phone    *string
	Address  *string
}

func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := strings.ToLower(params.Email)

	if _, err := s.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := params.Role
	if role == "" {
		role = models.RoleUser
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, params.Username, email, string(hash), role, params.Phone, params.Address).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Role, &user.Phone, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindOrCreateFromOAuth resolves an external identity to a local user: lookup
// by google id or email, create when neither matches, and attach the google id
// to a matching password-based account (account linking).
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	if info.Email == "" {
		return nil, ErrNoEmail
	}

	email := strings.ToLower(info.Email)

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE google_id = $1 OR email = $2
	`, info.ID, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Role, &user.Phone, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == nil {
		if user.GoogleID == nil {
			_, err = s.db.Pool.Exec(ctx, `
				UPDATE users SET google_id = $1, updated_at = NOW()
				WHERE id = $2
			`, info.ID, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to link google account: %w", err)
			}
			googleID := info.ID
			user.GoogleID = &googleID
		}
		return &user, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, google_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, info.Name, email, info.ID, models.RoleUser).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Role, &user.Phone, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Role, &user.Phone, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.GoogleID,
		&user.Role, &user.Phone, &user.Address, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) PromoteToAdmin(ctx context.Context, email string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE email = $2
	`, models.RoleAdmin, strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
