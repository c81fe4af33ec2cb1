package services

import (
	"context"
	"testing"
	"time"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/cyusa/shopstream-api/internal/oauth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumnList = []string{
	"id", "username", "email", "password_hash", "google_id", "role", "phone", "address", "created_at", "updated_at",
}

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserService(db), mock
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_Register(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	// Duplicate check comes back empty
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("new@example.com").
		WillReturnError(pgx.ErrNoRows)

	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, "newuser", "new@example.com", "hashed", nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("newuser", "new@example.com", pgxmock.AnyArg(), "user", (*string)(nil), (*string)(nil)).
		WillReturnRows(rows)

	user, err := svc.Register(ctx, RegisterParams{
		Username: "newuser",
		Email:    "New@Example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_EmailExists(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	now := time.Now()

	rows := pgxmock.NewRows(userColumnList).
		AddRow(uuid.New(), "taken", "taken@example.com", "hashed", nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("taken@example.com").
		WillReturnRows(rows)

	_, err := svc.Register(ctx, RegisterParams{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_AdminRole(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("boss@example.com").
		WillReturnError(pgx.ErrNoRows)

	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, "boss", "boss@example.com", "hashed", nil, "admin", nil, nil, now, now)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("boss", "boss@example.com", pgxmock.AnyArg(), "admin", (*string)(nil), (*string)(nil)).
		WillReturnRows(rows)

	user, err := svc.Register(ctx, RegisterParams{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()
	hash := hashPassword(t, "correct-password")

	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, "someone", "someone@example.com", hash, nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("someone@example.com").
		WillReturnRows(rows)

	user, err := svc.Authenticate(ctx, "Someone@Example.com", "correct-password")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	now := time.Now()
	hash := hashPassword(t, "correct-password")

	rows := pgxmock.NewRows(userColumnList).
		AddRow(uuid.New(), "someone", "someone@example.com", hash, nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("someone@example.com").
		WillReturnRows(rows)

	_, err := svc.Authenticate(ctx, "someone@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Authenticate(ctx, "ghost@example.com", "whatever")

	// Same error as a wrong password, nothing to enumerate
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_CreateNew(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	info := &oauth.UserInfo{
		Email:    "new@example.com",
		Name:     "New User",
		ID:       "google-123",
		Provider: "google",
	}
	userID := uuid.New()
	now := time.Now()
	googleID := "google-123"

	// First query - user not found
	mock.ExpectQuery(`SELECT .+ FROM users WHERE google_id = .+ OR email`).
		WithArgs(info.ID, info.Email).
		WillReturnError(pgx.ErrNoRows)

	// Insert new user
	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, info.Name, info.Email, "", &googleID, "user", nil, nil, now, now)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(info.Name, info.Email, info.ID, "user").
		WillReturnRows(rows)

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, info.Email, user.Email)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, info.ID, *user.GoogleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_FindExisting(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	info := &oauth.UserInfo{
		Email:    "existing@example.com",
		Name:     "Existing User",
		ID:       "google-456",
		Provider: "google",
	}
	userID := uuid.New()
	now := time.Now()
	googleID := "google-456"

	// User found by google id
	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, info.Name, info.Email, "", &googleID, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE google_id = .+ OR email`).
		WithArgs(info.ID, info.Email).
		WillReturnRows(rows)

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_LinksAccount(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	info := &oauth.UserInfo{
		Email:    "linked@example.com",
		Name:     "Linked User",
		ID:       "google-789",
		Provider: "google",
	}
	userID := uuid.New()
	now := time.Now()

	// Password-based account found by email, no google id yet
	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, "linked", info.Email, "hashed", nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE google_id = .+ OR email`).
		WithArgs(info.ID, info.Email).
		WillReturnRows(rows)

	mock.ExpectExec(`UPDATE users SET google_id`).
		WithArgs(info.ID, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	require.NotNil(t, user.GoogleID)
	assert.Equal(t, info.ID, *user.GoogleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_NoEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.FindOrCreateFromOAuth(ctx, &oauth.UserInfo{ID: "google-000", Provider: "google"})

	assert.ErrorIs(t, err, ErrNoEmail)
}

func TestUserService_GetByID(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(userColumnList).
		AddRow(userID, "someone", "someone@example.com", "hashed", nil, "user", nil, nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(rows)

	user, err := svc.GetByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "someone@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, userID)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET role`).
		WithArgs(models.RoleAdmin, "someone@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.PromoteToAdmin(ctx, "Someone@Example.com")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_PromoteToAdmin_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET role`).
		WithArgs(models.RoleAdmin, "ghost@example.com").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := svc.PromoteToAdmin(ctx, "ghost@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
