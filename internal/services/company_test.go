package services

import (
	"context"
	"testing"
	"time"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyColumnList = []string{
	"id", "name", "email", "phone", "address", "country", "website", "created_at", "updated_at",
}

func setupCompanyService(t *testing.T) (*CompanyService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewCompanyService(db), mock
}

func TestCompanyService_List(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	now := time.Now()

	rows := pgxmock.NewRows(companyColumnList).
		AddRow(uuid.New(), "Acme", "info@acme.example", "+100", "1 Main St", "US", nil, now, now).
		AddRow(uuid.New(), "Globex", "hi@globex.example", "+200", "2 Side St", "DE", nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM companies ORDER BY created_at`).
		WillReturnRows(rows)

	companies, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_List_Empty(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM companies ORDER BY created_at`).
		WillReturnRows(pgxmock.NewRows(companyColumnList))

	companies, err := svc.List(ctx)

	require.NoError(t, err)
	// Empty slice, not nil, so the handler serializes []
	assert.NotNil(t, companies)
	assert.Len(t, companies, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_GetByID(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()
	now := time.Now()
	website := "https://acme.example"

	rows := pgxmock.NewRows(companyColumnList).
		AddRow(companyID, "Acme", "info@acme.example", "+100", "1 Main St", "US", &website, now, now)

	mock.ExpectQuery(`SELECT .+ FROM companies WHERE id`).
		WithArgs(companyID).
		WillReturnRows(rows)

	company, err := svc.GetByID(ctx, companyID)

	require.NoError(t, err)
	assert.Equal(t, companyID, company.ID)
	require.NotNil(t, company.Website)
	assert.Equal(t, website, *company.Website)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM companies WHERE id`).
		WithArgs(companyID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, companyID)

	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_Create(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(companyColumnList).
		AddRow(companyID, "Acme", "info@acme.example", "+100", "1 Main St", "US", nil, now, now)

	mock.ExpectQuery(`INSERT INTO companies`).
		WithArgs("Acme", "info@acme.example", "+100", "1 Main St", "US", (*string)(nil)).
		WillReturnRows(rows)

	company, err := svc.Create(ctx, CreateCompanyParams{
		Name:    "Acme",
		Email:   "info@acme.example",
		Phone:   "+100",
		Address: "1 Main St",
		Country: "US",
	})

	require.NoError(t, err)
	assert.Equal(t, companyID, company.ID)
	assert.Equal(t, "Acme", company.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_Update_Partial(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()
	now := time.Now()
	newName := "Acme Renamed"

	rows := pgxmock.NewRows(companyColumnList).
		AddRow(companyID, newName, "info@acme.example", "+100", "1 Main St", "US", nil, now, now)

	mock.ExpectQuery(`UPDATE companies SET`).
		WithArgs(&newName, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), companyID).
		WillReturnRows(rows)

	company, err := svc.Update(ctx, companyID, UpdateCompanyParams{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, company.Name)
	assert.Equal(t, "info@acme.example", company.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_Update_NotFound(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()
	newName := "Acme Renamed"

	mock.ExpectQuery(`UPDATE companies SET`).
		WithArgs(&newName, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), companyID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Update(ctx, companyID, UpdateCompanyParams{Name: &newName})

	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_Delete(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()

	mock.ExpectExec(`DELETE FROM companies WHERE id`).
		WithArgs(companyID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(ctx, companyID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyService_Delete_NotFound(t *testing.T) {
	svc, mock := setupCompanyService(t)
	ctx := context.Background()
	companyID := uuid.New()

	mock.ExpectExec(`DELETE FROM companies WHERE id`).
		WithArgs(companyID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(ctx, companyID)

	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
