package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyusa/shopstream-api/internal/database"
	"github.com/cyusa/shopstream-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

const orderColumns = `id, user_id, total, status, created_at, updated_at`

type OrderService struct {
	db *database.DB
}

func NewOrderService(db *database.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderItemParams struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderParams struct {
	// UserID is the authenticated requester, never taken from the payload.
	UserID uuid.UUID
	Items  []OrderItemParams
	Total  decimal.Decimal
	Status string
}

// UpdateOrderParams carries partial updates: nil fields keep their stored
// value.
type UpdateOrderParams struct {
	Total  *decimal.Decimal
	Status *string
}

func (s *OrderService) Create(ctx context.Context, params CreateOrderParams) (*models.Order, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	status := params.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	var order models.Order
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns+`
	`, params.UserID, params.Total, status).Scan(
		&order.ID, &order.UserID, &order.Total, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Items = make([]models.OrderItem, 0, len(params.Items))
	for _, item := range params.Items {
		var oi models.OrderItem
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id, order_id, product_id, quantity
		`, order.ID, item.ProductID, item.Quantity).Scan(
			&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		order.Items = append(order.Items, oi)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.Total, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order.Items, err = s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = s.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

// ListAllDetailed returns every order with its owner and item product names
// expanded, for the admin listing.
func (s *OrderService) ListAllDetailed(ctx context.Context) ([]models.OrderDetail, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at, o.updated_at,
		       u.username, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderDetail{}
	for rows.Next() {
		var d models.OrderDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Total, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.User.Username, &d.User.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		d.User.ID = d.UserID
		orders = append(orders, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = s.loadItemDetails(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (s *OrderService) Update(ctx context.Context, id uuid.UUID, params UpdateOrderParams) (*models.Order, error) {
	var order models.Order
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE orders SET
			total = COALESCE($1, total),
			status = COALESCE($2, status),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns+`
	`, params.Total, params.Status, id).Scan(
		&order.ID, &order.UserID, &order.Total, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.Items, err = s.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) loadItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity
		FROM order_items WHERE order_id = $1 ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var oi models.OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, oi)
	}

	return items, rows.Err()
}

func (s *OrderService) loadItemDetails(ctx context.Context, orderID uuid.UUID) ([]models.OrderItemDetail, error) {
	// LEFT JOIN: product references are not constrained, the product may be
	// gone
	rows, err := s.db.Pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, p.name
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItemDetail{}
	for rows.Next() {
		var oi models.OrderItemDetail
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity, &oi.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, oi)
	}

	return items, rows.Err()
}
