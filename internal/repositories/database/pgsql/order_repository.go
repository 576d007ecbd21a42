package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
)

type PgxOrderRepository struct {
	db *pgxpool.Pool
}

func newPgxOrderRepository(db *pgxpool.Pool) portsrepo.OrderRepository {
	return &PgxOrderRepository{db: db}
}

var _ portsrepo.OrderRepository = (*PgxOrderRepository)(nil)

// CreateOrder writes the order, its items, and the stock decrements in a
// single transaction. The guarded UPDATE keeps stock from going negative
// under concurrent checkouts.
func (r *PgxOrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (order_id, user_id, subtotal, shipping_fee, tax, total, status,
			ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, NULLIF($11, ''), $12, $13, $14, $15);
	`,
		order.OrderID,
		order.UserID,
		order.Subtotal,
		order.ShippingFee,
		order.Tax,
		order.Total,
		order.Status,
		order.ShippingAddress.Line1,
		order.ShippingAddress.Line2,
		order.ShippingAddress.City,
		order.ShippingAddress.State,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5);
		`, order.OrderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = now()
			WHERE product_id = $2 AND stock >= $1;
		`, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: insufficient stock for product %s", apperrors.ErrValidation, item.ProductID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

const orderColumns = `order_id, user_id, subtotal, shipping_fee, tax, total, status,
	ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
	created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order     domain.Order
		shipLine2 *string
		shipState *string
	)
	err := row.Scan(
		&order.OrderID,
		&order.UserID,
		&order.Subtotal,
		&order.ShippingFee,
		&order.Tax,
		&order.Total,
		&order.Status,
		&order.ShippingAddress.Line1,
		&shipLine2,
		&order.ShippingAddress.City,
		&shipState,
		&order.ShippingAddress.PostalCode,
		&order.ShippingAddress.Country,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if shipLine2 != nil {
		order.ShippingAddress.Line2 = *shipLine2
	}
	if shipState != nil {
		order.ShippingAddress.State = *shipState
	}
	return &order, nil
}

func (r *PgxOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1;
	`, order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_id = $1;
	`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PgxOrderRepository) FindOrdersByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", rows.Err())
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE order_id = $2;
	`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}
	return nil
}
