package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/core/domain"
	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	db *pgxpool.Pool
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, brand, category, description, price, image_url, stock, featured, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product     domain.Product
		description *string
		imageURL    *string
	)
	err := row.Scan(
		&product.ProductID,
		&product.Name,
		&product.Brand,
		&product.Category,
		&description,
		&product.Price,
		&imageURL,
		&product.Stock,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		product.Description = *description
	}
	if imageURL != nil {
		product.ImageURL = *imageURL
	}
	return &product, nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE product_id = $1;
	`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return product, nil
}

// FindProducts builds the WHERE clause dynamically from the filter; every
// value goes through a placeholder.
func (r *PgxProductRepository) FindProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		conditions []string
		args       []any
	)
	addArg := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.Replace(condition, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if filter.Category != "" {
		addArg("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		addArg("brand = ?", filter.Brand)
	}
	if filter.MinPrice != nil {
		addArg("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addArg("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE '%' || $"+n+" || '%' OR brand ILIKE '%' || $"+n+" || '%')")
	}
	if filter.Featured != nil {
		addArg("featured = ?", *filter.Featured)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

func (r *PgxProductRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (product_id, name, brand, category, description, price, image_url, stock, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10, $11);
	`,
		product.ProductID,
		product.Name,
		product.Brand,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Stock,
		product.Featured,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, brand = $2, category = $3, description = NULLIF($4, ''),
		    price = $5, image_url = NULLIF($6, ''), stock = $7, featured = $8, updated_at = $9
		WHERE product_id = $10;
	`,
		product.Name,
		product.Brand,
		product.Category,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Stock,
		product.Featured,
		product.UpdatedAt,
		product.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ProductID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE product_id = $1;`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return nil
}
