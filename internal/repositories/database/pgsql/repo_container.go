package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/luxe-fragrances/storefront-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories against a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:    newPgxUserRepository(dbPool),
		ProductRepo: newPgxProductRepository(dbPool),
		OrderRepo:   newPgxOrderRepository(dbPool),
	}
}
