package pgsql

import (
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository. The transaction
// repository shares the product repository's stock operations so movements and
// reversals lock rows through one code path.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(db)
	return &portsrepo.RepositoryProvider{
		ProductRepo:     productRepo,
		CompanyRepo:     newPgxCompanyRepository(db),
		ProjectRepo:     newPgxProjectRepository(db),
		UserRepo:        newPgxUserRepository(db),
		TransactionRepo: newPgxTransactionRepository(db, productRepo),
	}
}
