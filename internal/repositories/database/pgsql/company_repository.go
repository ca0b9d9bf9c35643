package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	"github.com/audriusk/sandelis_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `company_id, code, name, email, phone, address, credit_limit, created_at, updated_at`

type PgxCompanyRepository struct {
	db *pgxpool.Pool
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{db: db}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func toModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Code:        d.Code,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		CreditLimit: d.CreditLimit,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		CreditLimit: m.CreditLimit,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.CreditLimit,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func mapCompanyWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("company code already in use: %w", apperrors.ErrDuplicate)
	case pgForeignKeyViolation:
		return fmt.Errorf("company is referenced by projects or users: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
        INSERT INTO companies (` + companyColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.CompanyID,
		m.Code,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save company: %w", mapCompanyWriteError(err))
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.db.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}
	d := toDomainCompany(m)
	return &d, nil
}

func (r *PgxCompanyRepository) FindCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, toDomainCompany(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", rows.Err())
	}
	return companies, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := toModelCompany(company)
	query := `
        UPDATE companies
        SET code = $1, name = $2, email = $3, phone = $4, address = $5,
            credit_limit = $6, updated_at = $7
        WHERE company_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.CreditLimit,
		m.UpdatedAt,
		m.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", mapCompanyWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	query := `DELETE FROM companies WHERE company_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", mapCompanyWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
