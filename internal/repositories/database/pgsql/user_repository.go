package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	"github.com/audriusk/sandelis_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, password_hash, role, company_id, pin_hash, refresh_token_hash, refresh_token_expiry_time, created_at, updated_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		CompanyID:    d.CompanyID,
		PinHash:      d.PinHash,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CompanyID:    m.CompanyID,
		PinHash:      m.PinHash,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.CompanyID,
		&m.PinHash,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func mapUserWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("username already in use: %w", apperrors.ErrDuplicate)
	case pgForeignKeyViolation:
		return fmt.Errorf("user references a missing company or is referenced by transactions: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        INSERT INTO users (user_id, username, password_hash, role, company_id, pin_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.Role,
		m.CompanyID,
		m.PinHash,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", mapUserWriteError(err))
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	d := toDomainUser(m)
	return &d, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY username ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) FindUsersByCompanyID(ctx context.Context, companyID string) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE company_id = $1
        ORDER BY username ASC;
    `
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query company users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	query := `
        UPDATE users
        SET password_hash = $1, pin_hash = $2, company_id = $3, updated_at = $4
        WHERE user_id = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.PasswordHash,
		m.PinHash,
		m.CompanyID,
		m.UpdatedAt,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapUserWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapUserWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, updated_at = NOW()
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, refreshTokenHash, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, updated_at = NOW()
        WHERE user_id = $1;
    `
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
