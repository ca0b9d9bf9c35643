package pgsql

import (
	"context"
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

const projectColumns = `project_id, company_id, name, status, created_at, updated_at`

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{db: db}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func toModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID: d.ProjectID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		Status:    string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID: m.ProjectID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Status:    domain.ProjectStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.CompanyID,
		&m.Name,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func mapProjectWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation:
		return fmt.Errorf("project is referenced by transactions or its company is missing: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
        INSERT INTO projects (` + projectColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProjectID,
		m.CompanyID,
		m.Name,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", mapProjectWriteError(err))
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`
	m, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	d := toDomainProject(m)
	return &d, nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, companyID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY name ASC;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
        UPDATE projects
        SET name = $1, updated_at = $2
        WHERE project_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.Name, m.UpdatedAt, m.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error {
	query := `
        UPDATE projects
        SET status = $1, updated_at = $2
        WHERE project_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), time.Now(), projectID)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	query := `DELETE FROM projects WHERE project_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", mapProjectWriteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("project not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
