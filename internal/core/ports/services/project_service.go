package services

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// ProjectSvcFacade defines the catalog operations for projects.
type ProjectSvcFacade interface {
	// CreateProject registers a new project under an existing company.
	CreateProject(ctx context.Context, project domain.Project) (*domain.Project, error)

	// GetProjectByID retrieves a specific project.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects lists projects, optionally scoped to one company.
	ListProjects(ctx context.Context, companyID string) ([]domain.Project, error)

	// UpdateProject fully replaces a project's mutable fields.
	UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error)

	// UpdateProjectStatus flips only the lifecycle status.
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error)

	// DeleteProject removes a project not referenced by any transaction.
	DeleteProject(ctx context.Context, projectID string) error
}
