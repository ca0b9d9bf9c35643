package repositories

import (
	"context"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
)

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	// FindProjectByID retrieves a specific project.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjects lists projects, optionally scoped to one company.
	FindProjects(ctx context.Context, companyID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject fully replaces a project's mutable fields.
	UpdateProject(ctx context.Context, project domain.Project) error

	// UpdateProjectStatus flips only the lifecycle status.
	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) error

	// DeleteProject removes a project; refused while transactions reference it.
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectRepositoryFacade combines the read and write surfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
