package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portsrepo "github.com/audriusk/sandelis_backend/internal/core/ports/repositories"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/google/uuid"
)

type projectService struct {
	projectRepo portsrepo.ProjectRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// NewProjectService creates the catalog service for projects.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, companyRepo portsrepo.CompanyReader) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, companyRepo: companyRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, project.CompanyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company %s does not exist: %w", project.CompanyID, apperrors.ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	project.ProjectID = uuid.NewString()
	if project.Status == "" {
		project.Status = domain.ProjectActive
	}
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, companyID string) ([]domain.Project, error) {
	return s.projectRepo.FindProjects(ctx, companyID)
}

func (s *projectService) UpdateProject(ctx context.Context, project domain.Project) (*domain.Project, error) {
	existing, err := s.projectRepo.FindProjectByID(ctx, project.ProjectID)
	if err != nil {
		return nil, err
	}

	existing.Name = project.Name
	existing.UpdatedAt = time.Now()

	if err := s.projectRepo.UpdateProject(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *projectService) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	if status != domain.ProjectActive && status != domain.ProjectClosed {
		return nil, fmt.Errorf("invalid project status %q: %w", status, apperrors.ErrValidation)
	}
	if err := s.projectRepo.UpdateProjectStatus(ctx, projectID, status); err != nil {
		return nil, err
	}
	return s.projectRepo.FindProjectByID(ctx, projectID)
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	return s.projectRepo.DeleteProject(ctx, projectID)
}
