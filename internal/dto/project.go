package dto

import "github.com/audriusk/sandelis_backend/internal/core/domain"

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	CompanyID string `json:"companyID" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// UpdateProjectRequest is a full replace of the mutable fields.
type UpdateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProjectStatusRequest is the narrow status-only endpoint body.
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE CLOSED"`
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Status    string `json:"status"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	CompanyID string `form:"companyId"`
}

// ListProjectsResponse wraps the project listing.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToProjectResponse converts a domain.Project to its public shape.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ProjectID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Status:    string(p.Status),
	}
}

// ToProjectResponses converts a slice of domain.Project.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}
