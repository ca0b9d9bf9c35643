package handlers

import (
	"net/http"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService     portssvc.ProjectSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, ts portssvc.TransactionSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps, transactionService: ts}
}

// registerProjectRoutes registers all project-related routes.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newProjectHandler(projectService, transactionService)

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.GET("/:id/statistics", h.getProjectStatistics)

		admin := projects.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.createProject)
			admin.PUT("/:id", h.updateProject)
			admin.PATCH("/:id/status", h.updateProjectStatus)
			admin.DELETE("/:id", h.deleteProject)
		}
	}
}

// createProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown company"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), domain.Project{
		CompanyID: req.CompanyID,
		Name:      req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Produce  json
// @Param   companyId query string false "Filter by company"
// @Success 200 {object} dto.ListProjectsResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params.CompanyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProjectsResponse{Projects: dto.ToProjectResponses(projects)})
}

// getProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// getProjectStatistics godoc
// @Summary Summarize a project's transaction activity
// @Description Per-type transaction counts, total moved value and line item count
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.ProjectStatisticsResponse
// @Failure 403 {object} map[string]string "Project belongs to another company"
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/statistics [get]
func (h *projectHandler) getProjectStatistics(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.transactionService.GetProjectStatistics(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectStatisticsResponse(stats))
}

// updateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Project details"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), domain.Project{
		ProjectID: c.Param("id"),
		Name:      req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProjectStatus godoc
// @Summary Change a project's lifecycle status
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   status body dto.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/status [patch]
func (h *projectHandler) updateProjectStatus(c *gin.Context) {
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProjectStatus(c.Request.Context(), c.Param("id"), domain.ProjectStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Refused while transactions reference the project
// @Tags projects
// @Param   id path string true "Project ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Project is still referenced"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
