package handlers

import (
	"net/http"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
	userService    portssvc.UserSvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade, us portssvc.UserSvcFacade) *companyHandler {
	return &companyHandler{companyService: cs, userService: us}
}

// registerCompanyRoutes registers all company-related routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade, userService portssvc.UserSvcFacade) {
	h := newCompanyHandler(companyService, userService)

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.GET("/:id", h.getCompany)

		admin := companies.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.createCompany)
			admin.PUT("/:id", h.updateCompany)
			admin.DELETE("/:id", h.deleteCompany)
			admin.GET("/:id/users", h.listCompanyUsers)
		}
	}
}

// createCompany godoc
// @Summary Create a new company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Company code already in use"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), domain.Company{
		Code:        req.Code,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.ListCompaniesResponse
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListCompaniesResponse{Companies: dto.ToCompanyResponses(companies)})
}

// getCompany godoc
// @Summary Get a company by ID
// @Tags companies
// @Produce  json
// @Param   id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   id path string true "Company ID"
// @Param   company body dto.UpdateCompanyRequest true "Company details"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), domain.Company{
		CompanyID:   c.Param("id"),
		Code:        req.Code,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listCompanyUsers godoc
// @Summary List the users attached to a company
// @Tags companies
// @Produce  json
// @Param   id path string true "Company ID"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id}/users [get]
func (h *companyHandler) listCompanyUsers(c *gin.Context) {
	users, err := h.userService.ListCompanyUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// deleteCompany godoc
// @Summary Delete a company
// @Description Refused while projects or users reference the company
// @Tags companies
// @Param   id path string true "Company ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Company is still referenced"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *companyHandler) deleteCompany(c *gin.Context) {
	if err := h.companyService.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
