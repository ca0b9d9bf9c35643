package handlers

import (
	"log/slog"
	"net/http"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes. User management is an
// admin surface.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a new user account (admin only)
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Username already in use"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), portssvc.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		CompanyID: req.CompanyID,
		Pin:       req.Pin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Updates the password, PIN or company of an existing user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), portssvc.UpdateUserInput{
		Password:  req.Password,
		Pin:       req.Pin,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Tags users
// @Param   id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
