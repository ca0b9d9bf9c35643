package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// authHandler handles login, token refresh and PIN verification.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{
		authService: as,
		userService: us,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is rate
// limited per client IP to slow down credential stuffing.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.AuthSvc, services.UserSvc)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/refresh", h.refresh)
	}
}

// registerAuthProtectedRoutes sets up the auth routes that need a valid token.
func registerAuthProtectedRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.AuthSvc, services.UserSvc)

	auth := rg.Group("/auth")
	{
		auth.GET("/me", h.me)
		auth.POST("/logout", h.logout)
		auth.POST("/verify-pin", h.verifyPin)
	}
}

// login godoc
// @Summary Log in with username and password
// @Description Verifies credentials and returns an access token plus a refresh token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("username", req.Username))
		respondError(c, err)
		return
	}

	logger.Info("Login succeeded", slog.String("user_id", result.User.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(&result.User),
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	})
}

// refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description Rotates the refresh token; the presented one stops working
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.RefreshRequest true "User ID and refresh token"
// @Success 200 {object} dto.RefreshResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	})
}

// me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// logout godoc
// @Summary Log out
// @Description Invalidates the stored refresh token; the access token stays valid until it expires
// @Tags auth
// @Success 204 "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// verifyPin godoc
// @Summary Verify the caller's confirmation PIN
// @Description Checks the 4-digit PIN without creating anything
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.VerifyPinRequest true "PIN"
// @Success 200 {object} dto.VerifyPinResponse
// @Failure 400 {object} map[string]string "PIN not configured"
// @Failure 401 {object} map[string]string "PIN mismatch"
// @Security BearerAuth
// @Router /auth/verify-pin [post]
func (h *authHandler) verifyPin(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.VerifyPin(c.Request.Context(), userID, req.Pin); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerifyPinResponse{Valid: true})
}
