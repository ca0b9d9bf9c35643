package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/audriusk/sandelis_backend/internal/apperrors"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors onto HTTP responses. Unclassified errors
// are logged and returned as a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var stockErr *apperrors.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       stockErr.Error(),
			"productID":   stockErr.ProductID,
			"productName": stockErr.ProductName,
			"available":   stockErr.Available,
			"unit":        stockErr.Unit,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrPinNotSet):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPinMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRefreshTokenExpired), errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindError turns gin binding failures into field-level messages.
func bindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			fields[i] = fe.Field() + " failed on " + fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + strings.Join(fields, ", ")})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
