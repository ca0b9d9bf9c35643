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

// transactionHandler handles HTTP requests for the stock-movement ledger.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers all ledger routes. Deletion is admin
// only; the service enforces it too.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/stats/today", h.getTodayStats)
		transactions.GET("/:id", h.getTransaction)
		transactions.DELETE("/:id", middleware.RequireAdmin(), h.deleteTransaction)
	}
}

// actorFromContext builds the caller identity from the access token claims
// stored by the auth middleware.
func actorFromContext(c *gin.Context) (portssvc.Actor, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return portssvc.Actor{}, false
	}
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		return portssvc.Actor{}, false
	}
	return portssvc.Actor{
		UserID:    userID,
		Role:      role,
		CompanyID: middleware.GetCompanyIDFromContext(c),
	}, true
}

// createTransaction godoc
// @Summary Record a stock movement
// @Description Takes or returns products against a project. The whole movement commits or nothing does.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Movement details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input, missing PIN or insufficient stock"
// @Failure 401 {object} map[string]string "PIN mismatch"
// @Failure 403 {object} map[string]string "Project belongs to another company"
// @Failure 404 {object} map[string]string "Project or product not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]portssvc.TransactionItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = portssvc.TransactionItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, portssvc.CreateTransactionInput{
		ProjectID: req.ProjectID,
		Type:      domain.TransactionType(req.Type),
		Items:     items,
		Pin:       req.Pin,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.Int("items", len(txn.Items)),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List stock movements
// @Description Newest first. Clients only see their own company's movements.
// @Tags transactions
// @Produce  json
// @Param   companyId query string false "Filter by company (admin only)"
// @Param   projectId query string false "Filter by project"
// @Param   type query string false "Filter by type" Enums(TAKE, RETURN)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	filter := domain.TransactionFilter{}
	if params.CompanyID != "" {
		filter.CompanyID = &params.CompanyID
	}
	if params.ProjectID != "" {
		filter.ProjectID = &params.ProjectID
	}
	if params.Type != "" {
		txnType := domain.TransactionType(params.Type)
		filter.Type = &txnType
	}

	txns, nextToken, err := h.transactionService.ListTransactions(c.Request.Context(), actor, filter, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// getTransaction godoc
// @Summary Get a stock movement by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a stock movement and reverse its stock effect
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transactionID := c.Param("id")
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, transactionID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	c.Status(http.StatusNoContent)
}

// getTodayStats godoc
// @Summary Today's movement summary per type
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.TodayStatsResponse
// @Security BearerAuth
// @Router /transactions/stats/today [get]
func (h *transactionHandler) getTodayStats(c *gin.Context) {
	stats, err := h.transactionService.GetTodayStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodayStatsResponse{Stats: stats})
}
