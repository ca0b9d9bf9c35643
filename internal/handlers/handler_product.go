package handlers

import (
	"net/http"

	"github.com/audriusk/sandelis_backend/internal/core/domain"
	portssvc "github.com/audriusk/sandelis_backend/internal/core/ports/services"
	"github.com/audriusk/sandelis_backend/internal/dto"
	"github.com/audriusk/sandelis_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to catalog products.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers all product-related routes. Reads are open
// to every authenticated user; writes are an admin surface.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/search", h.searchProducts)
		products.GET("/:id", h.getProduct)

		admin := products.Group("", middleware.RequireAdmin())
		{
			admin.GET("/low-stock", h.listLowStockProducts)
			admin.POST("", h.createProduct)
			admin.PUT("/:id", h.updateProduct)
			admin.PATCH("/:id/stock", h.updateStock)
			admin.DELETE("/:id", h.deleteProduct)
		}
	}
}

func productFromCreateRequest(req dto.CreateProductRequest) domain.Product {
	return domain.Product{
		Code:     req.Code,
		Barcode:  req.Barcode,
		Name:     req.Name,
		Category: req.Category,
		Unit:     domain.Unit(req.Unit),
		Stock:    req.Stock,
		Price:    req.Price,
		MinStock: req.MinStock,
	}
}

// createProduct godoc
// @Summary Create a new product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Code or barcode already in use"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), productFromCreateRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Param   category query string false "Filter by category"
// @Param   search query string false "Substring filter on name or code"
// @Success 200 {object} dto.ListProductsResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), params.Category, params.Search, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: dto.ToProductResponses(products)})
}

// searchProducts godoc
// @Summary Ranked product search for fast entry
// @Description Exact code matches rank first, then exact barcode, then name prefixes. Queries under 2 characters return an empty list.
// @Tags products
// @Produce  json
// @Param   q query string true "Search query"
// @Success 200 {object} dto.SearchProductsResponse
// @Security BearerAuth
// @Router /products/search [get]
func (h *productHandler) searchProducts(c *gin.Context) {
	var params dto.SearchProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	products, err := h.productService.SearchProducts(c.Request.Context(), params.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SearchProductsResponse{Results: dto.ToProductResponses(products)})
}

// listLowStockProducts godoc
// @Summary List products at or below their reorder threshold
// @Tags products
// @Produce  json
// @Success 200 {object} dto.ListProductsResponse
// @Security BearerAuth
// @Router /products/low-stock [get]
func (h *productHandler) listLowStockProducts(c *gin.Context) {
	products, err := h.productService.ListLowStockProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListProductsResponse{Products: dto.ToProductResponses(products)})
}

// getProduct godoc
// @Summary Get a product by ID
// @Tags products
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Product details"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Code or barcode already in use"
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product := domain.Product{
		ProductID: c.Param("id"),
		Code:      req.Code,
		Barcode:   req.Barcode,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      domain.Unit(req.Unit),
		Stock:     req.Stock,
		Price:     req.Price,
		MinStock:  req.MinStock,
	}
	updated, err := h.productService.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(updated))
}

// updateStock godoc
// @Summary Set a product's stock level directly
// @Description Manual correction outside the transaction ledger, e.g. after stocktaking
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   stock body dto.UpdateStockRequest true "New stock level"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{id}/stock [patch]
func (h *productHandler) updateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.productService.UpdateStock(c.Request.Context(), c.Param("id"), req.Stock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Delete a product
// @Description Refused while transaction items reference the product
// @Tags products
// @Param   id path string true "Product ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product is referenced by transactions"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
