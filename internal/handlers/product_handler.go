package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratify/stratify/internal/logger"
	"github.com/stratify/stratify/internal/middleware"
	"github.com/stratify/stratify/internal/models"
	"github.com/stratify/stratify/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	products *service.ProductService
	logger   *logger.Logger
}

func NewProductHandler(products *service.ProductService, log *logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: log}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.POST("", h.Create)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}
}

// List returns products, optionally scoped to one program.
// GET /api/v1/products?programId=
func (h *ProductHandler) List(c *gin.Context) {
	programID, ok := parseOptionalUUIDQuery(c, "programId")
	if !ok {
		return
	}
	products, err := h.products.List(c.Request.Context(), programID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// Get returns a single product by id.
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create creates a product under an existing program.
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var in models.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.products.Create(c.Request.Context(), actor, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a product.
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var in models.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, err := h.products.Update(c.Request.Context(), actor, id, &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a product along with its project links.
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
