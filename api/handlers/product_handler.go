package handlers

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go-storefront/internal/models"
	"go-storefront/internal/services"
	"go-storefront/internal/session"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *services.ProductService
	sessions       *session.Store
}

func NewProductHandler(productService *services.ProductService, sessions *session.Store) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		sessions:       sessions,
	}
}

// GET /
// Lists the catalog, filtered by ?q= when present.
func (h *ProductHandler) Index(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	query := strings.TrimSpace(c.Query("q"))

	products, err := h.productService.GetAllProducts(c.Request.Context(), query)
	if err != nil {
		serverError(c, sess, err)
		return
	}
	page(c, sess, http.StatusOK, "index.gohtml", gin.H{
		"Products": products,
		"Query":    query,
	})
}

// GET /product/:id
func (h *ProductHandler) Detail(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	id, ok := productID(c)
	if !ok {
		notFound(c, sess)
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		notFound(c, sess)
		return
	}
	if err != nil {
		serverError(c, sess, err)
		return
	}
	page(c, sess, http.StatusOK, "product_detail.gohtml", gin.H{
		"Title":   product.Name,
		"Product": product,
	})
}

// Health check endpoint
func (h *ProductHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// Metrics endpoint
func (h *ProductHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"goroutines": runtime.NumGoroutine(),
		"timestamp":  time.Now().Unix(),
	})
}

// productID parses the :id route parameter. Anything that is not a positive
// integer is treated as an unknown product.
func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
