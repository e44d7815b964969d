package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go-storefront/internal/models"
	"go-storefront/internal/services"
	"go-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

type AdminHandler struct {
	adminService   *services.AdminService
	productService *services.ProductService
	assetService   *services.AssetService
	sessions       *session.Store
}

func NewAdminHandler(adminService *services.AdminService, productService *services.ProductService, assetService *services.AssetService, sessions *session.Store) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		productService: productService,
		assetService:   assetService,
		sessions:       sessions,
	}
}

// GET /admin
func (h *AdminHandler) LoginForm(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	page(c, sess, http.StatusOK, "admin_login.gohtml", gin.H{"Title": "Admin"})
}

// POST /admin
func (h *AdminHandler) Login(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if h.adminService.Authenticate(sess, c.PostForm("password")) {
		redirect(c, sess, "/admin/products")
		return
	}
	sess.AddNotice("Incorrect password.")
	page(c, sess, http.StatusOK, "admin_login.gohtml", gin.H{"Title": "Admin"})
}

// GET /admin/products
func (h *AdminHandler) Products(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if !h.adminService.Authorized(sess) {
		redirect(c, sess, "/admin")
		return
	}
	products, err := h.productService.GetAllProducts(c.Request.Context(), "")
	if err != nil {
		serverError(c, sess, err)
		return
	}
	page(c, sess, http.StatusOK, "admin_products.gohtml", gin.H{
		"Title":    "Manage products",
		"Products": products,
	})
}

// POST /admin/products/add
// The request body is already capped by LimitBody; the image is only written
// once the name and price have been accepted.
func (h *AdminHandler) AddProduct(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if !h.adminService.Authorized(sess) {
		redirect(c, sess, "/admin")
		return
	}

	if err := c.Request.ParseMultipartForm(h.assetService.MaxBytes()); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.payloadTooLarge(c, sess)
			return
		}
		sess.AddNotice("Could not read the submitted form.")
		redirect(c, sess, "/admin/products")
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		sess.AddNotice("Could not read the submitted form.")
		redirect(c, sess, "/admin/products")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		sess.AddNotice("Name is required.")
		redirect(c, sess, "/admin/products")
		return
	}
	priceCents, err := parsePrice(req.Price)
	if err != nil {
		sess.AddNotice(err.Error())
		redirect(c, sess, "/admin/products")
		return
	}

	// FormFile's only error here is "no such file"; a missing image is allowed.
	file, _ := c.FormFile("image")
	image, err := h.assetService.Store(file)
	if errors.Is(err, models.ErrPayloadTooLarge) {
		h.payloadTooLarge(c, sess)
		return
	}
	if err != nil {
		serverError(c, sess, err)
		return
	}

	_, err = h.productService.CreateProduct(c.Request.Context(), sess, models.Product{
		Name:        name,
		PriceCents:  priceCents,
		Description: strings.TrimSpace(req.Description),
		Image:       image,
	})
	if err != nil {
		h.assetService.Discard(image)
	}
	switch {
	case err == nil:
		sess.AddNotice("Product added.")
	case errors.Is(err, models.ErrUnauthorized):
		redirect(c, sess, "/admin")
		return
	case models.IsValidation(err):
		sess.AddNotice(err.Error())
	default:
		serverError(c, sess, err)
		return
	}
	redirect(c, sess, "/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if !h.adminService.Authorized(sess) {
		redirect(c, sess, "/admin")
		return
	}
	if id, ok := productID(c); ok {
		err := h.productService.DeleteProduct(c.Request.Context(), sess, id)
		if errors.Is(err, models.ErrUnauthorized) {
			redirect(c, sess, "/admin")
			return
		}
		if err != nil {
			serverError(c, sess, err)
			return
		}
	}
	sess.AddNotice("Product deleted.")
	redirect(c, sess, "/admin/products")
}

// GET /admin/products/export.csv
func (h *AdminHandler) ExportProducts(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if !h.adminService.Authorized(sess) {
		redirect(c, sess, "/admin")
		return
	}
	products, err := h.productService.GetAllProducts(c.Request.Context(), "")
	if err != nil {
		serverError(c, sess, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Status(http.StatusOK)
	if err := gocsv.Marshal(&products, c.Writer); err != nil {
		zap.L().Error("export products", zap.Error(err))
	}
}

func (h *AdminHandler) payloadTooLarge(c *gin.Context, sess *session.Session) {
	page(c, sess, http.StatusRequestEntityTooLarge, "error.gohtml", gin.H{
		"Title":   "Upload too large",
		"Message": fmt.Sprintf("Uploads are limited to %s MB.", strconv.FormatFloat(float64(h.assetService.MaxBytes())/(1<<20), 'f', -1, 64)),
	})
}

// maxPriceCents keeps the float to int64 conversion in range.
const maxPriceCents = 1 << 53

// parsePrice converts a decimal amount in major units ("19.99") to cents.
// An empty price means 0.
func parsePrice(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, models.NewValidationError("price must be a number", "price")
	}
	if f < 0 {
		return 0, models.NewValidationError("price must not be negative", "price")
	}
	cents := math.Round(f * 100)
	if cents > maxPriceCents {
		return 0, models.NewValidationError("price is too large", "price")
	}
	return int64(cents), nil
}
