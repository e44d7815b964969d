package handlers

import (
	"net/http"
	"strings"

	"go-storefront/internal/services"
	"go-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

type CartHandler struct {
	cartService    *services.CartService
	productService *services.ProductService
	sessions       *session.Store
}

func NewCartHandler(cartService *services.CartService, productService *services.ProductService, sessions *session.Store) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		productService: productService,
		sessions:       sessions,
	}
}

// GET /cart
func (h *CartHandler) View(c *gin.Context) {
	sess := h.sessions.Load(c.Request)

	items, total, err := h.cartService.Resolve(c.Request.Context(), sess.Cart())
	if err != nil {
		serverError(c, sess, err)
		return
	}
	page(c, sess, http.StatusOK, "cart.gohtml", gin.H{
		"Title": "Cart",
		"Items": items,
		"Total": total,
	})
}

// POST /cart/add/:id
// Unknown products get a 404 here even though the cart itself would accept them.
func (h *CartHandler) Add(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	id, ok := productID(c)
	if !ok {
		notFound(c, sess)
		return
	}
	exists, err := h.productService.Exists(c.Request.Context(), id)
	if err != nil {
		serverError(c, sess, err)
		return
	}
	if !exists {
		notFound(c, sess)
		return
	}

	qty, err := cast.ToIntE(strings.TrimSpace(c.DefaultPostForm("qty", "1")))
	if err != nil {
		qty = 1
	}
	cart := sess.Cart()
	h.cartService.Add(cart, id, qty)
	sess.SetCart(cart)
	sess.AddNotice("Product added to your cart.")
	redirect(c, sess, "/cart")
}

// POST /cart/remove/:id
func (h *CartHandler) Remove(c *gin.Context) {
	sess := h.sessions.Load(c.Request)
	if id, ok := productID(c); ok {
		cart := sess.Cart()
		h.cartService.Remove(cart, id)
		sess.SetCart(cart)
	}
	sess.AddNotice("Product removed from your cart.")
	redirect(c, sess, "/cart")
}
