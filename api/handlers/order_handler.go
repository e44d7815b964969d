package handlers

import (
	"net/http"

	"go-storefront/internal/models"
	"go-storefront/internal/services"
	"go-storefront/internal/session"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService *services.OrderService
	sessions     *session.Store
}

func NewOrderHandler(orderService *services.OrderService, sessions *session.Store) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		sessions:     sessions,
	}
}

// GET /checkout
func (h *OrderHandler) CheckoutForm(c *gin.Context) {
	sess := h.sessions.Load(c.Request)

	items, total, err := h.orderService.Preview(c.Request.Context(), sess.Cart())
	if err != nil {
		serverError(c, sess, err)
		return
	}
	page(c, sess, http.StatusOK, "checkout.gohtml", gin.H{
		"Title": "Checkout",
		"Items": items,
		"Total": total,
	})
}

// POST /checkout
// A missing field re-prompts with a notice and keeps the cart.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	sess := h.sessions.Load(c.Request)

	var form models.CheckoutForm
	if err := c.ShouldBind(&form); err != nil {
		sess.AddNotice("Please fill in all fields.")
		redirect(c, sess, "/checkout")
		return
	}

	cart := sess.Cart()
	order, err := h.orderService.Submit(c.Request.Context(), cart, form)
	if models.IsValidation(err) {
		sess.AddNotice("Please fill in all fields.")
		redirect(c, sess, "/checkout")
		return
	}
	if err != nil {
		serverError(c, sess, err)
		return
	}

	sess.SetCart(cart)
	page(c, sess, http.StatusOK, "order_success.gohtml", gin.H{
		"Title": "Order placed",
		"Order": order,
	})
}
