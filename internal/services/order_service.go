package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"go-storefront/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// OrderService runs the simulated checkout. Orders are never persisted.
type OrderService struct {
	cartService *CartService
	validate    *validator.Validate
	now         func() time.Time
	log         *zap.Logger
}

func NewOrderService(cartService *CartService, log *zap.Logger) *OrderService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	return &OrderService{
		cartService: cartService,
		validate:    v,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the clock used for order ids.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// Preview resolves the cart for the checkout form without changing it.
func (s *OrderService) Preview(ctx context.Context, cart models.Cart) ([]models.LineItem, int64, error) {
	return s.cartService.Resolve(ctx, cart)
}

// Submit validates the shipping form, totals the cart, then clears it.
// On a validation failure the cart is left untouched.
//
// The order id is the current Unix second, so two checkouts in the same
// second share an id.
func (s *OrderService) Submit(ctx context.Context, cart models.Cart, form models.CheckoutForm) (models.OrderConfirmation, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Address = strings.TrimSpace(form.Address)
	if err := s.validateForm(form); err != nil {
		return models.OrderConfirmation{}, err
	}

	items, total, err := s.cartService.Resolve(ctx, cart)
	if err != nil {
		return models.OrderConfirmation{}, err
	}
	confirmation := models.OrderConfirmation{
		OrderID: s.now().Unix(),
		Total:   total,
		Items:   items,
	}
	s.cartService.Clear(cart)

	s.log.Info("order placed",
		zap.Int64("order_id", confirmation.OrderID),
		zap.Int64("total_cents", total),
		zap.Int("lines", len(items)),
	)
	return confirmation, nil
}

func (s *OrderService) validateForm(form models.CheckoutForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return models.NewValidationError("please fill in all fields", fields...)
}
