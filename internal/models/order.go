package models

// CheckoutForm carries the shipping details; all fields are required after trimming.
type CheckoutForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Address string `form:"address" validate:"required"`
}

// OrderConfirmation is the ephemeral result of a checkout. Nothing is persisted.
type OrderConfirmation struct {
	OrderID int64      `json:"order_id"`
	Total   int64      `json:"total"`
	Items   []LineItem `json:"items"`
}
