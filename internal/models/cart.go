package models

import "strconv"

// Cart maps a product id (decimal text) to the requested quantity.
// Every present key holds a quantity >= 1; a missing key means zero.
type Cart map[string]int

// CartKey is the map key used for a product id.
func CartKey(productID int64) string {
	return strconv.FormatInt(productID, 10)
}

// Units returns the total number of units across all entries.
func (c Cart) Units() int {
	n := 0
	for _, qty := range c {
		n += qty
	}
	return n
}

// LineItem is a cart entry resolved against the current catalog.
type LineItem struct {
	Product  Product `json:"product"`
	Qty      int     `json:"qty"`
	Subtotal int64   `json:"subtotal"`
}
