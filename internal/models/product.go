package models

import "fmt"

// Product is a sellable catalog entry. Prices are kept in minor units.
type Product struct {
	ID          int64  `json:"id" csv:"id"`
	Name        string `json:"name" csv:"name"`
	PriceCents  int64  `json:"price_cents" csv:"price_cents"`
	Description string `json:"description" csv:"description"`
	Image       string `json:"image" csv:"image"` // filename under the uploads dir, empty means no image
}

type CreateProductRequest struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	Description string `form:"description"`
}

// FormatCents renders minor units as a plain decimal amount, e.g. 1999 -> "19.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
