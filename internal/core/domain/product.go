package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is the catalog aggregate: one coffee offered by the shop.
// StockQuantity and Sales are mutated only by the order commit; the
// repository guarantees StockQuantity never drops below zero.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Sales         int     `json:"sales"`
	Available     bool    `json:"productAvailable"`
	RoastLevel    int     `json:"roastLevel"`
	CaffeineLevel int     `json:"caffeineLevel"`
	Sweetness     int     `json:"sweetness"`
	Acidity       int     `json:"acidity"`
	Weight        string  `json:"weight"`
}
