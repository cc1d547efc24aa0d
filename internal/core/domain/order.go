package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidQuantity rejects order lines whose quantity is zero or negative;
// a non-positive quantity would turn the stock decrement into an increment.
var ErrInvalidQuantity = errors.New("order quantity must be positive")

// UnknownProductError reports an order line referencing a product id that
// does not exist. It wraps ErrProductNotFound so callers can match with
// errors.Is while still recovering the offending id via errors.As.
type UnknownProductError struct {
	ProductID int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("%v: id %d", ErrProductNotFound, e.ProductID)
}

func (e *UnknownProductError) Unwrap() error { return ErrProductNotFound }

// OutOfStockError reports an order line whose quantity exceeds the current
// stock of the named product. Wraps ErrInsufficientStock.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInsufficientStock, e.ProductName)
}

func (e *OutOfStockError) Unwrap() error { return ErrInsufficientStock }
