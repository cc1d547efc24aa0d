package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

const orderMailSubject = "Order summary"

// OrderService validates and commits orders in two phases over the catalog
// store, then hands the summary mail to the notifier.
type OrderService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	notifier ports.OrderNotifier
	logger   zerolog.Logger
}

func NewOrderService(
	products ports.ProductRepository,
	users ports.UserRepository,
	notifier ports.OrderNotifier,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		products: products,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// PlaceOrder runs the order workflow for the named user.
//
// Phase 1 validates every line against a snapshot of the catalog: any unknown
// product or short stock fails the whole request with no effects. Phase 2
// commits each line through an atomic guarded decrement, so stock cannot go
// negative even when concurrent orders race past phase 1 on the same product.
// Phase 3 enqueues the summary mail; delivery is best-effort and never rolls
// back the committed order.
//
// An empty line list is an accepted no-op: nothing is decremented and the
// summary total is zero.
func (s *OrderService) PlaceOrder(ctx context.Context, username string, lines []ports.OrderLine) (*ports.OrderResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("place order: resolve user %q: %w", username, err)
	}

	// Phase 1: validation, no effects.
	snapshot := make([]*domain.Product, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.UnknownProductError{ProductID: line.ProductID}
			}
			return nil, fmt.Errorf("place order: lookup product %d: %w", line.ProductID, err)
		}
		if product.StockQuantity < line.Quantity {
			return nil, &domain.OutOfStockError{ProductName: product.Name}
		}
		snapshot[i] = product
	}

	// Phase 2: commit. The repository decrements stock and increments sales
	// atomically per line; a race lost since phase 1 surfaces here.
	for i, line := range lines {
		if err := s.products.CommitOrderLine(ctx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, &domain.OutOfStockError{ProductName: snapshot[i].Name}
			}
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, &domain.UnknownProductError{ProductID: line.ProductID}
			}
			return nil, fmt.Errorf("place order: commit product %d: %w", line.ProductID, err)
		}
	}

	reference := uuid.NewString()
	summary, total := buildOrderSummary(snapshot, lines)

	// Phase 3: fire-and-forget notification.
	s.notifier.Enqueue(ports.OrderNotification{
		Reference: reference,
		Recipient: user.Email,
		Subject:   orderMailSubject,
		Body:      summary,
	})

	s.logger.Info().
		Str("order_ref", reference).
		Str("username", username).
		Int("lines", len(lines)).
		Float64("total", total).
		Msg("order placed")

	return &ports.OrderResult{Reference: reference, Total: total}, nil
}

// buildOrderSummary renders the plain-text mail body: one line per item with
// its line total, then the grand total.
func buildOrderSummary(products []*domain.Product, lines []ports.OrderLine) (string, float64) {
	var sb strings.Builder
	sb.WriteString("Your order:\n\n")

	total := 0.0
	for i, line := range lines {
		lineTotal := float64(line.Quantity) * products[i].Price
		total += lineTotal
		sb.WriteString(products[i].Name)
		sb.WriteString(" x ")
		sb.WriteString(strconv.Itoa(line.Quantity))
		sb.WriteString(" = ")
		sb.WriteString(formatAmount(lineTotal))
		sb.WriteString("\n")
	}

	sb.WriteString("\nTotal: ")
	sb.WriteString(formatAmount(total))
	return sb.String(), total
}

// formatAmount renders an amount with the shortest decimal form, always
// keeping at least one fractional digit ("60" becomes "60.0").
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
