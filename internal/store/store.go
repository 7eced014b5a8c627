package store

import (
	"context"

	"github.com/dukamarket/checkout-api/internal/domain"
)

// Key layout shared by all backends. Snapshots live under a prefixed order
// id; a secondary key tracks the most recent order for the resolver's
// one-level fallback; the clear-cart flag is consumed at most once.
const (
	orderKeyPrefix     = "order_"
	lastOrderKey       = "lastOrderId"
	clearCartKeyPrefix = "clear_cart_"
)

func orderKey(orderID string) string {
	return orderKeyPrefix + orderID
}

func clearCartKey(orderID string) string {
	return clearCartKeyPrefix + orderID
}

// OrderStore is the durable key-value store for order snapshots. Snapshots
// are written exactly once per successful order and never mutated.
//
// Retention: the redis backend expires entries after 30 days; postgres and
// memory keep entries until deleted.
type OrderStore interface {
	// Save writes the snapshot under order_<id> and points lastOrderId at
	// it. The caller must not navigate or redirect until Save returns.
	Save(ctx context.Context, snapshot *domain.OrderSnapshot) error

	// Load returns the snapshot stored under the exact order id, or
	// *errors.ErrNotFound. Storage-level failures (driver errors, corrupt
	// JSON) are logged and surfaced as not found.
	Load(ctx context.Context, orderID string) (*domain.OrderSnapshot, error)

	// LoadLastOrderID returns the most recently saved order id, or
	// *errors.ErrNotFound when no order was ever saved.
	LoadLastOrderID(ctx context.Context) (string, error)

	// SetClearCartFlag records that the confirmation view for this order
	// should clear the cart once.
	SetClearCartFlag(ctx context.Context, orderID string) error

	// ConsumeClearCartFlag reports whether the flag was set and deletes it,
	// so a second call for the same order returns false.
	ConsumeClearCartFlag(ctx context.Context, orderID string) (bool, error)
}
