package confirmation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/internal/store"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// Placeholders rendered for missing seller contact fields.
const (
	notListed = "Not Listed"
	noAddress = "N/A"
)

// UnmatchedBucketName labels the fallback group for items whose seller
// matches no contact block on the snapshot.
const UnmatchedBucketName = "Other Sellers"

// Guidance text by delivery method.
const (
	guidanceArranged   = "Your order will be delivered to the address you provided. The seller will contact you to confirm the delivery time."
	guidanceWithSeller = "Please contact the seller directly to arrange pickup or delivery of your items."
)

// CartClearer is the slice of the cart collaborator the resolver needs to
// honor the one-shot clear-cart flag left by a hosted redirect.
type CartClearer interface {
	ClearSelected(ctx context.Context, userID string) error
}

// ContactView is a seller contact block with placeholders applied, safe to
// render as-is.
type ContactView struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// SellerGroup is one seller's contact block with the items bought from
// them.
type SellerGroup struct {
	Contact ContactView       `json:"contact"`
	Items   []domain.LineItem `json:"items"`
}

// View is the immutable confirmation view model. It is fully populated or
// not produced at all; resolution failure never renders a partial view.
type View struct {
	OrderID        string                 `json:"order_id"`
	Status         string                 `json:"status"`
	Date           time.Time              `json:"date"`
	Currency       string                 `json:"currency"`
	Total          int64                  `json:"total"`
	PaymentLabel   string                 `json:"payment_label"`
	Shipping       domain.ShippingAddress `json:"shipping"`
	DeliveryMethod domain.DeliveryMethod  `json:"delivery_method"`
	Guidance       string                 `json:"guidance"`
	SellerGroups   []SellerGroup          `json:"seller_groups"`
	Degraded       bool                   `json:"degraded,omitempty"`
	CartCleared    bool                   `json:"cart_cleared,omitempty"`
}

// Resolver reads persisted order snapshots and builds confirmation views.
// It never mutates a snapshot.
type Resolver struct {
	store  store.OrderStore
	cart   CartClearer
	logger *zap.Logger
}

func NewResolver(orderStore store.OrderStore, cart CartClearer, logger *zap.Logger) *Resolver {
	return &Resolver{store: orderStore, cart: cart, logger: logger}
}

// Resolve loads the snapshot for an order id with a one-level fallback
// chain: exact key, then the most recent order id, then not found. The
// fallback hit is served but logged as degraded.
func (r *Resolver) Resolve(ctx context.Context, orderID string) (*View, error) {
	snapshot, err := r.store.Load(ctx, orderID)
	degraded := false
	if err != nil {
		lastID, lastErr := r.store.LoadLastOrderID(ctx)
		if lastErr != nil || lastID == "" || lastID == orderID {
			return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
		}
		snapshot, err = r.store.Load(ctx, lastID)
		if err != nil {
			return nil, &errors.ErrNotFound{Resource: "order", ID: orderID}
		}
		degraded = true
		r.logger.Warn("Order resolved via last-order fallback",
			zap.String("requested_id", orderID),
			zap.String("resolved_id", lastID),
		)
	}

	view := buildView(snapshot)
	view.Degraded = degraded

	cleared, err := r.consumeClearCartFlag(ctx, snapshot)
	if err == nil {
		view.CartCleared = cleared
	}

	return view, nil
}

// consumeClearCartFlag honors the at-most-once cart clear left behind by a
// hosted-redirect submission. Failures here never fail the view.
func (r *Resolver) consumeClearCartFlag(ctx context.Context, snapshot *domain.OrderSnapshot) (bool, error) {
	set, err := r.store.ConsumeClearCartFlag(ctx, snapshot.OrderID)
	if err != nil {
		r.logger.Warn("Failed to consume clear-cart flag",
			zap.String("order_id", snapshot.OrderID), zap.Error(err))
		return false, err
	}
	if !set {
		return false, nil
	}
	if r.cart != nil && snapshot.UserID != "" {
		if err := r.cart.ClearSelected(ctx, snapshot.UserID); err != nil {
			r.logger.Warn("Failed to clear cart selection",
				zap.String("order_id", snapshot.OrderID), zap.Error(err))
		}
	}
	return true, nil
}

func buildView(snapshot *domain.OrderSnapshot) *View {
	return &View{
		OrderID:        snapshot.OrderID,
		Status:         snapshot.Status,
		Date:           snapshot.Date,
		Currency:       snapshot.Currency,
		Total:          snapshot.Total,
		PaymentLabel:   snapshot.PaymentLabel,
		Shipping:       snapshot.Shipping,
		DeliveryMethod: snapshot.DeliveryMethod,
		Guidance:       guidanceFor(snapshot.DeliveryMethod),
		SellerGroups:   groupBySeller(snapshot),
	}
}

func guidanceFor(method domain.DeliveryMethod) string {
	if method == domain.DeliveryWithSeller {
		return guidanceWithSeller
	}
	return guidanceArranged
}

// MatchSeller finds the contact block for an item's seller by exact display
// name. This heuristic mirrors how the snapshot is written; it is kept
// deliberately simple and visible rather than strengthened, since the
// stable matching key is not settled.
func MatchSeller(item domain.LineItem, sellers []domain.SellerContact) (int, bool) {
	for i, seller := range sellers {
		if seller.Name != "" && seller.Name == item.Seller.Name {
			return i, true
		}
	}
	return -1, false
}

// groupBySeller buckets items under their seller's contact block, with a
// distinct fallback bucket for items matching no seller. Items are never
// dropped.
func groupBySeller(snapshot *domain.OrderSnapshot) []SellerGroup {
	groups := make([]SellerGroup, len(snapshot.Sellers))
	for i, seller := range snapshot.Sellers {
		groups[i] = SellerGroup{Contact: contactView(seller)}
	}

	var unmatched []domain.LineItem
	for _, item := range snapshot.Items {
		if i, ok := MatchSeller(item, snapshot.Sellers); ok {
			groups[i].Items = append(groups[i].Items, item)
		} else {
			unmatched = append(unmatched, item)
		}
	}

	if len(unmatched) > 0 {
		groups = append(groups, SellerGroup{
			Contact: ContactView{
				Name:    UnmatchedBucketName,
				Phone:   notListed,
				Email:   notListed,
				Address: noAddress,
			},
			Items: unmatched,
		})
	}
	return groups
}

func contactView(seller domain.SellerContact) ContactView {
	view := ContactView{
		Name:    seller.Name,
		Phone:   seller.Phone,
		Email:   seller.Email,
		Address: seller.Address,
	}
	if view.Name == "" {
		view.Name = notListed
	}
	if view.Phone == "" {
		view.Phone = notListed
	}
	if view.Email == "" {
		view.Email = notListed
	}
	if view.Address == "" {
		view.Address = noAddress
	}
	return view
}
