package checkout

import (
	"context"

	"github.com/dukamarket/checkout-api/internal/domain"
)

// Cart is the shared cart collaborator. Checkout works on the selected
// subset and clears it only after a snapshot has been durably written.
type Cart interface {
	Items(ctx context.Context, userID string) ([]domain.LineItem, error)
	Selected(ctx context.Context, userID string) ([]domain.LineItem, error)
	ClearSelected(ctx context.Context, userID string) error
}

// ProfileProvider is the auth collaborator. Get returns
// *errors.ErrUnauthorized when the user is not signed in.
type ProfileProvider interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// VerificationGate decides whether the user may perform an action.
// Checkout refuses to start when the "buy" check fails.
type VerificationGate interface {
	CheckVerification(ctx context.Context, userID, action string) (bool, error)
}

// PaymentGateway submits an assembled payload to the payment processor.
type PaymentGateway interface {
	Submit(ctx context.Context, payload *domain.CheckoutPayload) (*domain.CheckoutResponse, error)
}
