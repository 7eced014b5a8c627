package checkout

import (
	"context"
	goerrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/currency"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/internal/gateway"
	"github.com/dukamarket/checkout-api/internal/store"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// VerificationAction is the gate action checked before checkout starts.
const VerificationAction = "buy"

// Service orchestrates checkout sessions: it gates the wizard start,
// holds the live sessions, and runs the submission against the payment
// gateway and the order store.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store    store.OrderStore
	gateway  PaymentGateway
	cart     Cart
	profiles ProfileProvider
	gate     VerificationGate
	logger   *zap.Logger
}

func NewService(
	orderStore store.OrderStore,
	pg PaymentGateway,
	cart Cart,
	profiles ProfileProvider,
	gate VerificationGate,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions: make(map[string]*Session),
		store:    orderStore,
		gateway:  pg,
		cart:     cart,
		profiles: profiles,
		gate:     gate,
		logger:   logger,
	}
}

// Begin starts a new wizard session for the user. Hard preconditions, in
// order: the user must be signed in, must pass the verification gate for
// the buy action, and must have items selected in the cart. None of these
// are recoverable validation errors; the caller redirects instead.
func (s *Service) Begin(ctx context.Context, userID string, code currency.Code) (*Session, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &errors.ErrUnauthorized{Message: "sign in to check out"}
	}

	verified, err := s.gate.CheckVerification(ctx, userID, VerificationAction)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, &errors.ErrVerificationRequired{Action: VerificationAction}
	}

	if !currency.Supported(code) {
		return nil, &errors.ErrUnsupportedCurrency{Code: string(code)}
	}

	selected, err := s.cart.Selected(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		// Nothing selected: whether the cart is empty or merely has no
		// selection, checkout must not start.
		return nil, &errors.ErrSelectionRequired{}
	}

	var subtotal int64
	for _, item := range selected {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	session := &Session{
		ID:       uuid.New().String(),
		UserID:   userID,
		Currency: code,
		step:     domain.StepShipping,
		items:    selected,
		subtotal: subtotal,
		data: domain.WizardData{
			Shipping: domain.ShippingAddress{
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				Email:     profile.Email,
				Phone:     profile.Phone,
			},
			Delivery: domain.DeliveryArranged,
		},
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Checkout session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(selected)),
		zap.Int64("subtotal", subtotal),
		zap.String("currency", string(code)),
	)
	return session, nil
}

// Get returns a live session by id.
func (s *Service) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "checkout session", ID: sessionID}
	}
	return session, nil
}

// SubmitResult tells the caller how to proceed after a successful
// submission: follow RedirectURL to the hosted payment page, or navigate
// to the confirmation route with OrderID.
type SubmitResult struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Message       string `json:"message"`
}

// Submit runs one submission attempt. Ordering is the governing invariant
// here: the snapshot write must complete before any redirect is reported,
// and the cart selection is cleared only after that write. A processor or
// mapping failure returns the session to a retryable failed state with the
// entered data intact.
func (s *Service) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	session, err := s.Get(sessionID)
	if err != nil {
		return nil, err
	}

	data, subtotal, err := session.beginSubmit()
	if err != nil {
		return nil, err
	}

	orderRef := uuid.New().String()

	payload, err := gateway.BuildPayload(data, subtotal, session.Currency, orderRef)
	if err != nil {
		// Mapping errors are programmer-facing: log the specific cause,
		// show the user the generic message.
		s.logger.Error("Failed to build checkout payload",
			zap.String("session_id", sessionID), zap.Error(err))
		session.fail(gateway.FallbackMessage)
		return nil, err
	}

	resp, err := s.gateway.Submit(ctx, payload)
	if err != nil {
		message := gateway.FallbackMessage
		var procErr *errors.ErrProcessor
		if goerrors.As(err, &procErr) {
			message = procErr.Message
		}
		s.logger.Warn("Payment submission failed",
			zap.String("session_id", sessionID), zap.Error(err))
		session.fail(message)
		return nil, err
	}

	orderID := resp.OrderID
	if orderID == "" {
		orderID = orderRef
	}

	snapshot := s.buildSnapshot(session, data, payload, resp, orderID)

	hosted := resp.PaymentURL != ""

	if err := s.store.Save(ctx, snapshot); err != nil {
		// Payment went through but the confirmation record could not be
		// written. The cart must not be cleared now, the order would be
		// unrecoverable on refresh. The outcome itself is still a success.
		s.logger.Error("Order snapshot write failed after successful payment",
			zap.String("order_id", orderID), zap.Error(err))
	} else {
		if hosted {
			// The hosted redirect leaves our surface; the confirmation
			// resolver consumes this flag once when the user lands back.
			if err := s.store.SetClearCartFlag(ctx, orderID); err != nil {
				s.logger.Warn("Failed to set clear-cart flag",
					zap.String("order_id", orderID), zap.Error(err))
			}
		} else {
			if err := s.cart.ClearSelected(ctx, session.UserID); err != nil {
				s.logger.Warn("Failed to clear cart selection",
					zap.String("order_id", orderID), zap.Error(err))
			}
		}
	}

	session.succeed()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	message := resp.Message
	if message == "" {
		message = "Order placed successfully"
	}

	s.logger.Info("Checkout submitted",
		zap.String("session_id", sessionID),
		zap.String("order_id", orderID),
		zap.Bool("hosted_redirect", hosted),
		zap.Int64("amount", payload.Amount),
	)

	return &SubmitResult{
		OrderID:       orderID,
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.PaymentURL,
		Message:       message,
	}, nil
}

// buildSnapshot denormalizes everything the confirmation view needs so it
// renders without a further network round trip.
func (s *Service) buildSnapshot(
	session *Session,
	data domain.WizardData,
	payload *domain.CheckoutPayload,
	resp *domain.CheckoutResponse,
	orderID string,
) *domain.OrderSnapshot {
	items := session.itemsCopy()

	// One contact block per distinct seller name, in item order.
	var sellers []domain.SellerContact
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Seller.Name == "" || seen[item.Seller.Name] {
			continue
		}
		seen[item.Seller.Name] = true
		sellers = append(sellers, item.Seller)
	}

	return &domain.OrderSnapshot{
		OrderID:        orderID,
		UserID:         session.UserID,
		TransactionID:  resp.TransactionID,
		Status:         "confirmed",
		Date:           time.Now().UTC(),
		Currency:       payload.Currency,
		Total:          payload.Amount,
		PaymentLabel:   data.Payment.Label(),
		Shipping:       data.Shipping,
		DeliveryMethod: data.Delivery,
		Items:          items,
		Sellers:        sellers,
	}
}
