package checkout

import (
	"sync"

	"github.com/dukamarket/checkout-api/internal/currency"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/internal/validation"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// Session is the in-memory state of one checkout wizard attempt. It owns
// the entered shipping, delivery and payment data for its whole lifetime;
// the data is frozen when the payload is built and destroyed when the
// session is dropped after success.
type Session struct {
	ID       string
	UserID   string
	Currency currency.Code

	mu             sync.Mutex
	step           domain.CheckoutStep
	data           domain.WizardData
	items          []domain.LineItem
	subtotal       int64
	failureMessage string
	inFlight       bool
}

// State is a read-only copy of the session handed to the API layer.
type State struct {
	ID             string              `json:"id"`
	Step           domain.CheckoutStep `json:"step"`
	Data           domain.WizardData   `json:"data"`
	Items          []domain.LineItem   `json:"items"`
	Subtotal       int64               `json:"subtotal"`
	Currency       string              `json:"currency"`
	CanAdvance     bool                `json:"can_advance"`
	InFlight       bool                `json:"in_flight"`
	FailureMessage string              `json:"failure_message,omitempty"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:             s.ID,
		Step:           s.step,
		Data:           s.data,
		Items:          append([]domain.LineItem(nil), s.items...),
		Subtotal:       s.subtotal,
		Currency:       string(s.Currency),
		CanAdvance:     validation.CanAdvance(s.step, s.data),
		InFlight:       s.inFlight,
		FailureMessage: s.failureMessage,
	}
}

// SetShipping updates the shipping fields. A country change always resets
// the city first; the incoming city is then kept only when it belongs to
// the new country's city list.
func (s *Session) SetShipping(addr domain.ShippingAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr.Country != s.data.Shipping.Country {
		city := addr.City
		addr.City = ""
		if validation.CityInCountry(addr.Country, city) {
			addr.City = city
		}
	}
	s.data.Shipping = addr
}

// SetPayment updates the delivery choice, payment selection, its details
// and the terms flag. Exactly one payment selection is active at a time.
func (s *Session) SetPayment(delivery domain.DeliveryMethod, method domain.PaymentMethod, details domain.PaymentDetails, terms bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Delivery = delivery
	s.data.Payment = method
	s.data.Details = details
	s.data.TermsAccepted = terms
}

// Advance moves the wizard one step forward. The move is gated by field
// validation; an incomplete step returns *errors.ErrStepIncomplete and
// leaves the session unchanged.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next domain.CheckoutStep
	switch s.step {
	case domain.StepShipping:
		next = domain.StepPayment
	case domain.StepPayment:
		next = domain.StepReview
	default:
		return &errors.ErrInvalidStateTransition{From: string(s.step), To: "forward"}
	}

	if !validation.CanAdvance(s.step, s.data) {
		return &errors.ErrStepIncomplete{Step: string(s.step)}
	}

	s.step = next
	return nil
}

// Back moves the wizard one step backward. Always permitted from payment
// and review; entered data is never cleared.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case domain.StepPayment:
		s.step = domain.StepShipping
	case domain.StepReview:
		s.step = domain.StepPayment
	default:
		return &errors.ErrInvalidStateTransition{From: string(s.step), To: "backward"}
	}
	return nil
}

// Retry returns a failed session to review for another attempt. Field data
// survived the failure unchanged.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.step.CanTransitionTo(domain.StepReview) {
		return &errors.ErrInvalidStateTransition{From: string(s.step), To: string(domain.StepReview)}
	}
	s.step = domain.StepReview
	s.failureMessage = ""
	return nil
}

// beginSubmit flips the session into the submitting state. The in-flight
// flag is the only concurrency guard: a second submit while one is in
// flight is rejected here, before any network call.
func (s *Session) beginSubmit() (domain.WizardData, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return domain.WizardData{}, 0, &errors.ErrSubmitInFlight{}
	}
	if s.step != domain.StepReview {
		return domain.WizardData{}, 0, &errors.ErrInvalidStateTransition{
			From: string(s.step), To: string(domain.StepSubmitting),
		}
	}
	// Submission is the final validation point; re-run the payment gate.
	if !validation.PaymentComplete(s.data) {
		return domain.WizardData{}, 0, &errors.ErrStepIncomplete{Step: string(domain.StepPayment)}
	}

	s.inFlight = true
	s.step = domain.StepSubmitting
	s.failureMessage = ""
	return s.data, s.subtotal, nil
}

// fail records a submission failure. The session keeps all entered data so
// the user can return to review and retry.
func (s *Session) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.step = domain.StepFailed
	s.failureMessage = message
}

func (s *Session) succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.step = domain.StepSucceeded
}

func (s *Session) itemsCopy() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LineItem(nil), s.items...)
}
