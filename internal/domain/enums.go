package domain

// CheckoutStep represents the wizard's position in the checkout flow
type CheckoutStep string

const (
	StepShipping   CheckoutStep = "SHIPPING"
	StepPayment    CheckoutStep = "PAYMENT"
	StepReview     CheckoutStep = "REVIEW"
	StepSubmitting CheckoutStep = "SUBMITTING"
	StepSucceeded  CheckoutStep = "SUCCEEDED"
	StepFailed     CheckoutStep = "FAILED"
)

// IsValid checks if the checkout step is valid
func (s CheckoutStep) IsValid() bool {
	switch s {
	case StepShipping, StepPayment, StepReview, StepSubmitting, StepSucceeded, StepFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a step transition is valid. Forward moves are
// additionally gated by field validation; backward moves are always allowed
// and never clear entered data.
func (s CheckoutStep) CanTransitionTo(next CheckoutStep) bool {
	switch s {
	case StepShipping:
		return next == StepPayment
	case StepPayment:
		return next == StepShipping || next == StepReview
	case StepReview:
		return next == StepPayment || next == StepSubmitting
	case StepSubmitting:
		return next == StepSucceeded || next == StepFailed
	case StepFailed:
		// The user may return to review and retry with data intact.
		return next == StepReview
	case StepSucceeded:
		return false // Terminal state
	default:
		return false
	}
}

// DeliveryMethod is the UI-level delivery choice. It is mapped to a
// backend-recognized code at payload-build time.
type DeliveryMethod string

const (
	DeliveryArranged   DeliveryMethod = "delivery"
	DeliveryWithSeller DeliveryMethod = "pickup"
)

// PaymentMethodType discriminates which PaymentDetails branch is active
type PaymentMethodType string

const (
	PaymentTypeMobile PaymentMethodType = "mobile"
	PaymentTypeCard   PaymentMethodType = "card"
)

// PaymentMethod is one entry of the fixed payment method catalog
type PaymentMethod string

const (
	PaymentMPesa       PaymentMethod = "m-pesa"
	PaymentTigoPesa    PaymentMethod = "tigo-pesa"
	PaymentAirtelMoney PaymentMethod = "airtel-money"
	PaymentCard        PaymentMethod = "card"
)

// IsValid checks if the payment method is part of the catalog
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMPesa, PaymentTigoPesa, PaymentAirtelMoney, PaymentCard:
		return true
	default:
		return false
	}
}

// Type returns the details discriminant for the method
func (m PaymentMethod) Type() PaymentMethodType {
	if m == PaymentCard {
		return PaymentTypeCard
	}
	return PaymentTypeMobile
}

// Label returns the human-readable name shown on the confirmation view
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMPesa:
		return "M-Pesa"
	case PaymentTigoPesa:
		return "Tigo Pesa"
	case PaymentAirtelMoney:
		return "Airtel Money"
	case PaymentCard:
		return "Credit / Debit Card"
	default:
		return string(m)
	}
}
