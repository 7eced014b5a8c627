package errors

import "fmt"

// ErrNotFound indicates a requested resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ErrUnauthorized indicates the caller is not signed in or presented
// invalid credentials.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrVerificationRequired indicates the signed-in user has not passed the
// verification gate for the attempted action.
type ErrVerificationRequired struct {
	Action string
}

func (e *ErrVerificationRequired) Error() string {
	return fmt.Sprintf("verification required for action %q", e.Action)
}

// ErrSelectionRequired indicates checkout was started with a non-empty cart
// but no items marked as selected. The caller must send the user back to
// item selection; this is a hard precondition, not a validation error.
type ErrSelectionRequired struct{}

func (e *ErrSelectionRequired) Error() string {
	return "no cart items selected for checkout"
}

// ErrInvalidStateTransition indicates an attempted checkout step change the
// state machine does not permit.
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// ErrStepIncomplete indicates a forward transition attempted while the
// current step's required fields are not all filled. Rendered inline,
// never sent to the network.
type ErrStepIncomplete struct {
	Step string
}

func (e *ErrStepIncomplete) Error() string {
	return fmt.Sprintf("step %s is incomplete", e.Step)
}

// ErrUnsupportedCurrency indicates a currency code missing from the exchange
// rate table. Callers must not fall back to a default rate.
type ErrUnsupportedCurrency struct {
	Code string
}

func (e *ErrUnsupportedCurrency) Error() string {
	return fmt.Sprintf("unsupported currency %q", e.Code)
}

// ErrUnmappedCode indicates a delivery or payment method choice with no
// backend code mapping. This aborts the submission attempt.
type ErrUnmappedCode struct {
	Kind  string
	Value string
}

func (e *ErrUnmappedCode) Error() string {
	return fmt.Sprintf("no backend %s code for %q", e.Kind, e.Value)
}

// ErrProcessor carries the payment processor's failure message, or the
// generic fallback when the processor gave none.
type ErrProcessor struct {
	Message string
}

func (e *ErrProcessor) Error() string {
	return e.Message
}

// ErrSubmitInFlight indicates a second submission attempt while one is
// already in flight.
type ErrSubmitInFlight struct{}

func (e *ErrSubmitInFlight) Error() string {
	return "a submission is already in progress"
}
