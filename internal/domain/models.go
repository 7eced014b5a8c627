package domain

import "time"

// UserProfile is the signed-in user's identity as exposed by the auth
// collaborator. Used to pre-fill the shipping form.
type UserProfile struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ShippingAddress holds the step-one fields of the checkout wizard.
// City must belong to the selected country's city list; changing the
// country clears the city.
type ShippingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Instructions string `json:"instructions,omitempty"`
}

// PaymentDetails is a discriminated shape: the active branch is determined
// by the selected payment method's type. Mobile methods use MobileNumber;
// card uses the four card fields.
type PaymentDetails struct {
	MobileNumber string `json:"mobile_number,omitempty"`
	CardName     string `json:"card_name,omitempty"`
	CardNumber   string `json:"card_number,omitempty"`
	CardExpiry   string `json:"card_expiry,omitempty"`
	CardCVV      string `json:"card_cvv,omitempty"`
}

// SellerContact is a denormalized contact block attached to an order
// snapshot for post-purchase coordination.
type SellerContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is one priced cart entry. UnitPrice is in whole display-currency
// units; this domain has no minor units.
type LineItem struct {
	ProductID string        `json:"product_id"`
	Title     string        `json:"title"`
	UnitPrice int64         `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	ImageURL  string        `json:"image_url,omitempty"`
	Seller    SellerContact `json:"seller"`
}

// WizardData is everything the user enters across the wizard steps.
type WizardData struct {
	Shipping      ShippingAddress `json:"shipping"`
	Delivery      DeliveryMethod  `json:"delivery"`
	Payment       PaymentMethod   `json:"payment"`
	Details       PaymentDetails  `json:"details"`
	TermsAccepted bool            `json:"terms_accepted"`
}

// CheckoutPayload is the fully assembled, currency-normalized request sent
// to the payment processor. Single use, one per submission attempt.
type CheckoutPayload struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Street         string `json:"street"`
	City           string `json:"city"`
	Country        string `json:"country"`
	DeliveryCode   string `json:"delivery_method"`
	PaymentCode    string `json:"payment_method"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	AcceptedTerms  bool   `json:"accepted_terms"`
	OrderReference string `json:"order_reference"`
}

// CheckoutResponse is the processor's reply. Two success shapes exist:
// hosted redirect (PaymentURL set) and direct confirmation (no PaymentURL).
type CheckoutResponse struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"orderId,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	PaymentURL    string `json:"paymentUrl,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// OrderSnapshot is the durable, denormalized record written once after a
// successful submission and read by the confirmation resolver. It is never
// mutated after the write.
type OrderSnapshot struct {
	OrderID        string          `json:"order_id"`
	UserID         string          `json:"user_id,omitempty"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
	Currency       string          `json:"currency"`
	Total          int64           `json:"total"`
	PaymentLabel   string          `json:"payment_label"`
	Shipping       ShippingAddress `json:"shipping"`
	DeliveryMethod DeliveryMethod  `json:"delivery_method"`
	Items          []LineItem      `json:"items"`
	Sellers        []SellerContact `json:"sellers"`
}
