package domain

// Step is the checkout wizard position. The wizard only moves one step at a
// time and never past review.
type Step int

const (
	StepCustomerInfo Step = iota + 1
	StepShippingAddress
	StepReviewOrder
)

func (s Step) String() string {
	switch s {
	case StepCustomerInfo:
		return "customer_info"
	case StepShippingAddress:
		return "shipping_address"
	case StepReviewOrder:
		return "review_order"
	}
	return "unknown"
}

type CustomerInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// Cost is the flat shipping fee for the method.
func (m ShippingMethod) Cost() float64 {
	if m == ShippingExpress {
		return 15.00
	}
	return 5.00
}

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentPaypal || m == PaymentBankTransfer
}

// TaxRate is applied to the subtotal only, never to shipping.
const TaxRate = 0.10

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func ComputeTotals(subtotal float64, method ShippingMethod) Totals {
	shipping := method.Cost()
	tax := subtotal * TaxRate
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// DraftLine is a cart line frozen into the order draft.
type DraftLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Image     string  `json:"image,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Draft is the placed-but-unpaid order handed from the wizard to the payment
// step through short-lived session storage.
type Draft struct {
	Customer       CustomerInfo    `json:"customer"`
	Address        ShippingAddress `json:"address"`
	ShippingMethod ShippingMethod  `json:"shippingMethod"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Items          []DraftLine     `json:"items"`
	Totals         Totals          `json:"totals"`
}

type Card struct {
	Number string `json:"cardNumber"`
	Name   string `json:"cardName"`
	Expiry string `json:"expiryDate"`
	CVV    string `json:"cvv"`
}
