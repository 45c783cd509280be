package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nordiclux/storefront/internal/checkout/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

// sessionKey holds the placed order draft between the wizard and the payment
// step. It is deleted once payment confirms.
const sessionKey = "orderData"

// placeOrderDelay simulates the order-submission round trip.
const placeOrderDelay = 1500 * time.Millisecond

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("missing required fields")
	ErrNotAtReview   = errors.New("order can only be placed from the review step")
	ErrInvalidInput  = errors.New("invalid input")
)

// CartReader is the slice of the cart store the checkout flow needs.
type CartReader interface {
	Lines() []domain.DraftLine
	Total() float64
	Clear() error
}

// Wizard is the linear 3-step checkout state machine. Continue advances one
// step only when the current step's required fields are all present; Back
// returns one step.
type Wizard struct {
	mu sync.Mutex

	cart    CartReader
	session kvstore.Store
	log     *slog.Logger

	step           domain.Step
	customer       domain.CustomerInfo
	address        domain.ShippingAddress
	shippingMethod domain.ShippingMethod
	paymentMethod  domain.PaymentMethod

	delay time.Duration
}

func NewWizard(cart CartReader, session kvstore.Store, log *slog.Logger) *Wizard {
	return &Wizard{
		cart:           cart,
		session:        session,
		log:            log,
		step:           domain.StepCustomerInfo,
		shippingMethod: domain.ShippingStandard,
		paymentMethod:  domain.PaymentCard,
		delay:          placeOrderDelay,
	}
}

func (w *Wizard) Step() domain.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) SetCustomer(info domain.CustomerInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.customer = info
}

func (w *Wizard) SetAddress(addr domain.ShippingAddress) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.address = addr
}

func (w *Wizard) SetShippingMethod(m domain.ShippingMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: shipping method %q", ErrInvalidInput, m)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shippingMethod = m
	return nil
}

func (w *Wizard) SetPaymentMethod(m domain.PaymentMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: payment method %q", ErrInvalidInput, m)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paymentMethod = m
	return nil
}

// Next advances one step. The transition is blocked, and the wizard stays
// where it is, while any required field of the current step is empty.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case domain.StepCustomerInfo:
		c := w.customer
		if c.FirstName == "" || c.LastName == "" || c.Email == "" || c.Phone == "" {
			return fmt.Errorf("%w: please fill in all customer information fields", ErrMissingFields)
		}
		w.step = domain.StepShippingAddress
	case domain.StepShippingAddress:
		a := w.address
		if a.Address == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Country == "" {
			return fmt.Errorf("%w: please fill in all shipping address fields", ErrMissingFields)
		}
		w.step = domain.StepReviewOrder
	case domain.StepReviewOrder:
		// Terminal before the payment hand-off.
	}
	return nil
}

// Back returns one step, never before the first.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > domain.StepCustomerInfo {
		w.step--
	}
}

// Totals prices the cart as it stands: flat shipping by method, 10% tax on
// the subtotal.
func (w *Wizard) Totals() domain.Totals {
	w.mu.Lock()
	method := w.shippingMethod
	w.mu.Unlock()

	return domain.ComputeTotals(w.cart.Total(), method)
}

// PlaceOrder freezes the cart and the collected forms into an order draft,
// simulates the submission delay, and parks the draft in session storage for
// the payment step.
func (w *Wizard) PlaceOrder(ctx context.Context) (domain.Draft, error) {
	w.mu.Lock()
	if w.step != domain.StepReviewOrder {
		w.mu.Unlock()
		return domain.Draft{}, ErrNotAtReview
	}
	draft := domain.Draft{
		Customer:       w.customer,
		Address:        w.address,
		ShippingMethod: w.shippingMethod,
		PaymentMethod:  w.paymentMethod,
	}
	delay := w.delay
	w.mu.Unlock()

	draft.Items = w.cart.Lines()
	if len(draft.Items) == 0 {
		return domain.Draft{}, ErrEmptyCart
	}
	draft.Totals = domain.ComputeTotals(w.cart.Total(), draft.ShippingMethod)

	if err := wait(ctx, delay); err != nil {
		return domain.Draft{}, err
	}

	if w.session != nil {
		raw, err := json.Marshal(draft)
		if err != nil {
			return domain.Draft{}, fmt.Errorf("store order draft: %w", err)
		}
		if err := w.session.Put(sessionKey, raw); err != nil {
			return domain.Draft{}, fmt.Errorf("store order draft: %w", err)
		}
	}

	if w.log != nil {
		w.log.Info("order placed",
			slog.Float64("total", draft.Totals.Total),
			slog.Int("items", len(draft.Items)))
	}
	return draft, nil
}

// Reset returns the wizard to a blank first step, e.g. after payment.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.step = domain.StepCustomerInfo
	w.customer = domain.CustomerInfo{}
	w.address = domain.ShippingAddress{}
	w.shippingMethod = domain.ShippingStandard
	w.paymentMethod = domain.PaymentCard
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
