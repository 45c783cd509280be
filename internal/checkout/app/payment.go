package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/nordiclux/storefront/internal/checkout/domain"
	orderdomain "github.com/nordiclux/storefront/internal/order/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

// paymentDelay simulates the gateway round trip; the outcome is always
// success.
const paymentDelay = 2 * time.Second

var (
	ErrNoOrder     = errors.New("no order found")
	ErrInvalidCard = errors.New("invalid card details")
)

// OrderRecorder is the slice of the invoice store the payment step needs.
type OrderRecorder interface {
	Add(inv orderdomain.Invoice) (orderdomain.Invoice, error)
}

// CustomerRecorder mirrors paid orders into the customer roster.
type CustomerRecorder interface {
	RecordOrder(name, email string, total float64, at time.Time) error
}

type Confirmation struct {
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
}

// Payment confirms the draft parked by the wizard: it validates card details
// when the card method was chosen, waits out the simulated processing delay,
// records a paid invoice and empties the cart.
type Payment struct {
	session   kvstore.Store
	orders    OrderRecorder
	customers CustomerRecorder
	cart      CartReader
	log       *slog.Logger

	delay time.Duration
}

// NewPayment builds the payment step. customers may be nil when no roster is
// wired in.
func NewPayment(session kvstore.Store, orders OrderRecorder, customers CustomerRecorder, cart CartReader, log *slog.Logger) *Payment {
	return &Payment{
		session:   session,
		orders:    orders,
		customers: customers,
		cart:      cart,
		log:       log,
		delay:     paymentDelay,
	}
}

func (p *Payment) Confirm(ctx context.Context, card domain.Card) (Confirmation, error) {
	raw, err := p.session.Get(sessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Confirmation{}, ErrNoOrder
	}
	if err != nil {
		return Confirmation{}, fmt.Errorf("load order draft: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Confirmation{}, fmt.Errorf("load order draft: %w", err)
	}

	if draft.PaymentMethod == domain.PaymentCard {
		if err := validateCard(card); err != nil {
			return Confirmation{}, err
		}
	}

	if err := wait(ctx, p.delay); err != nil {
		return Confirmation{}, err
	}

	items := make([]orderdomain.LineItem, 0, len(draft.Items))
	for _, line := range draft.Items {
		items = append(items, orderdomain.LineItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}

	inv, err := p.orders.Add(orderdomain.Invoice{
		OrderNumber:   newOrderNumber(time.Now()),
		CustomerName:  strings.TrimSpace(draft.Customer.FirstName + " " + draft.Customer.LastName),
		CustomerEmail: draft.Customer.Email,
		Items:         items,
		Subtotal:      draft.Totals.Subtotal,
		Tax:           draft.Totals.Tax,
		Shipping:      draft.Totals.Shipping,
		Total:         draft.Totals.Total,
		Status:        orderdomain.StatusPending,
		PaymentStatus: orderdomain.PaymentPaid,
	})
	if err != nil {
		return Confirmation{}, fmt.Errorf("record invoice: %w", err)
	}

	if p.customers != nil {
		if err := p.customers.RecordOrder(inv.CustomerName, inv.CustomerEmail, inv.Total, time.Now()); err != nil && p.log != nil {
			p.log.Warn("could not update customer record", slog.Any("err", err))
		}
	}

	if err := p.cart.Clear(); err != nil && p.log != nil {
		p.log.Warn("could not clear cart after payment", slog.Any("err", err))
	}
	if err := p.session.Delete(sessionKey); err != nil && p.log != nil {
		p.log.Warn("could not clear order draft", slog.Any("err", err))
	}

	if p.log != nil {
		p.log.Info("payment confirmed",
			slog.String("order", inv.OrderNumber),
			slog.Float64("total", inv.Total))
	}
	return Confirmation{OrderNumber: inv.OrderNumber, Total: inv.Total}, nil
}

func validateCard(card domain.Card) error {
	if card.Number == "" || card.Name == "" || card.Expiry == "" || card.CVV == "" {
		return fmt.Errorf("%w: please fill in all card details", ErrInvalidCard)
	}
	digits := strings.ReplaceAll(card.Number, " ", "")
	if len(digits) < 16 {
		return fmt.Errorf("%w: please enter a valid card number", ErrInvalidCard)
	}
	return nil
}

// newOrderNumber derives the customer-facing number from the last 8 digits of
// the millisecond timestamp.
func newOrderNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return "ORD-" + millis
}
