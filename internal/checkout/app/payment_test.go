package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordiclux/storefront/internal/checkout/domain"
	orderapp "github.com/nordiclux/storefront/internal/order/app"
	"github.com/nordiclux/storefront/pkg/kvstore"
	"github.com/nordiclux/storefront/pkg/logger"
)

func validCard() domain.Card {
	return domain.Card{Number: "4242 4242 4242 4242", Name: "Jane Doe", Expiry: "12/28", CVV: "123"}
}

// placeDraft runs a full wizard pass so the session holds a real draft.
func placeDraft(t *testing.T, cart CartReader, session kvstore.Store, method domain.PaymentMethod) domain.Draft {
	t.Helper()
	w := newWizard(cart, session)
	w.SetCustomer(validCustomer())
	require.NoError(t, w.Next())
	w.SetAddress(validAddress())
	require.NoError(t, w.SetPaymentMethod(method))
	require.NoError(t, w.Next())
	draft, err := w.PlaceOrder(context.Background())
	require.NoError(t, err)
	return draft
}

func newPayment(session kvstore.Store, orders OrderRecorder, cart CartReader) *Payment {
	p := NewPayment(session, orders, nil, cart, logger.Nop())
	p.delay = 0
	return p
}

type recordedOrder struct {
	name  string
	email string
	total float64
}

type fakeRoster struct {
	orders []recordedOrder
}

func (f *fakeRoster) RecordOrder(name, email string, total float64, _ time.Time) error {
	f.orders = append(f.orders, recordedOrder{name: name, email: email, total: total})
	return nil
}

func TestConfirmRecordsPaidInvoice(t *testing.T) {
	session := kvstore.NewMemory()
	cart := cartWorth(100)
	orders := orderapp.NewService(kvstore.NewMemory(), logger.Nop())
	require.NoError(t, orders.Load())
	placeDraft(t, cart, session, domain.PaymentCard)

	p := newPayment(session, orders, cart)
	conf, err := p.Confirm(context.Background(), validCard())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(conf.OrderNumber, "ORD-"))
	assert.Equal(t, 115.0, conf.Total)

	invoices := orders.List()
	require.Len(t, invoices, 1)
	inv := invoices[0]
	assert.Equal(t, "Jane Doe", inv.CustomerName)
	assert.Equal(t, "jane@example.com", inv.CustomerEmail)
	assert.Equal(t, "pending", string(inv.Status))
	assert.Equal(t, "paid", string(inv.PaymentStatus))
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Serum", inv.Items[0].ProductName)

	assert.True(t, cart.cleared, "cart is emptied after payment")
	_, err = session.Get(sessionKey)
	assert.ErrorIs(t, err, kvstore.ErrNotFound, "draft is consumed")
}

func TestConfirmUpdatesCustomerRoster(t *testing.T) {
	session := kvstore.NewMemory()
	cart := cartWorth(100)
	orders := orderapp.NewService(kvstore.NewMemory(), logger.Nop())
	require.NoError(t, orders.Load())
	placeDraft(t, cart, session, domain.PaymentCard)

	roster := &fakeRoster{}
	p := newPayment(session, orders, cart)
	p.customers = roster

	_, err := p.Confirm(context.Background(), validCard())
	require.NoError(t, err)

	require.Len(t, roster.orders, 1)
	assert.Equal(t, "Jane Doe", roster.orders[0].name)
	assert.Equal(t, "jane@example.com", roster.orders[0].email)
	assert.Equal(t, 115.0, roster.orders[0].total)
}

func TestConfirmWithoutDraft(t *testing.T) {
	p := newPayment(kvstore.NewMemory(), nil, &fakeCart{})
	_, err := p.Confirm(context.Background(), validCard())
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestConfirmCardValidation(t *testing.T) {
	cases := []struct {
		name string
		card domain.Card
	}{
		{"missing name", domain.Card{Number: "4242424242424242", Expiry: "12/28", CVV: "123"}},
		{"missing cvv", domain.Card{Number: "4242424242424242", Name: "Jane", Expiry: "12/28"}},
		{"short number", domain.Card{Number: "4242 1234", Name: "Jane", Expiry: "12/28", CVV: "123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := kvstore.NewMemory()
			cart := cartWorth(50)
			placeDraft(t, cart, session, domain.PaymentCard)

			p := newPayment(session, nil, cart)
			_, err := p.Confirm(context.Background(), tc.card)
			assert.ErrorIs(t, err, ErrInvalidCard)
			assert.False(t, cart.cleared, "cart untouched on rejection")
		})
	}
}

func TestConfirmSkipsCardCheckForOtherMethods(t *testing.T) {
	session := kvstore.NewMemory()
	cart := cartWorth(50)
	orders := orderapp.NewService(kvstore.NewMemory(), logger.Nop())
	require.NoError(t, orders.Load())
	placeDraft(t, cart, session, domain.PaymentPaypal)

	p := newPayment(session, orders, cart)
	_, err := p.Confirm(context.Background(), domain.Card{})
	assert.NoError(t, err)
}

func TestConfirmHonorsCancellation(t *testing.T) {
	session := kvstore.NewMemory()
	cart := cartWorth(50)
	placeDraft(t, cart, session, domain.PaymentCard)

	p := newPayment(session, nil, cart)
	p.delay = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Confirm(ctx, validCard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderNumberFormat(t *testing.T) {
	now := time.UnixMilli(1735689600123)
	got := newOrderNumber(now)
	assert.Equal(t, "ORD-89600123", got)
	assert.Len(t, got, 12)
}
