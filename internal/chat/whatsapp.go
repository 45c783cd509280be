// Package chat builds WhatsApp deep links for the storefront's "check with
// WhatsApp" buttons.
package chat

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultNumber is the store's WhatsApp business number.
const DefaultNumber = "94770130299"

// Line is one cart position rendered into the order message.
type Line struct {
	Name      string
	Brand     string
	Quantity  int
	UnitPrice float64
}

// WhatsApp renders inquiry and order messages and wraps them into
// api.whatsapp.com links.
type WhatsApp struct {
	number string
}

func New(number string) *WhatsApp {
	if number == "" {
		number = DefaultNumber
	}
	return &WhatsApp{number: number}
}

// ProductInquiry links to a chat pre-filled with a question about one product.
func (w *WhatsApp) ProductInquiry(name, brand string, price float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I'm interested in *%s*", name)
	if brand != "" {
		fmt.Fprintf(&b, " by %s", brand)
	}
	fmt.Fprintf(&b, " ($%.2f)", price)
	b.WriteString(". Can you provide more information about this product?")
	return w.link(b.String())
}

// CartOrder links to a chat pre-filled with the whole cart as a numbered
// order request.
func (w *WhatsApp) CartOrder(lines []Line, total float64) string {
	var b strings.Builder
	b.WriteString("Hello! I would like to order the following items:\n\n")
	for i, l := range lines {
		fmt.Fprintf(&b, "%d. *%s*", i+1, l.Name)
		if l.Brand != "" {
			fmt.Fprintf(&b, " by %s", l.Brand)
		}
		fmt.Fprintf(&b, "\n   Quantity: %d\n   Price: $%.2f each\n   Subtotal: $%.2f\n\n",
			l.Quantity, l.UnitPrice, l.UnitPrice*float64(l.Quantity))
	}
	fmt.Fprintf(&b, "*Total: $%.2f*\n\n", total)
	b.WriteString("Please confirm availability and proceed with the order.")
	return w.link(b.String())
}

func (w *WhatsApp) link(message string) string {
	// Spaces must travel as %20: WhatsApp renders a literal plus otherwise.
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://api.whatsapp.com/send/?phone=%s&text=%s&type=phone_number&app_absent=0", w.number, text)
}
