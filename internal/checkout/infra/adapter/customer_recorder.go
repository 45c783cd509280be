package adapter

import (
	"time"

	backofficeapp "github.com/nordiclux/storefront/internal/backoffice/app"
)

// CustomerRoster adapts the back-office customer store to the payment step's
// recorder interface.
type CustomerRoster struct {
	customers *backofficeapp.Customers
}

func NewCustomerRoster(customers *backofficeapp.Customers) *CustomerRoster {
	return &CustomerRoster{customers: customers}
}

func (r *CustomerRoster) RecordOrder(name, email string, total float64, at time.Time) error {
	_, err := r.customers.RecordOrder(name, email, total, at)
	return err
}
