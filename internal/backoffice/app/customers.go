package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nordiclux/storefront/internal/backoffice/domain"
	"github.com/nordiclux/storefront/internal/ident"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

const customersKey = "admin_customers"

type Customers struct {
	mu    sync.Mutex
	items []domain.Customer
	store kvstore.Store
	log   *slog.Logger
}

func NewCustomers(store kvstore.Store, log *slog.Logger) *Customers {
	return &Customers{store: store, log: log}
}

func (c *Customers) Load() error {
	if c.store == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.store.Get(customersKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}

	var items []domain.Customer
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Error("stored customers are unreadable, starting empty", slog.Any("err", err))
		return nil
	}
	c.items = items
	return nil
}

// Add records a new customer. The order counters always start at zero, no
// matter what the caller supplies.
func (c *Customers) Add(cust domain.Customer) (domain.Customer, error) {
	if strings.TrimSpace(cust.Name) == "" || strings.TrimSpace(cust.Email) == "" {
		return domain.Customer{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cust.ID = ident.Next()
	cust.Orders = 0
	cust.TotalSpent = 0
	cust.LastOrderAt = nil
	cust.CreatedAt = time.Now()
	c.items = append(c.items, cust)

	return cust, c.persistLocked()
}

func (c *Customers) Update(id string, patch domain.CustomerPatch) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			patch.Apply(&c.items[i])
			return c.items[i], c.persistLocked()
		}
	}
	return domain.Customer{}, ErrNotFound
}

// RecordOrder bumps the customer's counters after a paid order, creating the
// customer record from the order details when the email is new.
func (c *Customers) RecordOrder(name, email string, total float64, at time.Time) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if strings.EqualFold(c.items[i].Email, email) {
			c.items[i].Orders++
			c.items[i].TotalSpent += total
			c.items[i].LastOrderAt = &at
			return c.items[i], c.persistLocked()
		}
	}

	cust := domain.Customer{
		ID:          ident.Next(),
		Email:       email,
		Name:        name,
		Orders:      1,
		TotalSpent:  total,
		CreatedAt:   at,
		LastOrderAt: &at,
	}
	c.items = append(c.items, cust)
	return cust, c.persistLocked()
}

func (c *Customers) Get(id string) (domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Customer{}, ErrNotFound
}

func (c *Customers) List() []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Customer, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Customers) persistLocked() error {
	if c.store == nil {
		return nil
	}
	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := c.store.Put(customersKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
