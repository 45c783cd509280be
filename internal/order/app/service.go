package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nordiclux/storefront/internal/ident"
	"github.com/nordiclux/storefront/internal/order/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

const storageKey = "admin_invoices"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPersist      = errors.New("persist failed")
)

// Service is the invoice store backing the admin orders screen.
type Service struct {
	mu       sync.Mutex
	invoices []domain.Invoice
	store    kvstore.Store
	log      *slog.Logger
}

func NewService(store kvstore.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Load() error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(storageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load invoices: %w", err)
	}

	var invoices []domain.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		s.log.Error("stored invoices are unreadable, starting empty", slog.Any("err", err))
		return nil
	}
	s.invoices = invoices
	return nil
}

// Add records a new invoice with a fresh identifier and timestamps. Statuses
// default to pending when unset.
func (s *Service) Add(inv domain.Invoice) (domain.Invoice, error) {
	if inv.Status == "" {
		inv.Status = domain.StatusPending
	}
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = domain.PaymentPending
	}
	if !inv.Status.Valid() || !inv.PaymentStatus.Valid() {
		return domain.Invoice{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	inv.ID = ident.Next()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	s.invoices = append(s.invoices, inv)

	return inv, s.persistLocked()
}

func (s *Service) Update(id string, patch domain.Patch) (domain.Invoice, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Invoice{}, ErrInvalidInput
	}
	if patch.PaymentStatus != nil && !patch.PaymentStatus.Valid() {
		return domain.Invoice{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == id {
			patch.Apply(&s.invoices[i], time.Now())
			return s.invoices[i], s.persistLocked()
		}
	}
	return domain.Invoice{}, ErrNotFound
}

func (s *Service) Get(id string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return domain.Invoice{}, ErrNotFound
}

func (s *Service) List() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *Service) persistLocked() error {
	if s.store == nil {
		return nil
	}
	raw, err := json.Marshal(s.invoices)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.store.Put(storageKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
