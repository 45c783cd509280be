package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nordiclux/storefront/internal/cart/domain"
	catalog "github.com/nordiclux/storefront/internal/catalog/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

const storageKey = "cart"

// ErrPersist marks a mutation that succeeded in memory but could not be
// mirrored to the durable store.
var ErrPersist = errors.New("persist failed")

// Service holds the shopper's cart lines and the drawer-open flag, mirroring
// every mutation to the durable store.
type Service struct {
	mu    sync.Mutex
	lines []domain.Line
	open  bool
	store kvstore.Store
	log   *slog.Logger
}

func NewService(store kvstore.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load rehydrates the cart. A malformed or non-list stored value is discarded
// and the cart starts empty; this is self-healing, not a fatal error.
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
		return fmt.Errorf("load cart: %w", err)
	}

	var lines []domain.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Error("invalid cart data in storage, resetting to empty cart", slog.Any("err", err))
		s.lines = nil
		if err := s.store.Delete(storageKey); err != nil {
			s.log.Warn("could not clear corrupt cart key", slog.Any("err", err))
		}
		return nil
	}
	s.lines = lines
	return nil
}

// Add puts quantity units of the product in the cart. An existing line for
// the same product is incremented; otherwise a new line is appended with a
// snapshot copy of the product. Adding opens the cart drawer. Stock is not
// checked here.
func (s *Service) Add(p catalog.Product, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity += quantity
			s.open = true
			return s.persistLocked()
		}
	}

	s.lines = append(s.lines, domain.Line{ProductID: p.ID, Product: p, Quantity: quantity})
	s.open = true
	return s.persistLocked()
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (s *Service) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(productID)
}

// SetQuantity replaces the line's quantity verbatim. A quantity of zero or
// less removes the line instead.
func (s *Service) SetQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(productID)
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			return s.persistLocked()
		}
	}
	return s.persistLocked()
}

// Clear empties the cart.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persistLocked()
}

// Total sums snapshot price times quantity over all lines. Later catalog
// price edits do not change it.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the badge count: the sum of line quantities.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Service) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Service) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *Service) removeLocked(productID string) error {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return s.persistLocked()
}

func (s *Service) persistLocked() error {
	if s.store == nil {
		return nil
	}
	lines := s.lines
	if lines == nil {
		lines = []domain.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.store.Put(storageKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
