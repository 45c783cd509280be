package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nordiclux/storefront/internal/catalog/domain"
	"github.com/nordiclux/storefront/internal/ident"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

// storageKey is the durable key holding the full product list as a JSON array.
const storageKey = "admin_products"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDuplicateSKU = errors.New("sku already exists")

	// ErrPersist marks a mutation that succeeded in memory but could not be
	// mirrored to the durable store.
	ErrPersist = errors.New("persist failed")
)

// Service is the catalog store: a single in-memory product collection with
// write-through persistence on every mutation.
type Service struct {
	mu       sync.Mutex
	products []domain.Product
	store    kvstore.Store
	log      *slog.Logger
}

func NewService(store kvstore.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load rehydrates the catalog from the durable store. An absent key installs
// the seed catalog; without a store this is a no-op.
func (s *Service) Load() error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(storageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.products = seedProducts(time.Now())
		return s.persistLocked()
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		s.log.Error("stored catalog is unreadable, starting from seed data", slog.Any("err", err))
		s.products = seedProducts(time.Now())
		return nil
	}
	s.products = products
	return nil
}

// Add inserts a new product with a fresh identifier and timestamps. The SKU
// must not already exist (compared case-insensitively); price and stock must
// be non-negative. On a persist failure the product is still returned and the
// error wraps ErrPersist.
func (s *Service) Add(p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" || strings.TrimSpace(p.SKU) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if p.Price < 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findBySKULocked(p.SKU) != nil {
		return domain.Product{}, fmt.Errorf("%w: %q", ErrDuplicateSKU, p.SKU)
	}

	now := time.Now()
	p.ID = ident.Next()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products = append(s.products, p)

	return p, s.persistLocked()
}

// Update merges a partial patch into the product and refreshes its update stamp.
func (s *Service) Update(id string, patch domain.Patch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i], time.Now())
			return s.products[i], s.persistLocked()
		}
	}
	return domain.Product{}, ErrNotFound
}

// Delete filters the product out of the collection. Deleting an unknown id is
// a no-op, matching the filter semantics of the store.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return s.persistLocked()
}

func (s *Service) Get(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// FindBySKU looks a product up by SKU, case-insensitively.
func (s *Service) FindBySKU(sku string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.findBySKULocked(sku); p != nil {
		return *p, true
	}
	return domain.Product{}, false
}

func (s *Service) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Search matches the admin search box: name, brand or SKU, case-insensitive.
func (s *Service) Search(term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Brand), term) ||
			strings.Contains(strings.ToLower(p.SKU), term) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) findBySKULocked(sku string) *domain.Product {
	for i := range s.products {
		if strings.EqualFold(s.products[i].SKU, sku) {
			return &s.products[i]
		}
	}
	return nil
}

func (s *Service) persistLocked() error {
	if s.store == nil {
		return nil
	}
	raw, err := json.Marshal(s.products)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.store.Put(storageKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
