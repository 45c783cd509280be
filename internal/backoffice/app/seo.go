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

const seoKey = "admin_seo"

type SEO struct {
	mu    sync.Mutex
	items []domain.SEOEntry
	store kvstore.Store
	log   *slog.Logger
}

func NewSEO(store kvstore.Store, log *slog.Logger) *SEO {
	return &SEO{store: store, log: log}
}

func (s *SEO) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		s.items = seedSEO(time.Now())
		return nil
	}

	raw, err := s.store.Get(seoKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.items = seedSEO(time.Now())
		return s.persistLocked()
	}
	if err != nil {
		return fmt.Errorf("load seo entries: %w", err)
	}

	var items []domain.SEOEntry
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Error("stored seo entries are unreadable, reseeding", slog.Any("err", err))
		s.items = seedSEO(time.Now())
		return s.persistLocked()
	}
	s.items = items
	return nil
}

// Upsert writes metadata for a page. A page with an existing entry gets a
// partial merge; an unknown page gets a fresh entry with the patch applied
// over empty fields.
func (s *SEO) Upsert(page string, patch domain.SEOPatch) (domain.SEOEntry, error) {
	if strings.TrimSpace(page) == "" {
		return domain.SEOEntry{}, fmt.Errorf("%w: page is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i := range s.items {
		if s.items[i].Page == page {
			patch.Apply(&s.items[i])
			s.items[i].UpdatedAt = now
			return s.items[i], s.persistLocked()
		}
	}

	entry := domain.SEOEntry{
		ID:        ident.Next(),
		Page:      page,
		UpdatedAt: now,
	}
	patch.Apply(&entry)
	s.items = append(s.items, entry)
	return entry, s.persistLocked()
}

func (s *SEO) ForPage(page string) (domain.SEOEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.Page == page {
			return it, nil
		}
	}
	return domain.SEOEntry{}, ErrNotFound
}

func (s *SEO) List() []domain.SEOEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SEOEntry, len(s.items))
	copy(out, s.items)
	return out
}

func (s *SEO) persistLocked() error {
	if s.store == nil {
		return nil
	}
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := s.store.Put(seoKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
