// Package app implements the back-office stores. Each store keeps its records
// in memory, guarded by a mutex, and writes the whole list through to durable
// storage on every mutation.
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

const categoriesKey = "admin_categories"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPersist      = errors.New("persist failed")
)

type Categories struct {
	mu    sync.Mutex
	items []domain.Category
	store kvstore.Store
	log   *slog.Logger
}

func NewCategories(store kvstore.Store, log *slog.Logger) *Categories {
	return &Categories{store: store, log: log}
}

// Load restores the list from storage. A missing key seeds the default
// categories; an unreadable one is replaced by them.
func (c *Categories) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		c.items = seedCategories(time.Now())
		return nil
	}

	raw, err := c.store.Get(categoriesKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		c.items = seedCategories(time.Now())
		return c.persistLocked()
	}
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	var items []domain.Category
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Error("stored categories are unreadable, reseeding", slog.Any("err", err))
		c.items = seedCategories(time.Now())
		return c.persistLocked()
	}
	c.items = items
	return nil
}

func (c *Categories) Add(cat domain.Category) (domain.Category, error) {
	if strings.TrimSpace(cat.Name) == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cat.ID = ident.Next()
	cat.CreatedAt = time.Now()
	c.items = append(c.items, cat)

	return cat, c.persistLocked()
}

func (c *Categories) Update(id string, patch domain.CategoryPatch) (domain.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			patch.Apply(&c.items[i])
			return c.items[i], c.persistLocked()
		}
	}
	return domain.Category{}, ErrNotFound
}

// Delete removes the category with the given id. Unknown ids are a no-op.
func (c *Categories) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
	return c.persistLocked()
}

func (c *Categories) Get(id string) (domain.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Category{}, ErrNotFound
}

func (c *Categories) List() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Category, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Categories) persistLocked() error {
	if c.store == nil {
		return nil
	}
	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := c.store.Put(categoriesKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// Slugify lowercases the name and joins its words with hyphens.
func Slugify(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}
