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

const usersKey = "admin_users"

type Users struct {
	mu    sync.Mutex
	items []domain.User
	store kvstore.Store
	log   *slog.Logger
}

func NewUsers(store kvstore.Store, log *slog.Logger) *Users {
	return &Users{store: store, log: log}
}

func (u *Users) Load() error {
	if u.store == nil {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	raw, err := u.store.Get(usersKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	var items []domain.User
	if err := json.Unmarshal(raw, &items); err != nil {
		u.log.Error("stored users are unreadable, starting empty", slog.Any("err", err))
		return nil
	}
	u.items = items
	return nil
}

// Add creates a panel user. New users are always active.
func (u *Users) Add(user domain.User) (domain.User, error) {
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		return domain.User{}, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if !user.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role %q", ErrInvalidInput, user.Role)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	now := time.Now()
	user.ID = ident.Next()
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	u.items = append(u.items, user)

	return user, u.persistLocked()
}

func (u *Users) Update(id string, patch domain.UserPatch) (domain.User, error) {
	if patch.Role != nil && !patch.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role %q", ErrInvalidInput, *patch.Role)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.items {
		if u.items[i].ID == id {
			patch.Apply(&u.items[i], time.Now())
			return u.items[i], u.persistLocked()
		}
	}
	return domain.User{}, ErrNotFound
}

func (u *Users) Delete(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	kept := u.items[:0]
	for _, it := range u.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	u.items = kept
	return u.persistLocked()
}

// FindByEmail looks up an active user by email, case-insensitively.
func (u *Users) FindByEmail(email string) (domain.User, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, it := range u.items {
		if strings.EqualFold(it.Email, email) && it.IsActive {
			return it, true
		}
	}
	return domain.User{}, false
}

func (u *Users) List() []domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]domain.User, len(u.items))
	copy(out, u.items)
	return out
}

func (u *Users) persistLocked() error {
	if u.store == nil {
		return nil
	}
	raw, err := json.Marshal(u.items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := u.store.Put(usersKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
