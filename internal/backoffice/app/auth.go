package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nordiclux/storefront/internal/backoffice/domain"
	"github.com/nordiclux/storefront/pkg/kvstore"
)

// sessionStorageKey persists the signed-in panel session between visits.
const sessionStorageKey = "admin_user"

const (
	defaultAdminEmail    = "admin@nordiclux.com"
	defaultAdminPassword = "admin123"
)

var ErrBadCredentials = errors.New("invalid email or password")

// UserDirectory is the slice of the user store the sign-in flow needs.
type UserDirectory interface {
	FindByEmail(email string) (domain.User, bool)
}

// Auth signs panel users in and out. The built-in admin account always works;
// beyond that, active stored users with the admin or staff role may sign in
// with their own password. Staff get the admin role inside the panel.
type Auth struct {
	mu      sync.Mutex
	current *domain.Session

	users UserDirectory
	store kvstore.Store
	log   *slog.Logger
}

func NewAuth(users UserDirectory, store kvstore.Store, log *slog.Logger) *Auth {
	return &Auth{users: users, store: store, log: log}
}

// Load restores a persisted session, if any.
func (a *Auth) Load() error {
	if a.store == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := a.store.Get(sessionStorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		a.log.Error("stored session is unreadable, signing out", slog.Any("err", err))
		return nil
	}
	a.current = &sess
	return nil
}

func (a *Auth) Login(email, password string) (domain.Session, error) {
	sess, err := a.authenticate(email, password)
	if err != nil {
		if a.log != nil {
			a.log.Warn("sign-in rejected", slog.String("email", email))
		}
		return domain.Session{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = &sess
	if a.store != nil {
		raw, err := json.Marshal(sess)
		if err != nil {
			return domain.Session{}, fmt.Errorf("%w: %v", ErrPersist, err)
		}
		if err := a.store.Put(sessionStorageKey, raw); err != nil {
			return domain.Session{}, fmt.Errorf("%w: %v", ErrPersist, err)
		}
	}

	if a.log != nil {
		a.log.Info("signed in", slog.String("email", sess.Email))
	}
	return sess, nil
}

func (a *Auth) authenticate(email, password string) (domain.Session, error) {
	if strings.EqualFold(email, defaultAdminEmail) && password == defaultAdminPassword {
		return domain.Session{
			ID:        "1",
			Email:     defaultAdminEmail,
			Name:      "Admin User",
			Role:      domain.RoleAdmin,
			Token:     uuid.NewString(),
			CreatedAt: time.Now(),
		}, nil
	}

	if a.users != nil {
		user, ok := a.users.FindByEmail(email)
		if ok && user.Password == password && user.Role.CanSignIn() {
			return domain.Session{
				ID:        user.ID,
				Email:     user.Email,
				Name:      user.Name,
				Role:      domain.RoleAdmin,
				Token:     uuid.NewString(),
				CreatedAt: time.Now(),
			}, nil
		}
	}

	return domain.Session{}, ErrBadCredentials
}

// Current returns the signed-in session, if any.
func (a *Auth) Current() (domain.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return domain.Session{}, false
	}
	return *a.current, true
}

// Verify reports whether the token belongs to the signed-in session.
func (a *Auth) Verify(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.current != nil && token != "" && a.current.Token == token
}

func (a *Auth) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil
	if a.store == nil {
		return nil
	}
	if err := a.store.Delete(sessionStorageKey); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
