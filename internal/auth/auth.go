// Package auth is the local, single-user account store. There is no
// server-side session: the signed-in user is a record in the local
// key-value store, matching the mobile client's behavior.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stockpredict/internal/kvstore"
	"stockpredict/internal/market"
)

const (
	currentKey = "stockpredict/auth"
	usersKey   = "stockpredict/users"
)

var (
	ErrEmailTaken    = errors.New("auth: an account with this email already exists")
	ErrNoAccount     = errors.New("auth: no account found with this email")
	ErrBadPassword   = errors.New("auth: incorrect password")
	ErrNotSignedIn   = errors.New("auth: not signed in")
	ErrEmptyPassword = errors.New("auth: password cannot be empty")
)

// storedUser is the on-disk account record. Only the hash is stored;
// the public User shape never carries it.
type storedUser struct {
	market.User
	PasswordHash string `json:"passwordHash"`
}

// Manager manages the local user table and the current-user record.
type Manager struct {
	kv *kvstore.Store
}

// NewManager wraps a key-value store.
func NewManager(kv *kvstore.Store) *Manager {
	return &Manager{kv: kv}
}

// SignUp creates an account and signs it in. Emails are unique
// case-insensitively.
func (m *Manager) SignUp(name, email, password string) (market.User, error) {
	if password == "" {
		return market.User{}, ErrEmptyPassword
	}
	users, err := m.users()
	if err != nil {
		return market.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return market.User{}, ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return market.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := storedUser{
		User: market.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now().UnixMilli(),
		},
		PasswordHash: string(hash),
	}
	users = append(users, user)
	if err := m.kv.Set(usersKey, users); err != nil {
		return market.User{}, fmt.Errorf("save users: %w", err)
	}
	if err := m.kv.Set(currentKey, user.User); err != nil {
		return market.User{}, fmt.Errorf("save session: %w", err)
	}
	return user.User, nil
}

// SignIn verifies the password and records the user as signed in.
func (m *Manager) SignIn(email, password string) (market.User, error) {
	users, err := m.users()
	if err != nil {
		return market.User{}, err
	}
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return market.User{}, ErrBadPassword
		}
		if err := m.kv.Set(currentKey, u.User); err != nil {
			return market.User{}, fmt.Errorf("save session: %w", err)
		}
		return u.User, nil
	}
	return market.User{}, ErrNoAccount
}

// SignOut clears the current-user record.
func (m *Manager) SignOut() error {
	return m.kv.Delete(currentKey)
}

// Current returns the signed-in user, or ErrNotSignedIn.
func (m *Manager) Current() (market.User, error) {
	var user market.User
	if err := m.kv.Get(currentKey, &user); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return market.User{}, ErrNotSignedIn
		}
		return market.User{}, fmt.Errorf("load session: %w", err)
	}
	return user, nil
}

func (m *Manager) users() ([]storedUser, error) {
	var users []storedUser
	if err := m.kv.Get(usersKey, &users); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}
