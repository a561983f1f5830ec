// Package session is the single source of truth for who the current user
// is and what they can do. Token, profile snapshot and subscription plan
// are written through to a local sqlite database on every mutation so a
// restart reconstructs the session without a network round trip.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// credential is one persisted session value, keyed like the browser
// localStorage entries of the original client.
type credential struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	keyToken       = "token"
	keyUser        = "user"
	keyPlan        = "plan"
	keyDeviceToken = "device_token"
)

// ProfileFetcher fetches the live profile during hydration.
type ProfileFetcher interface {
	CurrentUser(ctx context.Context) (*movieapi.User, error)
}

// Store holds the persisted session state.
type Store struct {
	db *gorm.DB

	mu          sync.RWMutex
	token       string
	user        *movieapi.User
	plan        string
	deviceToken string
}

// Open opens (or creates) the session database in stateDir and loads the
// persisted values into memory.
func Open(stateDir string) (*Store, error) {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(stateDir, "flicknest.db")), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.AutoMigrate(&credential{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads all persisted credentials into memory.
func (s *Store) load() error {
	var creds []credential
	if err := s.db.Find(&creds).Error; err != nil {
		return fmt.Errorf("failed to load session state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range creds {
		switch c.Key {
		case keyToken:
			s.token = c.Value
		case keyPlan:
			s.plan = c.Value
		case keyDeviceToken:
			s.deviceToken = c.Value
		case keyUser:
			var u movieapi.User
			if err := json.Unmarshal([]byte(c.Value), &u); err != nil {
				log.Warn("discarding unreadable user snapshot", "error", err)
				continue
			}
			s.user = &u
		}
	}
	return nil
}

// persist writes one key through to the database.
func (s *Store) persist(key, value string) error {
	cred := credential{Key: key, Value: value}
	if err := s.db.Save(&cred).Error; err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Hydrate refreshes the cached profile from the backend when a token is
// present. A failed refresh keeps the persisted snapshot: a transient
// network failure must not bounce an authenticated user to guest.
func (s *Store) Hydrate(ctx context.Context, api ProfileFetcher) {
	if s.Token() == "" {
		return
	}

	user, err := api.CurrentUser(ctx)
	if err != nil {
		log.Debug("profile refresh failed, keeping persisted snapshot", "error", err)
		return
	}
	if err := s.SetUser(*user); err != nil {
		log.Warn("failed to persist refreshed profile", "error", err)
	}
}

// Login stores the token and profile of a freshly authenticated user.
func (s *Store) Login(token string, user movieapi.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.persist(keyToken, token); err != nil {
		return err
	}
	if err := s.persist(keyUser, string(userJSON)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout clears all persisted session state in a single transaction, so
// there is never a state where the token is gone but user or plan remain.
func (s *Store) Logout() error {
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&credential{}).Error
	}); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.plan = ""
	s.deviceToken = ""
	s.mu.Unlock()
	return nil
}

// SetUser replaces the cached profile snapshot.
func (s *Store) SetUser(user movieapi.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.persist(keyUser, string(userJSON)); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// SetPlan stores the active subscription plan. It is persisted separately
// from the profile because subscription status is fetched from a
// different endpoint on a different cadence.
func (s *Store) SetPlan(plan string) error {
	if err := s.persist(keyPlan, plan); err != nil {
		return err
	}

	s.mu.Lock()
	s.plan = plan
	s.mu.Unlock()
	return nil
}

// SetDeviceToken stores the push notification device token.
func (s *Store) SetDeviceToken(token string) error {
	if err := s.persist(keyDeviceToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.deviceToken = token
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, or "" for an anonymous session.
// It implements movieapi.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the cached profile, or nil when anonymous.
func (s *Store) User() *movieapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Plan returns the cached subscription plan, or "" when none is known.
func (s *Store) Plan() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan
}

// DeviceToken returns the persisted device token, or "".
func (s *Store) DeviceToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceToken
}

// Role returns the role of the current user, RoleGuest when anonymous.
func (s *Store) Role() movieapi.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return movieapi.RoleGuest
	}
	return s.user.Role
}

// IsSupervisor reports whether the current user may manage the catalog.
func (s *Store) IsSupervisor() bool {
	return s.Role() == movieapi.RoleSupervisor
}

// CanWatchPremium reports whether the cached plan unlocks premium movies.
func (s *Store) CanWatchPremium() bool {
	return s.Plan() == movieapi.Plan3Months
}
