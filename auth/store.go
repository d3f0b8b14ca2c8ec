package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ncobase/taskdesk/consts"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/net/client"
	"github.com/ncobase/taskdesk/todo/structs"
	"golang.org/x/oauth2"
)

// ErrNotLoggedIn is returned when no usable credentials are stored.
var ErrNotLoggedIn = client.ErrNoCredentials

// Credentials of a signed in user.
type Credentials struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type,omitempty"`
	User        *structs.User `json:"user,omitempty"`
	ExpiresAt   time.Time     `json:"expires_at,omitempty"`
	SavedAt     time.Time     `json:"saved_at"`
}

// Expired reports whether the credentials carry an expiry that passed.
func (c *Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Store holds the credentials of the current session. They exist between
// Init (login) and Teardown (logout or a rejected request); an empty path
// keeps them in memory only.
type Store struct {
	path  string
	mu    sync.RWMutex
	creds *Credentials
	now   func() time.Time
}

// NewStore returns an empty store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads stored credentials. A missing file leaves the store empty.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return fmt.Errorf("failed to decode credentials: %w", err)
	}
	if c.AccessToken == "" {
		return nil
	}

	s.mu.Lock()
	s.creds = &c
	s.mu.Unlock()
	return nil
}

// Init starts a session with c and persists it.
func (s *Store) Init(c *Credentials) error {
	if c == nil || c.AccessToken == "" {
		return errors.New("credentials without access token")
	}
	cp := *c
	if cp.SavedAt.IsZero() {
		cp.SavedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(&cp); err != nil {
		return err
	}
	s.creds = &cp
	return nil
}

func (s *Store) write(c *Credentials) error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Teardown ends the session and removes the stored file.
func (s *Store) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// Current returns a copy of the session credentials, nil when signed out.
func (s *Store) Current() *Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	cp := *s.creds
	return &cp
}

// LoggedIn reports whether the store holds unexpired credentials.
func (s *Store) LoggedIn() bool {
	c := s.Current()
	return c != nil && !c.Expired(s.now())
}

// Token implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	c := s.Current()
	if c == nil {
		return nil, ErrNotLoggedIn
	}
	if c.Expired(s.now()) {
		return nil, fmt.Errorf("%w: token expired at %s", ErrNotLoggedIn, c.ExpiresAt.Format(time.RFC3339))
	}
	tokenType := c.TokenType
	if tokenType == "" {
		tokenType = consts.BearerKey
	}
	return &oauth2.Token{AccessToken: c.AccessToken, TokenType: tokenType, Expiry: c.ExpiresAt}, nil
}

// OnUnauthorized is the transport hook for 401/429 answers.
func (s *Store) OnUnauthorized(ctx context.Context, status int) {
	logger.Warnf(ctx, "request rejected with status %d, signing out", status)
	if err := s.Teardown(); err != nil {
		logger.Errorf(ctx, "sign out: %v", err)
	}
}
