// Package session keeps track of who is logged in.
//
// State lives in five independent keys of a durable key/value Storage. Expiry of
// the optional remember-me extension is enforced lazily on read; nothing runs in
// the background, so every method is safe to call on any code path.
package session

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
)

// Storage keys. Each is read and written on its own, never as one record.
const (
	KeyToken          = "taskbit_token"
	KeyUser           = "taskbit_user"
	KeyRememberMe     = "taskbit_remember_me"
	KeyRememberEmail  = "taskbit_remember_email"
	KeyRememberExpiry = "taskbit_remember_expiry"
)

// DefaultRememberDuration is how long a remember-me login stays valid
const DefaultRememberDuration = 30 * 24 * time.Hour

var allKeys = []string{KeyToken, KeyUser, KeyRememberMe, KeyRememberEmail, KeyRememberExpiry}

// Storage is a durable string key/value store
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Store is the session service. The zero value is not usable; call New.
type Store struct {
	mu               sync.Mutex
	storage          Storage
	now              func() time.Time
	rememberDuration time.Duration
	logger           *log.Logger
}

// Option customises a Store
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRememberDuration overrides the 30 day remember-me window
func WithRememberDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.rememberDuration = d
		}
	}
}

// WithLogger sets the logger used to report storage failures
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store over storage
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:          storage,
		now:              time.Now,
		rememberDuration: DefaultRememberDuration,
		logger:           log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// remembered is the decoded remember-me extension
type remembered struct {
	email  string
	expiry time.Time
}

// Login overwrites the session with token and userID. With rememberMe and a
// non-empty email it also records the remember-me extension expiring after the
// remember window; otherwise any earlier remember-me state is cleared.
// The password is never passed in and never stored.
func (s *Store) Login(token string, userID models.ID, rememberMe bool, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := json.Marshal(models.User{ID: userID})
	if err != nil {
		return err
	}

	var errs []error
	errs = append(errs, s.storage.Set(KeyToken, token))
	errs = append(errs, s.storage.Set(KeyUser, string(user)))

	email = strings.TrimSpace(email)
	if rememberMe && email != "" {
		expiry := s.now().Add(s.rememberDuration).UTC()
		errs = append(errs, s.storage.Set(KeyRememberMe, "true"))
		errs = append(errs, s.storage.Set(KeyRememberEmail, email))
		errs = append(errs, s.storage.Set(KeyRememberExpiry, expiry.Format(time.RFC3339Nano)))
	} else {
		errs = append(errs, s.clearRememberLocked())
	}
	return errors.Join(errs...)
}

// GetToken returns the stored token, if any
func (s *Store) GetToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenLocked()
}

// GetUser returns the stored identity. Unparseable data is treated as absent.
func (s *Store) GetUser() (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.readLocked(KeyUser)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil, false
	}
	return &user, true
}

// IsAuthenticated reports whether a token is stored and, when a remember-me
// record exists, that it has not expired. An expired record logs the user out.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokenLocked(); !ok {
		return false
	}
	rec, ok := s.rememberedLocked()
	if !ok {
		return true
	}
	if s.now().After(rec.expiry) {
		if err := s.logoutLocked(); err != nil {
			s.logger.Printf("session: logout after expiry failed: %v", err)
		}
		return false
	}
	return true
}

// GetRememberedEmail returns the remembered email while the remember-me record
// is valid. An expired record ends the whole session.
func (s *Store) GetRememberedEmail() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rememberedLocked()
	if !ok {
		return "", false
	}
	if s.now().After(rec.expiry) {
		if err := s.logoutLocked(); err != nil {
			s.logger.Printf("session: logout after expiry failed: %v", err)
		}
		return "", false
	}
	return rec.email, true
}

// IsRememberMeActive reports whether a valid, unexpired remember-me record exists.
// It never modifies storage.
func (s *Store) IsRememberMeActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rememberedLocked()
	return ok && !s.now().After(rec.expiry)
}

// RememberExpiry returns the expiry of the remember-me record, if one is stored
func (s *Store) RememberExpiry() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rememberedLocked()
	return rec.expiry, ok
}

// Logout clears every session key. Calling it again is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutLocked()
}

func (s *Store) logoutLocked() error {
	var errs []error
	for _, key := range allKeys {
		errs = append(errs, s.storage.Remove(key))
	}
	return errors.Join(errs...)
}

func (s *Store) clearRememberLocked() error {
	return errors.Join(
		s.storage.Remove(KeyRememberMe),
		s.storage.Remove(KeyRememberEmail),
		s.storage.Remove(KeyRememberExpiry),
	)
}

func (s *Store) tokenLocked() (string, bool) {
	token, ok := s.readLocked(KeyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// rememberedLocked decodes the remember-me keys. Any missing or corrupt part
// means there is no remember-me record.
func (s *Store) rememberedLocked() (remembered, bool) {
	flag, ok := s.readLocked(KeyRememberMe)
	if !ok || flag != "true" {
		return remembered{}, false
	}
	email, ok := s.readLocked(KeyRememberEmail)
	if !ok || strings.TrimSpace(email) == "" {
		return remembered{}, false
	}
	rawExpiry, ok := s.readLocked(KeyRememberExpiry)
	if !ok {
		return remembered{}, false
	}
	expiry, err := time.Parse(time.RFC3339Nano, rawExpiry)
	if err != nil {
		return remembered{}, false
	}
	return remembered{email: email, expiry: expiry}, true
}

// readLocked degrades storage failures to "absent"
func (s *Store) readLocked(key string) (string, bool) {
	value, ok, err := s.storage.Get(key)
	if err != nil {
		s.logger.Printf("session: reading %s failed: %v", key, err)
		return "", false
	}
	return value, ok
}
