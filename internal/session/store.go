package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fooddesk/internal/model"
)

// Store persists the authenticated staff session as three string-typed keys
// (user, is_login, access_token) under a state directory, one file per key.
// It performs no navigation itself: Logout reports the redirect as an intent.
type Store struct {
	dir string
}

// Redirect is a navigation intent reported to the caller.
type Redirect string

// RedirectLogin tells the shell to send the operator to the login flow.
const RedirectLogin Redirect = "login"

const (
	userFile  = "user"
	loginFile = "is_login"
	tokenFile = "access_token"
)

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// isEmptyOrNull recognizes the sentinel values a stale persisted state can
// contain. "", "null" and "undefined" (and a missing file) all mean no value.
func isEmptyOrNull(v string) bool {
	return v == "" || v == "null" || v == "undefined"
}

// SetUser stores the profile as a JSON string. A nil profile stores the empty
// sentinel.
func (s *Store) SetUser(profile model.Record) error {
	if profile == nil {
		return s.write(userFile, "")
	}
	b, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.write(userFile, string(b))
}

// GetUser returns the stored profile, or nil when nothing valid is stored.
func (s *Store) GetUser() model.Record {
	raw := s.read(userFile)
	if isEmptyOrNull(raw) {
		return nil
	}
	var profile model.Record
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil
	}
	return profile
}

func (s *Store) SetLoggedIn(v bool) error {
	flag := "0"
	if v {
		flag = "1"
	}
	return s.write(loginFile, flag)
}

func (s *Store) IsLoggedIn() bool {
	return s.read(loginFile) == "1"
}

func (s *Store) SetToken(token string) error {
	return s.write(tokenFile, token)
}

func (s *Store) Token() string {
	raw := s.read(tokenFile)
	if isEmptyOrNull(raw) {
		return ""
	}
	return raw
}

// Logout clears user, login flag and token together and returns the redirect
// the caller should act on.
func (s *Store) Logout() (Redirect, error) {
	if err := s.SetUser(nil); err != nil {
		return RedirectLogin, err
	}
	if err := s.SetLoggedIn(false); err != nil {
		return RedirectLogin, err
	}
	if err := s.SetToken(""); err != nil {
		return RedirectLogin, err
	}
	return RedirectLogin, nil
}

// TokenExpiry peeks at the stored access token without verifying it and
// returns its expiry when the token happens to be a JWT with an exp claim.
// The token stays opaque for all other purposes.
func (s *Store) TokenExpiry() (time.Time, bool) {
	raw := s.Token()
	if raw == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) write(name, value string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), []byte(value), 0o600)
}

func (s *Store) read(name string) string {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	// trim trailing newlines/spaces left by manual edits
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b)
}
