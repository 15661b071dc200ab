package auth

import (
	"encoding/json"
	"os"
	"time"

	"github.com/quillpad/quill/internal/api"
)

// Session holds the current user and bearer token for the process.
// It is the single source the API client's token supplier reads from.
type Session struct {
	User     api.User
	Token    string
	LoggedIn bool
}

// NewSession creates an empty, logged-out session.
func NewSession() *Session {
	return &Session{}
}

// SetUser records a successful login or registration.
func (s *Session) SetUser(user api.User, token string) {
	s.User = user
	s.Token = token
	s.LoggedIn = true
}

// Logout clears the in-memory state and removes the persisted file.
func (s *Session) Logout(path string) {
	s.User = api.User{}
	s.Token = ""
	s.LoggedIn = false
	os.Remove(path)
}

// TokenSource is handed to the API client; it returns the current
// bearer token, or empty when logged out.
func (s *Session) TokenSource() func() string {
	return func() string { return s.Token }
}

// savedSession is the JSON structure written to disk.
type savedSession struct {
	Token    string    `json:"token"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	SavedAt  time.Time `json:"saved_at"`
}

// Save persists the session to a file readable only by the owner.
func (s *Session) Save(path string) error {
	if !s.LoggedIn {
		return nil
	}
	data, err := json.MarshalIndent(savedSession{
		Token:    s.Token,
		UserID:   s.User.ID,
		Name:     s.User.Name,
		Username: s.User.Username,
		Email:    s.User.Email,
		Avatar:   s.User.AvatarURL,
		SavedAt:  time.Now(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Load restores a session from a file. Returns true if a usable token
// was found. The caller still re-validates against /auth/me; a stale
// token is cleared via Invalidate.
func (s *Session) Load(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var saved savedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return false
	}
	if saved.Token == "" || saved.Username == "" {
		return false
	}

	s.Token = saved.Token
	s.User = api.User{
		ID:        saved.UserID,
		Name:      saved.Name,
		Username:  saved.Username,
		Email:     saved.Email,
		AvatarURL: saved.Avatar,
	}
	s.LoggedIn = true
	return true
}

// Invalidate clears a session that failed server-side validation.
func (s *Session) Invalidate(path string) {
	s.Logout(path)
}
