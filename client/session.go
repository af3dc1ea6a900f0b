package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Session is the client-side state that outlives a single screen: the id of
// the last order placed and the staff login. When created with a path it is
// written to disk on every change.
type Session struct {
	mu    sync.Mutex
	path  string
	state sessionState
}

type sessionState struct {
	LastOrderID   string `json:"lastOrderId,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
}

// NewSession returns an in-memory session.
func NewSession() *Session {
	return &Session{}
}

// LoadSession reads the session stored at path. A missing file yields an
// empty session bound to path.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (s *Session) LastOrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastOrderID
}

func (s *Session) SetLastOrderID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastOrderID = id
	return s.saveLocked()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Session) SetAuth(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Authenticated = token != ""
	s.state.Token = token
	return s.saveLocked()
}

func (s *Session) ClearAuth() error {
	return s.SetAuth("")
}

func (s *Session) saveLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// SignIn logs the staff user in and records the token in the session.
func SignIn(ctx context.Context, c *Client, s *Session, username, password string) error {
	res, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.SetAuth(res.Token)
}

// SignOut revokes the token server-side and clears the session flag. The
// flag is cleared even when the server call fails.
func SignOut(ctx context.Context, c *Client, s *Session) error {
	if c.Token() == "" {
		c.SetToken(s.Token())
	}
	err := c.Logout(ctx)
	c.SetToken("")
	if clearErr := s.ClearAuth(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}
