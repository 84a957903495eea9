package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/crepepos/backoffice/internal/api"
	"github.com/crepepos/backoffice/internal/common"
	"github.com/crepepos/backoffice/internal/model"
)

const sessionFile = "session.json"

// persistedSession is the durable form of an authenticated session.
type persistedSession struct {
	Identity *model.Identity `json:"identity"`
	Token    string          `json:"token"`
}

// Store owns the single active identity. It is confined to one logical
// session and mutated only through Login, Restore and Logout; concurrent
// processes get last-write-wins on the shared file.
type Store struct {
	client   *api.Client
	identity *model.Identity
	dir      string
	token    string
}

// NewStore creates a session store persisting under dir.
func NewStore(client *api.Client, dir string) *Store {
	return &Store{client: client, dir: dir}
}

// Login authenticates against the backend and, on success, persists the
// credential and decoded identity. Rejected credentials, a response
// without a token, and a role outside the allowed set all fail with
// ErrAuth and leave nothing persisted. The message shown to the user never
// reveals which factor failed.
func (s *Store) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, common.NewUserError("login failed", fmt.Errorf("%w: %v", common.ErrAuth, err))
	}

	if resp.Token == "" {
		return nil, common.NewUserError("login failed", fmt.Errorf("%w: no token in response", common.ErrAuth))
	}

	identity, err := DecodeToken(resp.Token)
	if err != nil {
		return nil, common.NewUserError("login failed", fmt.Errorf("%w: %v", common.ErrAuth, err))
	}

	if !identity.CanManage() {
		return nil, common.NewUserError("login failed", fmt.Errorf("%w: role %q not allowed", common.ErrAuth, identity.Role.Code))
	}

	if err := s.persist(resp.Token, identity); err != nil {
		return nil, err
	}

	s.token = resp.Token
	s.identity = identity
	s.client.SetToken(resp.Token)

	slog.Debug("session established", "user", identity.Email, "role", identity.Role.Code)
	return identity, nil
}

// Restore reconstructs the session from durable storage. Missing or
// corrupt state is treated as "no session": the bad file is discarded and
// (nil, nil) returned, never an error the caller has to surface.
func (s *Store) Restore() (*model.Identity, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var saved persistedSession
	if err := json.Unmarshal(data, &saved); err != nil || saved.Token == "" || saved.Identity == nil {
		slog.Debug("discarding corrupt session state")
		_ = os.Remove(s.path())
		return nil, nil
	}

	// Re-decode rather than trusting the stored identity blob; a token
	// that no longer decodes means the whole session is discarded.
	identity, err := DecodeToken(saved.Token)
	if err != nil {
		slog.Debug("discarding undecodable session token")
		_ = os.Remove(s.path())
		return nil, nil
	}

	s.token = saved.Token
	s.identity = identity
	s.client.SetToken(saved.Token)

	return identity, nil
}

// Logout clears the persisted credential and in-memory state. The backend
// is not called; discarding the local credential ends the session.
func (s *Store) Logout() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.token = ""
	s.identity = nil
	s.client.SetToken("")

	return nil
}

// Identity returns the current identity, or nil when logged out.
func (s *Store) Identity() *model.Identity {
	return s.identity
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *Store) persist(token string, identity *model.Identity) error {
	data, err := json.MarshalIndent(persistedSession{Token: token, Identity: identity}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}
