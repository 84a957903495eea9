// Package branch resolves which branches the current identity may operate
// on and holds the active branch selection. Every branch-scoped list view
// filters by the active branch; switching branches invalidates previously
// cached branch-scoped data so nothing from the old branch bleeds into the
// new one.
package branch

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

const branchFile = "branch.json"

// CacheInvalidator discards cached branch-scoped lists. Satisfied by the
// snapshot store.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// Selector lists accessible branches and owns the active selection.
type Selector struct {
	client *api.Client
	cache  CacheInvalidator
	active *model.Branch
	dir    string
}

// NewSelector creates a selector persisting the active branch under dir.
// cache may be nil when no snapshot store is in play (tests).
func NewSelector(client *api.Client, cache CacheInvalidator, dir string) *Selector {
	return &Selector{client: client, cache: cache, dir: dir}
}

// Accessible returns the branches the identity may operate on, in backend
// order. Superadmins see every branch; everyone else sees the intersection
// of all branches with their user-branch links. An empty result fails with
// ErrNoBranches and the caller must send the user back to authentication.
func (s *Selector) Accessible(ctx context.Context, identity *model.Identity) ([]model.Branch, error) {
	all, err := s.client.Branches(ctx)
	if err != nil {
		return nil, err
	}

	if identity.IsSuperadmin() {
		if len(all) == 0 {
			return nil, common.ErrNoBranches
		}
		return all, nil
	}

	links, err := s.client.UserBranches(ctx)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]bool)
	for _, link := range links {
		if link.UserID == identity.ID {
			assigned[link.BranchID] = true
		}
	}

	var accessible []model.Branch
	for _, b := range all {
		if assigned[b.ID] {
			accessible = append(accessible, b)
		}
	}

	if len(accessible) == 0 {
		return nil, common.ErrNoBranches
	}

	return accessible, nil
}

// Select stores the chosen branch for subsequent invocations. Switching to
// a different branch drops every cached branch-scoped list; callers
// re-fetch rather than merge.
func (s *Selector) Select(ctx context.Context, branch model.Branch) error {
	previous, _ := s.Active()
	if previous != nil && previous.ID != branch.ID && s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			return fmt.Errorf("failed to invalidate cached lists: %w", err)
		}
		slog.Debug("branch switched, cached lists discarded", "from", previous.ID, "to", branch.ID)
	}

	data, err := json.MarshalIndent(branch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode branch selection: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to persist branch selection: %w", err)
	}

	s.active = &branch
	return nil
}

// Active returns the current branch selection. Without one it fails with
// ErrNoBranchSelected; corrupt state is discarded and reported the same
// way.
func (s *Selector) Active() (*model.Branch, error) {
	if s.active != nil {
		return s.active, nil
	}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrNoBranchSelected
		}
		return nil, fmt.Errorf("failed to read branch selection: %w", err)
	}

	var branch model.Branch
	if err := json.Unmarshal(data, &branch); err != nil || branch.ID == "" {
		_ = os.Remove(s.path())
		return nil, common.ErrNoBranchSelected
	}

	s.active = &branch
	return s.active, nil
}

// Clear forgets the selection, e.g. on logout.
func (s *Selector) Clear() error {
	s.active = nil
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear branch selection: %w", err)
	}
	return nil
}

func (s *Selector) path() string {
	return filepath.Join(s.dir, branchFile)
}
