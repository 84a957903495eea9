package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/crepepos/backoffice/internal/api"
	"github.com/crepepos/backoffice/internal/branch"
	"github.com/crepepos/backoffice/internal/common"
	"github.com/crepepos/backoffice/internal/config"
	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/session"
	"github.com/crepepos/backoffice/internal/snapshot"
)

// appEnv bundles the wired-up services every command needs.
type appEnv struct {
	client   *api.Client
	session  *session.Store
	branches *branch.Selector
	cache    *snapshot.Store
	identity *model.Identity
}

// newEnv wires the client, session store, branch selector and snapshot
// cache from configuration. No session is required yet.
func newEnv() (*appEnv, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, common.NewUserError(
			"API base URL is not configured; set api.base_url in the config file or pass --api-url",
			common.ErrMissingConfig,
		)
	}

	dir, err := config.StateDir()
	if err != nil {
		return nil, err
	}

	cache, err := snapshot.Open(filepath.Join(dir, "snapshots.db"))
	if err != nil {
		return nil, err
	}

	client := api.New(baseURL)

	return &appEnv{
		client:   client,
		session:  session.NewStore(client, dir),
		branches: branch.NewSelector(client, cache, dir),
		cache:    cache,
	}, nil
}

// requireSession wires the environment and restores the persisted
// session, failing when none exists.
func requireSession() (*appEnv, error) {
	env, err := newEnv()
	if err != nil {
		return nil, err
	}

	identity, err := env.session.Restore()
	if err != nil {
		env.Close()
		return nil, err
	}
	if identity == nil {
		env.Close()
		return nil, common.NewUserError("not logged in; run 'crepe login' first", common.ErrNoSession)
	}

	env.identity = identity
	return env, nil
}

// Close releases the snapshot database.
func (e *appEnv) Close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
}

// activeBranch returns the selected branch or a friendly error telling
// the user to select one.
func (e *appEnv) activeBranch() (*model.Branch, error) {
	active, err := e.branches.Active()
	if err != nil {
		return nil, common.NewUserError("no branch selected; run 'crepe branch select' first", err)
	}
	return active, nil
}

// requestFailed wraps backend errors with a consistent user message.
func requestFailed(action string, err error) error {
	return common.NewUserError(fmt.Sprintf("failed to %s; the backend request did not succeed", action), err)
}
