package branch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/api"
	"github.com/crepepos/backoffice/internal/common"
	"github.com/crepepos/backoffice/internal/model"
)

func admin(id string) *model.Identity {
	return &model.Identity{ID: id, Role: model.Role{Code: model.RoleAdmin}}
}

func superadmin(id string) *model.Identity {
	return &model.Identity{ID: id, Role: model.Role{Code: model.RoleSuperadmin}}
}

// newBranchServer stubs the branch and user-branch endpoints.
func newBranchServer(t *testing.T, branches []model.Branch, links []model.UserBranch) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/branch/all":
			_ = json.NewEncoder(w).Encode(branches)
		case "/user/branch/all":
			_ = json.NewEncoder(w).Encode(links)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

// recordingCache counts invalidations.
type recordingCache struct {
	invalidations int
}

func (c *recordingCache) InvalidateAll(_ context.Context) error {
	c.invalidations++
	return nil
}

func TestAccessibleSuperadminSeesEverything(t *testing.T) {
	branches := []model.Branch{
		{ID: "b1", Name: "Centro"},
		{ID: "b2", Name: "Norte"},
		{ID: "b3", Name: "Sur"},
	}
	server := newBranchServer(t, branches, nil)
	defer server.Close()

	selector := NewSelector(api.New(server.URL), nil, t.TempDir())

	got, err := selector.Accessible(context.Background(), superadmin("u-1"))
	require.NoError(t, err)
	assert.Equal(t, branches, got, "backend order is preserved")
}

func TestAccessibleAdminSeesAssignedIntersection(t *testing.T) {
	branches := []model.Branch{
		{ID: "b1", Name: "Centro"},
		{ID: "b2", Name: "Norte"},
		{ID: "b3", Name: "Sur"},
	}
	links := []model.UserBranch{
		{ID: "l1", UserID: "u-1", BranchID: "b1"},
		{ID: "l2", UserID: "u-2", BranchID: "b2"},
		{ID: "l3", UserID: "u-1", BranchID: "b3"},
	}
	server := newBranchServer(t, branches, links)
	defer server.Close()

	selector := NewSelector(api.New(server.URL), nil, t.TempDir())

	got, err := selector.Accessible(context.Background(), admin("u-1"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)
}

func TestAccessibleNoAssignedBranches(t *testing.T) {
	branches := []model.Branch{{ID: "b1", Name: "Centro"}}
	server := newBranchServer(t, branches, nil)
	defer server.Close()

	selector := NewSelector(api.New(server.URL), nil, t.TempDir())

	_, err := selector.Accessible(context.Background(), admin("u-1"))
	assert.ErrorIs(t, err, common.ErrNoBranches)
}

func TestAccessibleNoBranchesAtAll(t *testing.T) {
	server := newBranchServer(t, nil, nil)
	defer server.Close()

	selector := NewSelector(api.New(server.URL), nil, t.TempDir())

	_, err := selector.Accessible(context.Background(), superadmin("u-1"))
	assert.ErrorIs(t, err, common.ErrNoBranches)
}

func TestSelectPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	selector := NewSelector(api.New("http://localhost:0"), nil, dir)

	require.NoError(t, selector.Select(context.Background(), model.Branch{ID: "b2", Name: "Norte"}))

	fresh := NewSelector(api.New("http://localhost:0"), nil, dir)
	active, err := fresh.Active()
	require.NoError(t, err)
	assert.Equal(t, "b2", active.ID)
	assert.Equal(t, "Norte", active.Name)
}

func TestSelectSwitchInvalidatesCache(t *testing.T) {
	cache := &recordingCache{}
	selector := NewSelector(api.New("http://localhost:0"), cache, t.TempDir())
	ctx := context.Background()

	// First selection has no previous branch, nothing to invalidate.
	require.NoError(t, selector.Select(ctx, model.Branch{ID: "b1", Name: "Centro"}))
	assert.Equal(t, 0, cache.invalidations)

	// Switching branches drops the cache.
	require.NoError(t, selector.Select(ctx, model.Branch{ID: "b2", Name: "Norte"}))
	assert.Equal(t, 1, cache.invalidations)

	// Re-selecting the same branch does not.
	require.NoError(t, selector.Select(ctx, model.Branch{ID: "b2", Name: "Norte"}))
	assert.Equal(t, 1, cache.invalidations)
}

func TestActiveWithoutSelection(t *testing.T) {
	selector := NewSelector(api.New("http://localhost:0"), nil, t.TempDir())

	_, err := selector.Active()
	assert.ErrorIs(t, err, common.ErrNoBranchSelected)
}

func TestActiveDiscardsCorruptState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, branchFile)
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	selector := NewSelector(api.New("http://localhost:0"), nil, dir)

	_, err := selector.Active()
	assert.ErrorIs(t, err, common.ErrNoBranchSelected)
	assert.NoFileExists(t, path)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	selector := NewSelector(api.New("http://localhost:0"), nil, dir)
	require.NoError(t, selector.Select(context.Background(), model.Branch{ID: "b1", Name: "Centro"}))

	require.NoError(t, selector.Clear())

	_, err := selector.Active()
	assert.ErrorIs(t, err, common.ErrNoBranchSelected)

	// Clearing twice is fine.
	require.NoError(t, selector.Clear())
}
