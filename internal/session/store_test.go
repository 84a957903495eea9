package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/api"
	"github.com/crepepos/backoffice/internal/common"
)

// newLoginServer returns a backend stub that accepts one credential pair
// and answers with the given token.
func newLoginServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["email"] != "ana@example.com" || body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
}

func TestLoginEstablishesSession(t *testing.T) {
	token := adminToken(t)
	server := newLoginServer(t, token)
	defer server.Close()

	dir := t.TempDir()
	store := NewStore(api.New(server.URL), dir)

	identity, err := store.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, identity, store.Identity())

	// The credential survives process restart.
	restored, err := NewStore(api.New(server.URL), dir).Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "u-1", restored.ID)
	assert.Equal(t, "admin", restored.Role.Code)
}

func TestLoginRejectedCredentials(t *testing.T) {
	server := newLoginServer(t, adminToken(t))
	defer server.Close()

	dir := t.TempDir()
	store := NewStore(api.New(server.URL), dir)

	identity, err := store.Login(context.Background(), "ana@example.com", "wrong")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, common.ErrAuth)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "login failed", userErr.UserMessage, "message must not reveal which factor failed")

	assert.NoFileExists(t, filepath.Join(dir, sessionFile))
}

func TestLoginEmptyTokenResponse(t *testing.T) {
	server := newLoginServer(t, "")
	defer server.Close()

	store := NewStore(api.New(server.URL), t.TempDir())

	_, err := store.Login(context.Background(), "ana@example.com", "secret")
	assert.ErrorIs(t, err, common.ErrAuth)
}

func TestLoginUndecodableToken(t *testing.T) {
	server := newLoginServer(t, "garbage-token")
	defer server.Close()

	dir := t.TempDir()
	store := NewStore(api.New(server.URL), dir)

	_, err := store.Login(context.Background(), "ana@example.com", "secret")
	assert.ErrorIs(t, err, common.ErrAuth)
	assert.NoFileExists(t, filepath.Join(dir, sessionFile))
}

func TestLoginRejectsCashierRole(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{
		"id":        "u-9",
		"name":      "Caja",
		"email":     "ana@example.com",
		"user_role": map[string]string{"name": "Cashier", "code": "cashier"},
	})
	server := newLoginServer(t, token)
	defer server.Close()

	dir := t.TempDir()
	store := NewStore(api.New(server.URL), dir)

	identity, err := store.Login(context.Background(), "ana@example.com", "secret")
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, common.ErrAuth)
	assert.NoFileExists(t, filepath.Join(dir, sessionFile))
}

func TestRestoreWithoutSession(t *testing.T) {
	store := NewStore(api.New("http://localhost:0"), t.TempDir())

	identity, err := store.Restore()
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestRestoreDiscardsCorruptState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sessionFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(api.New("http://localhost:0"), dir)

	identity, err := store.Restore()
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.NoFileExists(t, path, "corrupt state must be discarded")
}

func TestRestoreDiscardsUndecodableToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sessionFile)
	saved, err := json.Marshal(persistedSession{Token: "no-longer-a-jwt", Identity: nil})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, saved, 0o600))

	store := NewStore(api.New("http://localhost:0"), dir)

	identity, restoreErr := store.Restore()
	require.NoError(t, restoreErr)
	assert.Nil(t, identity)
	assert.NoFileExists(t, path)
}

func TestLogout(t *testing.T) {
	token := adminToken(t)
	server := newLoginServer(t, token)
	defer server.Close()

	dir := t.TempDir()
	store := NewStore(api.New(server.URL), dir)

	_, err := store.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, store.Logout())
	assert.Nil(t, store.Identity())
	assert.NoFileExists(t, filepath.Join(dir, sessionFile))

	// Logging out twice is fine.
	require.NoError(t, store.Logout())
}
