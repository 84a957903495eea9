package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/common"
)

func makeToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func adminToken(t *testing.T) string {
	t.Helper()

	return makeToken(t, jwt.MapClaims{
		"id":    "u-1",
		"name":  "Ana Torres",
		"email": "ana@example.com",
		"user_role": map[string]string{
			"name": "Administrator",
			"code": "admin",
		},
		"iat": 1700000000,
	})
}

func TestDecodeToken(t *testing.T) {
	identity, err := DecodeToken(adminToken(t))
	require.NoError(t, err)

	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, "Ana Torres", identity.Name)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, "admin", identity.Role.Code)
	assert.Equal(t, int64(1700000000), identity.IssuedAt)
	assert.True(t, identity.CanManage())
}

func TestDecodeTokenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt at all", token: "hello world"},
		{name: "two segments only", token: "aGVhZGVy.cGF5bG9hZA"},
		{name: "payload is not base64", token: "aGVhZGVy.!!!.c2ln"},
		{name: "payload is not json", token: "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := DecodeToken(tt.token)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, common.ErrDecode)
		})
	}
}

func TestDecodeTokenMissingIdentity(t *testing.T) {
	token := makeToken(t, jwt.MapClaims{
		"name": "Ghost",
	})

	identity, err := DecodeToken(token)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, common.ErrDecode)
}

func TestDecodeTokenCashierStillDecodes(t *testing.T) {
	// Role gating is the store's job, not the decoder's.
	token := makeToken(t, jwt.MapClaims{
		"id":        "u-9",
		"user_role": map[string]string{"name": "Cashier", "code": "cashier"},
	})

	identity, err := DecodeToken(token)
	require.NoError(t, err)
	assert.False(t, identity.CanManage())
}
