// Package session manages the authenticated identity: logging in, decoding
// the session credential, persisting it across invocations, and logging
// out. The credential is decoded locally for display and a lightweight UI
// gate only; the backend performs real authorization on every request.
package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crepepos/backoffice/internal/common"
	"github.com/crepepos/backoffice/internal/model"
)

// identityClaims is the JWT payload shape issued by the backend.
type identityClaims struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"user_role"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the identity claims from a session credential
// without verifying the signature. The token must be a three-part,
// dot-separated JWT whose middle segment is base64-encoded JSON; anything
// malformed fails closed with ErrDecode. A syntactically valid payload
// that carries no subject id is rejected the same way rather than
// producing a partially populated identity.
func DecodeToken(token string) (*model.Identity, error) {
	claims := &identityClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token payload missing identity", common.ErrDecode)
	}

	identity := &model.Identity{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Unix()
	}

	return identity, nil
}
