// Package model defines the wire-level entities exchanged with the POS backend.
// Every entity is owned by the backend; the structs here are transient,
// read-mostly copies held for rendering and client-side reporting.
package model

// Role is the authorization signal attached to an identity. Code is the
// only field the client inspects; display uses Name.
type Role struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Role codes recognized by the back-office gate.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleCashier    = "cashier"
)

// Identity holds the authenticated user's claims as decoded from the
// session credential. It is materialized once at login and only ever
// replaced wholesale, never mutated field-by-field.
type Identity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"user_role"`
	IssuedAt int64  `json:"iat"`
}

// CanManage reports whether the identity may enter the back office at all.
// This gates UI access only; the backend re-checks authorization on every
// state-changing request.
func (i *Identity) CanManage() bool {
	return i.Role.Code == RoleAdmin || i.Role.Code == RoleSuperadmin
}

// IsSuperadmin reports whether the identity sees every branch.
func (i *Identity) IsSuperadmin() bool {
	return i.Role.Code == RoleSuperadmin
}
