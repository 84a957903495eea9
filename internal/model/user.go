package model

import "time"

// User is a staff account as returned by the backend user endpoints.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   string `json:"role_id,omitempty"`
	Role     Role   `json:"user_role"`
	IsActive bool   `json:"is_active"`
}

// UserRole is a role record from the roles catalog.
type UserRole struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsActive  bool      `json:"is_active"`
}

// UserRegister is the payload for creating a staff account.
type UserRegister struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
}

// UserUpdate is the payload for updating a staff account. Empty fields are
// omitted so the backend keeps the current values.
type UserUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	RoleID   string `json:"role_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}
