package model

import "time"

// Branch is a physical business location and the unit of data partitioning:
// products, ingredients, combos, expenses and expense categories all carry
// a branch id, and list views must only show records for the active branch.
type Branch struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
}

// UserBranch links a user to a branch they may operate on (many-to-many).
type UserBranch struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BranchID  string    `json:"branch_id"`
}
