// Package snapshot caches the last fetched branch-scoped lists (sales,
// expenses, expense categories) in a local SQLite file so report commands
// can re-run filters and grouping offline. The cache is never
// authoritative: mutations bypass it entirely, and switching the active
// branch drops it wholesale so one branch's data can never bleed into
// another's view.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crepepos/backoffice/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Snapshot kinds.
const (
	kindSales             = "sales"
	kindExpenses          = "expenses"
	kindExpenseCategories = "expense_categories"
)

// Store is the on-disk snapshot cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the snapshot database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping snapshot database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSales replaces the cached sales list for a branch.
func (s *Store) SaveSales(ctx context.Context, branchID string, sales []model.Sale) error {
	return s.save(ctx, branchID, kindSales, sales)
}

// Sales returns the cached sales list for a branch with its fetch time.
// A missing snapshot returns (nil, zero time, nil).
func (s *Store) Sales(ctx context.Context, branchID string) ([]model.Sale, time.Time, error) {
	var sales []model.Sale
	fetchedAt, err := s.load(ctx, branchID, kindSales, &sales)
	return sales, fetchedAt, err
}

// SaveExpenses replaces the cached expense list for a branch.
func (s *Store) SaveExpenses(ctx context.Context, branchID string, expenses []model.Expense) error {
	return s.save(ctx, branchID, kindExpenses, expenses)
}

// Expenses returns the cached expense list for a branch.
func (s *Store) Expenses(ctx context.Context, branchID string) ([]model.Expense, time.Time, error) {
	var expenses []model.Expense
	fetchedAt, err := s.load(ctx, branchID, kindExpenses, &expenses)
	return expenses, fetchedAt, err
}

// SaveExpenseCategories replaces the cached category tree for a branch.
func (s *Store) SaveExpenseCategories(ctx context.Context, branchID string, categories []model.ExpenseCategory) error {
	return s.save(ctx, branchID, kindExpenseCategories, categories)
}

// ExpenseCategories returns the cached category tree for a branch.
func (s *Store) ExpenseCategories(ctx context.Context, branchID string) ([]model.ExpenseCategory, time.Time, error) {
	var categories []model.ExpenseCategory
	fetchedAt, err := s.load(ctx, branchID, kindExpenseCategories, &categories)
	return categories, fetchedAt, err
}

// InvalidateBranch drops every snapshot for one branch.
func (s *Store) InvalidateBranch(ctx context.Context, branchID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE branch_id = ?`, branchID); err != nil {
		return fmt.Errorf("failed to invalidate branch snapshots: %w", err)
	}
	return nil
}

// InvalidateAll drops every snapshot. Called on branch switch and logout.
func (s *Store) InvalidateAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to invalidate snapshots: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, branchID, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", kind, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (branch_id, kind, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(branch_id, kind) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		branchID, kind, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", kind, err)
	}

	return nil
}

func (s *Store) load(ctx context.Context, branchID, kind string, out any) (time.Time, error) {
	var (
		payload   string
		fetchedAt string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at FROM snapshots
		WHERE branch_id = ? AND kind = ?`,
		branchID, kind).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load %s snapshot: %w", kind, err)
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		// A corrupt snapshot is just a cache miss; drop it.
		_, _ = s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE branch_id = ? AND kind = ?`, branchID, kind)
		return time.Time{}, nil
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		ts = time.Time{}
	}

	return ts, nil
}
