// Package report implements the client-side reporting core: pure,
// synchronous filtering, sorting, pagination, period resolution and
// expense grouping over lists fetched from the backend. Nothing here does
// I/O; the same inputs always produce the same outputs.
package report

import (
	"strings"
	"time"
)

// Predicate decides whether a record stays in the result set. Inactive
// filters ("all"/empty selections) are represented by not constructing a
// predicate at all.
type Predicate[T any] func(T) bool

// Apply keeps the records satisfying every predicate, preserving input
// order. Predicates are a logical AND and therefore commute.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// TextPredicate matches records whose designated fields contain term,
// case-insensitively. An empty term matches everything.
func TextPredicate[T any](term string, fields ...func(T) string) Predicate[T] {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(r T) bool {
		if needle == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), needle) {
				return true
			}
		}
		return false
	}
}

// EqualPredicate matches records whose field equals want exactly.
func EqualPredicate[T any](want string, field func(T) string) Predicate[T] {
	return func(r T) bool {
		return field(r) == want
	}
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DateRangePredicate matches records whose timestamp falls inside the
// given calendar-day range, inclusive on both ends: the from bound is
// normalized to 00:00:00 and the to bound to 23:59:59 local time, so a
// single selected day matches records anywhere within it. A nil bound is
// open on that side.
func DateRangePredicate[T any](from, to *time.Time, date func(T) time.Time) Predicate[T] {
	var lo, hi time.Time
	if from != nil {
		lo = StartOfDay(*from)
	}
	if to != nil {
		hi = EndOfDay(*to)
	}
	return func(r T) bool {
		d := date(r)
		if from != nil && d.Before(lo) {
			return false
		}
		if to != nil && d.After(hi) {
			return false
		}
		return true
	}
}
