package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Direction selects sort order.
type Direction int

const (
	// Ascending sorts smallest first; missing keys sort last.
	Ascending Direction = iota
	// Descending sorts largest first; missing keys sort first.
	Descending
)

// Comparator is a three-way comparison between two records on one key.
type Comparator[T any] func(a, b T) int

// SortBy returns a copy of records ordered by cmp in the given direction.
// The sort is stable: records with equal keys keep their input order. A
// nil comparator returns the records unchanged.
func SortBy[T any](records []T, cmp Comparator[T], dir Direction) []T {
	out := make([]T, len(records))
	copy(out, records)

	if cmp == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})

	return out
}

// compareMissing orders a missing key after a present one so that, after
// direction is applied, missing values land last ascending and first
// descending.
func compareMissing(aOK, bOK bool) (int, bool) {
	switch {
	case !aOK && !bOK:
		return 0, true
	case !aOK:
		return 1, true
	case !bOK:
		return -1, true
	default:
		return 0, false
	}
}

// StringKey builds a comparator over a string field. ok=false marks a
// missing value.
func StringKey[T any](key func(T) (string, bool)) Comparator[T] {
	return func(a, b T) int {
		av, aOK := key(a)
		bv, bOK := key(b)
		if c, done := compareMissing(aOK, bOK); done {
			return c
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}
}

// TimeKey builds a comparator over a timestamp field.
func TimeKey[T any](key func(T) (time.Time, bool)) Comparator[T] {
	return func(a, b T) int {
		av, aOK := key(a)
		bv, bOK := key(b)
		if c, done := compareMissing(aOK, bOK); done {
			return c
		}
		return av.Compare(bv)
	}
}

// DecimalKey builds a comparator over a money field.
func DecimalKey[T any](key func(T) (decimal.Decimal, bool)) Comparator[T] {
	return func(a, b T) int {
		av, aOK := key(a)
		bv, bOK := key(b)
		if c, done := compareMissing(aOK, bOK); done {
			return c
		}
		return av.Cmp(bv)
	}
}

// Paginate returns the 1-indexed page of the given size: elements
// [(page-1)*size, page*size). A page beyond the available range yields an
// empty slice, never an error. Pagination applies strictly after filtering
// and sorting.
func Paginate[T any](records []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(records) {
		return []T{}
	}

	end := start + size
	if end > len(records) {
		end = len(records)
	}

	return records[start:end]
}
