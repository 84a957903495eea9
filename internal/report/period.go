package report

import "time"

// PeriodKind is a symbolic period selector.
type PeriodKind string

const (
	// PeriodToday covers the current calendar day.
	PeriodToday PeriodKind = "today"
	// PeriodWeek is a rolling 7-day window ending now, not calendar-aligned.
	PeriodWeek PeriodKind = "week"
	// PeriodMonth is a rolling 1-calendar-month window ending now.
	PeriodMonth PeriodKind = "month"
	// PeriodCustom uses user-supplied start and end dates.
	PeriodCustom PeriodKind = "custom"
)

// ValidPeriod reports whether s names a known period kind.
func ValidPeriod(s string) bool {
	switch PeriodKind(s) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodCustom:
		return true
	}
	return false
}

// Resolver maps the period selection to a concrete start/end range.
// Transitions happen only on user selection. Custom bounds are clamped so
// start <= end always holds: editing whichever bound breaks the invariant
// drags the other along. Switching away from custom keeps the entered
// dates so returning restores them.
type Resolver struct {
	now         func() time.Time
	customStart time.Time
	customEnd   time.Time
	kind        PeriodKind
	hasStart    bool
	hasEnd      bool
}

// NewResolver creates a resolver in the given initial state. Each screen
// documents its own default (today for the sales dashboard, month for the
// expense dashboard).
func NewResolver(initial PeriodKind) *Resolver {
	return &Resolver{kind: initial, now: time.Now}
}

// Kind returns the current period selection.
func (r *Resolver) Kind() PeriodKind {
	return r.kind
}

// Select transitions to the given period kind.
func (r *Resolver) Select(kind PeriodKind) {
	r.kind = kind
}

// SetCustomStart records the custom start date (calendar day). If it
// exceeds the current end, the end is pulled up to match.
func (r *Resolver) SetCustomStart(t time.Time) {
	r.customStart = StartOfDay(t)
	r.hasStart = true
	if r.hasEnd && r.customEnd.Before(r.customStart) {
		r.customEnd = r.customStart
	}
}

// SetCustomEnd records the custom end date (calendar day). If it precedes
// the current start, the start is pulled down to match.
func (r *Resolver) SetCustomEnd(t time.Time) {
	r.customEnd = StartOfDay(t)
	r.hasEnd = true
	if r.hasStart && r.customStart.After(r.customEnd) {
		r.customStart = r.customEnd
	}
}

// CustomBounds returns the retained custom dates and whether each is set.
func (r *Resolver) CustomBounds() (start, end time.Time, hasStart, hasEnd bool) {
	return r.customStart, r.customEnd, r.hasStart, r.hasEnd
}

// Range resolves the current selection to concrete bounds:
//
//	today  -> [start of current day, end of current day]
//	week   -> [now - 7 days, now]
//	month  -> [now - 1 calendar month, now]
//	custom -> [start of customStart day, end of customEnd day]
//
// A custom bound that was never entered falls back to today's
// corresponding bound.
func (r *Resolver) Range() (start, end time.Time) {
	now := r.now()

	switch r.kind {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), now
	case PeriodMonth:
		return now.AddDate(0, -1, 0), now
	case PeriodCustom:
		start = StartOfDay(now)
		if r.hasStart {
			start = r.customStart
		}
		end = EndOfDay(now)
		if r.hasEnd {
			end = EndOfDay(r.customEnd)
		}
		return start, end
	default: // PeriodToday
		return StartOfDay(now), EndOfDay(now)
	}
}
