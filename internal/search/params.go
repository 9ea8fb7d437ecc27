// Package search implements the canonical search parameter set shared
// by the tour query composer and the navigation generator, plus the
// slug codec used by the drill-down URLs.  Everything here is pure
// data shaping; entity resolution against the database happens in the
// repository layer.
package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Unconstrained is the path-segment sentinel for a dimension without
// a selection ("all cities", "all countries", ...).
const Unconstrained = "-"

// ParseSlugs decodes a multi-value path segment ("moscow+spb") into
// its slugs.  The sentinel and the empty string decode to nil.
// Duplicates are dropped so the codec round-trips order-independently.
func ParseSlugs(segment string) []string {
	if segment == "" || segment == Unconstrained {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, s := range strings.Split(segment, "+") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// JoinSlugs encodes slugs back into a path segment.  Empty input
// yields the sentinel.  Slugs are sorted so that two selections with
// the same members encode identically regardless of order.
func JoinSlugs(slugs []string) string {
	if len(slugs) == 0 {
		return Unconstrained
	}
	cp := append([]string(nil), slugs...)
	sort.Strings(cp)
	return strings.Join(cp, "+")
}

// Selection is one resolved filter dimension.  Requested is true when
// the caller supplied slugs for it; an empty ID set with Requested
// set means none of the slugs resolved, which must produce an empty
// result set rather than an error.
type Selection struct {
	Requested bool
	IDs       []uint64
}

// Select builds a requested selection from resolved IDs.
func Select(ids []uint64) Selection {
	return Selection{Requested: true, IDs: ids}
}

// Empty reports whether the dimension was requested but resolved to
// no known entity (a stale or mistyped slug).
func (s Selection) Empty() bool {
	return s.Requested && len(s.IDs) == 0
}

// Params is the canonical parameter object: both the query composer
// and the navigation generator operate on it, so a given scope means
// exactly the same thing to listings, aggregates and links.
type Params struct {
	Cities    Selection // departure cities
	Countries Selection // destination countries
	Resorts   Selection // destination resorts

	DateFrom *time.Time
	DateTo   *time.Time

	MinNights int // defaults to 1: zero-night rows are not tours
	MaxNights int // 0 = unconstrained
	MaxPrice  int // 0 = unconstrained

	AllInclusive bool
	Pooled       bool // include satellite cities in city-scoped aggregates
}

// NewParams returns a parameter set with the default constraints
// applied (pooled scope, at least one night).
func NewParams() Params {
	return Params{MinNights: 1, Pooled: true}
}

// Impossible reports whether any requested dimension resolved to
// nothing: the scope cannot match a tour and queries should
// short-circuit to an empty listing.
func (p Params) Impossible() bool {
	return p.Cities.Empty() || p.Countries.Empty() || p.Resorts.Empty()
}

// ParseMonthToken decodes a "january-2026" style path token into its
// month and year.  Month names are full English names, case
// insensitive.
func ParseMonthToken(token string) (time.Month, int, error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month token %q", token)
	}
	var month time.Month
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), parts[0]) {
			month = m
			break
		}
	}
	if month == 0 {
		return 0, 0, fmt.Errorf("unknown month %q", parts[0])
	}
	var year int
	if _, err := fmt.Sscanf(parts[1], "%d", &year); err != nil || year < 2000 || year > 2200 {
		return 0, 0, fmt.Errorf("invalid year %q", parts[1])
	}
	return month, year, nil
}

// MonthToken encodes a date's month as a URL token.
func MonthToken(t time.Time) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(t.Month().String()), t.Year())
}

// MonthRange expands a month token into the [from, to] date range for
// the canonical parameters.  The current month starts at today, past
// days of it are not searchable; every other month starts at day one.
func MonthRange(token string, today time.Time) (time.Time, time.Time, error) {
	month, year, err := ParseMonthToken(token)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if year == today.Year() && month == today.Month() {
		from = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	}
	to := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return from, to, nil
}

// YearRange expands a year into its [from, to] search range, starting
// at today when the year is the current one.
func YearRange(year int, today time.Time) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if year == today.Year() {
		from = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	}
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}
