// Package agecheck parses submitted birth dates and decides whether a
// person has reached a minimum age.
package agecheck

import (
	"errors"
	"strings"
	"time"
)

// DefaultLayouts are tried in order when no layouts are configured.
// Slash dates are month/day/year.
var DefaultLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ErrUnparsable is returned when a value matches none of the layouts.
var ErrUnparsable = errors.New("birth date could not be parsed")

// Parser parses birth dates with an explicit set of layouts.
type Parser struct {
	layouts  []string
	location *time.Location
}

// NewParser builds a Parser. Empty layouts fall back to DefaultLayouts and a
// nil location to UTC.
func NewParser(layouts []string, loc *time.Location) Parser {
	cleaned := make([]string, 0, len(layouts))
	for _, l := range layouts {
		if l = strings.TrimSpace(l); l != "" {
			cleaned = append(cleaned, l)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultLayouts...)
	}
	if loc == nil {
		loc = time.UTC
	}
	return Parser{layouts: cleaned, location: loc}
}

// Layouts returns the layouts the parser tries, in order.
func (p Parser) Layouts() []string {
	out := make([]string, len(p.layouts))
	copy(out, p.layouts)
	return out
}

// Parse returns the instant described by value.
// PRE: value is the raw submitted string
// POST: returns ErrUnparsable if no layout matches; never a zero-time fallback
func (p Parser) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparsable
	}
	layouts := p.layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	loc := p.location
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsable
}

// EligibleAt returns birth plus years calendar years. A 29 February birth
// date rolls over to 1 March in non-leap target years.
func EligibleAt(birth time.Time, years int) time.Time {
	return birth.AddDate(years, 0, 0)
}

// MeetsMinimumAge reports whether now is at or after EligibleAt(birth, years).
func MeetsMinimumAge(birth time.Time, years int, now time.Time) bool {
	return !now.Before(EligibleAt(birth, years))
}

// AgeOn returns the number of whole years between birth and now, or 0 if
// birth is in the future.
func AgeOn(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Before(EligibleAt(birth, age)) {
		age--
	}
	return age
}
