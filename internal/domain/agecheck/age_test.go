package agecheck

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMeetsMinimumAge(t *testing.T) {
	now := date(2024, 1, 1)
	tests := []struct {
		name  string
		birth time.Time
		years int
		want  bool
	}{
		{"fourteen is below eighteen", date(2010, 1, 1), 18, false},
		{"twenty four is eligible", date(2000, 1, 1), 18, true},
		{"eighteenth birthday today", date(2006, 1, 1), 18, true},
		{"one day short", date(2006, 1, 2), 18, false},
		{"future birth date", date(2030, 1, 1), 0, false},
		{"zero years admits past dates", date(2023, 12, 31), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeetsMinimumAge(tt.birth, tt.years, now); got != tt.want {
				t.Fatalf("MeetsMinimumAge(%v, %d) = %v, want %v", tt.birth, tt.years, got, tt.want)
			}
		})
	}
}

func TestEligibleAt_LeapDay(t *testing.T) {
	got := EligibleAt(date(2004, 2, 29), 1)
	if want := date(2005, 3, 1); !got.Equal(want) {
		t.Fatalf("EligibleAt(leap day, 1) = %v, want %v", got, want)
	}
	got = EligibleAt(date(2004, 2, 29), 4)
	if want := date(2008, 2, 29); !got.Equal(want) {
		t.Fatalf("EligibleAt(leap day, 4) = %v, want %v", got, want)
	}
}

func TestAgeOn(t *testing.T) {
	now := date(2024, 6, 15)
	if got := AgeOn(date(2000, 6, 15), now); got != 24 {
		t.Fatalf("AgeOn birthday = %d, want 24", got)
	}
	if got := AgeOn(date(2000, 6, 16), now); got != 23 {
		t.Fatalf("AgeOn day before birthday = %d, want 23", got)
	}
	if got := AgeOn(date(2030, 1, 1), now); got != 0 {
		t.Fatalf("AgeOn future = %d, want 0", got)
	}
}

func TestParser_Parse(t *testing.T) {
	p := NewParser(nil, nil)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2010-01-01", date(2010, 1, 1)},
		{" 2000-12-31 ", date(2000, 12, 31)},
		{"03/04/1999", date(1999, 3, 4)},
		{"January 2, 2006", date(2006, 1, 2)},
		{"Feb 29, 2004", date(2004, 2, 29)},
		{"2001-05-06T00:00:00Z", date(2001, 5, 6)},
	}
	for _, tt := range tests {
		got, err := p.Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParser_RejectsGarbage(t *testing.T) {
	p := NewParser(nil, nil)
	for _, in := range []string{"", "   ", "yesterday", "2010-13-01", "31/12/2000", "0"} {
		if _, err := p.Parse(in); !errors.Is(err, ErrUnparsable) {
			t.Errorf("Parse(%q) error = %v, want ErrUnparsable", in, err)
		}
	}
}

func TestParser_CustomLayoutsAndLocation(t *testing.T) {
	loc := time.FixedZone("NZST", 12*60*60)
	p := NewParser([]string{" 02.01.2006 ", ""}, loc)

	if diff := cmp.Diff([]string{"02.01.2006"}, p.Layouts()); diff != "" {
		t.Fatalf("Layouts() mismatch (-want +got):\n%s", diff)
	}
	got, err := p.Parse("24.12.1990")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := time.Date(1990, 12, 24, 0, 0, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	if _, err := p.Parse("1990-12-24"); !errors.Is(err, ErrUnparsable) {
		t.Fatalf("ISO date should not parse with custom layouts only, err = %v", err)
	}
}
