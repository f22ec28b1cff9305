package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveDateStatus(t *testing.T) {
	start := date(2026, time.March, 10)
	end := date(2026, time.March, 12)
	live := StatusLive

	tests := []struct {
		name     string
		now      time.Time
		override *Status
		want     Status
	}{
		{"before start", date(2026, time.March, 9).Add(23 * time.Hour), nil, StatusUpcoming},
		{"first day", start.Add(8 * time.Hour), nil, StatusLive},
		{"last day evening", end.Add(22 * time.Hour), nil, StatusLive},
		{"day after", date(2026, time.March, 13), nil, StatusCompleted},
		{"override wins", date(2026, time.January, 1), &live, StatusLive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveDateStatus(start, end, tt.now, tt.override); got != tt.want {
				t.Fatalf("DeriveDateStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveDateStatusIgnoresInvalidOverride(t *testing.T) {
	bogus := Status("paused")
	got := DeriveDateStatus(date(2026, time.May, 1), date(2026, time.May, 2), date(2026, time.April, 1), &bogus)
	if got != StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", got)
	}
}

func TestDeriveWindowStatus(t *testing.T) {
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	if got := DeriveWindowStatus(start, end, start.Add(-time.Minute), nil); got != StatusUpcoming {
		t.Errorf("before: got %s", got)
	}
	if got := DeriveWindowStatus(start, end, start, nil); got != StatusLive {
		t.Errorf("at start: got %s", got)
	}
	if got := DeriveWindowStatus(start, end, end, nil); got != StatusCompleted {
		t.Errorf("at end: got %s", got)
	}
	if got := DeriveWindowStatus(start, time.Time{}, start.Add(48*time.Hour), nil); got != StatusLive {
		t.Errorf("open window: got %s", got)
	}
}

func TestParseApparatus(t *testing.T) {
	for _, in := range []string{"floor", "Floor", " BEAM "} {
		if _, ok := ParseApparatus(in); !ok {
			t.Errorf("expected %q to parse", in)
		}
	}
	if _, ok := ParseApparatus("rings"); ok {
		t.Error("rings is not part of the catalog")
	}
	if len(ApparatusCatalog) != 4 {
		t.Fatalf("catalog must have exactly 4 entries, got %d", len(ApparatusCatalog))
	}
	if ApparatusBeam.Order() != 4 || Apparatus("x").Order() != 0 {
		t.Error("unexpected apparatus order")
	}
}
