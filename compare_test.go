package geonames

import (
	"errors"
	"testing"
	"time"
)

func TestFormatOffsetDiff(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "+00:00"},
		{60, "+01:00"},
		{-60, "-01:00"},
		{120, "+02:00"},
		{-120, "-02:00"},
		{330, "+05:30"},
		{-330, "-05:30"},
		{45, "+00:45"},
		{-1, "-00:01"},
		{765, "+12:45"},
	}
	for _, tt := range cases {
		if got := formatOffsetDiff(tt.minutes); got != tt.want {
			t.Errorf("formatOffsetDiff(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestUTCOffset(t *testing.T) {
	// Fixed-offset zones keep these assertions stable year-round.
	at := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	off, err := utcOffset("UTC", at)
	if err != nil {
		t.Fatal(err)
	}
	if off != 0 {
		t.Errorf("UTC offset = %d, want 0", off)
	}

	off, err = utcOffset("Europe/Moscow", at)
	if err != nil {
		t.Fatal(err)
	}
	if off != 3*3600 {
		t.Errorf("Europe/Moscow offset = %d, want %d", off, 3*3600)
	}

	if _, err := utcOffset("Mars/Olympus", at); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestCompareAcrossTimezones(t *testing.T) {
	svc := newTestService(t)

	// Moscow is UTC+3, Yekaterinburg UTC+5; neither observes DST.
	result, err := svc.Compare("Moscow", "Yekaterinburg")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.TimezoneDiff != "-02:00" {
		t.Errorf("TimezoneDiff = %q, want \"-02:00\"", result.TimezoneDiff)
	}
	if result.IsSameTime {
		t.Error("IsSameTime = true for a two-hour difference")
	}
	if result.North != "Yekaterinburg" {
		t.Errorf("North = %q, want \"Yekaterinburg\"", result.North)
	}

	reversed, err := svc.Compare("Yekaterinburg", "Moscow")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if reversed.TimezoneDiff != "+02:00" {
		t.Errorf("reversed TimezoneDiff = %q, want \"+02:00\"", reversed.TimezoneDiff)
	}
	if reversed.North != result.North {
		t.Errorf("north relation not symmetric: %q vs %q", reversed.North, result.North)
	}
}

func TestCompareLatitudeTieFavorsFirst(t *testing.T) {
	svc := newTestService(t)
	result, err := svc.Compare("Moscow", "Moskva")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.North != "Moscow" {
		t.Errorf("North = %q, want the first name on a tie", result.North)
	}
}

func TestCompareUnknownName(t *testing.T) {
	svc := newTestService(t)
	for _, pair := range [][2]string{
		{"Moscow", "Atlantis"},
		{"Atlantis", "Moscow"},
		{"", "Moscow"},
	} {
		if _, err := svc.Compare(pair[0], pair[1]); !errors.Is(err, ErrNotFound) {
			t.Errorf("Compare(%q, %q) err = %v, want ErrNotFound", pair[0], pair[1], err)
		}
	}
}
