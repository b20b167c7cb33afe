package geonames

import (
	"errors"
	"strings"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ix, err := Build(strings.NewReader(sampleDataset))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return NewService(ix)
}

func TestGetByIDValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(-1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetByID(-1) err = %v, want ErrInvalidArgument", err)
	}

	_, err = svc.GetByID(12345678)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(12345678) err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	svc := newTestService(t)
	for id := range svc.ix.byID {
		rec, err := svc.GetByID(id)
		if err != nil {
			t.Fatalf("GetByID(%d): %v", id, err)
		}
		if rec.ID != id {
			t.Errorf("GetByID(%d).ID = %d", id, rec.ID)
		}
	}
}

func TestPageValidation(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name        string
		skip, limit int
	}{
		{"NegativeSkip", -1, 10},
		{"ZeroLimit", 0, 0},
		{"NegativeLimit", 0, -5},
		{"LimitTooLarge", 0, MaxPageSize + 1},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Page(tt.skip, tt.limit); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Page(%d, %d) err = %v, want ErrInvalidArgument", tt.skip, tt.limit, err)
			}
		})
	}
}

func TestPageBounds(t *testing.T) {
	svc := newTestService(t)
	total := svc.Len()

	page, err := svc.Page(0, MaxPageSize)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page) != total {
		t.Errorf("full page length = %d, want %d", len(page), total)
	}

	page, err = svc.Page(total, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("page past the end has %d records, want 0", len(page))
	}

	page, err = svc.Page(total-1, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("last page length = %d, want 1", len(page))
	}
}

// Sequential pagination must compose: Page(0,n) + Page(n,m) == Page(0,n+m).
func TestPageSequentialConsistency(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Page(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Page(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	combined, err := svc.Page(0, 5)
	if err != nil {
		t.Fatal(err)
	}

	joined := append(append([]GeoName{}, first...), second...)
	if len(joined) != len(combined) {
		t.Fatalf("joined length %d != combined length %d", len(joined), len(combined))
	}
	for i := range joined {
		if joined[i].ID != combined[i].ID {
			t.Errorf("position %d: joined id %d != combined id %d", i, joined[i].ID, combined[i].ID)
		}
	}
}

func TestPageReturnsCopies(t *testing.T) {
	svc := newTestService(t)
	page, err := svc.Page(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	page[0].Name = "mutated"

	again, err := svc.Page(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].Name == "mutated" {
		t.Error("page mutation leaked into the index")
	}
}

func TestAlternatesUnknownName(t *testing.T) {
	svc := newTestService(t)
	if alts := svc.Alternates("Atlantis"); len(alts) != 0 {
		t.Errorf("Alternates(\"Atlantis\") = %v, want empty", alts)
	}
}
