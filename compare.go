package geonames

import (
	"fmt"
	"time"
)

// Compare resolves two alternate names and compares the places: which lies
// farther north (a latitude tie goes to name1), and how their UTC offsets
// differ at this instant. Offsets are recomputed from the timezone database
// on every call; daylight-saving transitions make a cached offset stale.
func (s *Service) Compare(name1, name2 string) (Comparison, error) {
	first, err := s.GetByName(name1)
	if err != nil {
		return Comparison{}, err
	}
	second, err := s.GetByName(name2)
	if err != nil {
		return Comparison{}, err
	}

	now := time.Now()
	off1, err := utcOffset(first.Timezone, now)
	if err != nil {
		return Comparison{}, err
	}
	off2, err := utcOffset(second.Timezone, now)
	if err != nil {
		return Comparison{}, err
	}
	diffMinutes := (off1 - off2) / 60

	north := name1
	if first.Latitude < second.Latitude {
		north = name2
	}

	return Comparison{
		North:        north,
		IsSameTime:   diffMinutes == 0,
		TimezoneDiff: formatOffsetDiff(diffMinutes),
		First:        first,
		Second:       second,
	}, nil
}

// utcOffset returns the zone offset in seconds for an IANA timezone name at
// the given instant.
func utcOffset(zone string, at time.Time) (int, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return 0, fmt.Errorf("loading timezone %q: %w", zone, err)
	}
	_, offset := at.In(loc).Zone()
	return offset, nil
}

// formatOffsetDiff renders a minute difference as a signed HH:MM string.
// Zero gets a "+" sign; hours truncate toward zero and minutes carry the
// remainder, both zero-padded.
func formatOffsetDiff(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
