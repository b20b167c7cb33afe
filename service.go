package geonames

import (
	"fmt"
)

// MaxPageSize bounds both pagination and suggestion limits.
const MaxPageSize = 1000

// Service answers queries against a built Index. It holds no state of its
// own beyond the index reference and is safe for concurrent use.
type Service struct {
	ix *Index
}

// NewService wraps a built index.
func NewService(ix *Index) *Service {
	return &Service{ix: ix}
}

// Len returns the number of indexed records.
func (s *Service) Len() int {
	return s.ix.Len()
}

// GetByID returns the record with the given geonameid. A negative id is a
// caller error, not an index miss.
func (s *Service) GetByID(id int) (GeoName, error) {
	if id < 0 {
		return GeoName{}, fmt.Errorf("%w: id must be >= 0", ErrInvalidArgument)
	}
	pos, ok := s.ix.byID[id]
	if !ok {
		return GeoName{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.ix.records[pos], nil
}

// Page returns up to limit records starting at offset skip, in the order
// records were inserted during construction. A skip beyond the end yields an
// empty page, not an error.
func (s *Service) Page(skip, limit int) ([]GeoName, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0", ErrInvalidArgument)
	}
	if limit <= 0 || limit > MaxPageSize {
		return nil, fmt.Errorf("%w: limit must be in (0, %d]", ErrInvalidArgument, MaxPageSize)
	}

	if skip >= len(s.ix.records) {
		return []GeoName{}, nil
	}
	end := skip + limit
	if end > len(s.ix.records) {
		end = len(s.ix.records)
	}
	out := make([]GeoName, end-skip)
	copy(out, s.ix.records[skip:end])
	return out, nil
}

// GetByName resolves an alternate name to a single record. When several
// places share the name, the most populous one wins; the name index keeps
// candidates in ascending population order, so that is its last entry.
// Matching is exact and case-sensitive.
func (s *Service) GetByName(name string) (GeoName, error) {
	seq := s.ix.byName[name]
	if len(seq) == 0 {
		return GeoName{}, fmt.Errorf("%w: name %q", ErrNotFound, name)
	}
	return s.ix.records[seq[len(seq)-1]], nil
}

// Alternates returns every place sharing the given alternate name, ascending
// by population. Empty when the name is not indexed.
func (s *Service) Alternates(name string) []GeoName {
	seq := s.ix.byName[name]
	out := make([]GeoName, len(seq))
	for i, pos := range seq {
		out[i] = s.ix.records[pos]
	}
	return out
}
