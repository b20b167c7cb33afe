package geonames

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// cellLevel sets the granularity of the S2 spatial index. Level 10 gives
// roughly 10km x 10km cells at the equator: small enough to keep candidate
// lists short, coarse enough that a cell plus its neighbors covers any
// plausible nearest place.
const cellLevel = 10

// maxNearestDistance is ~100km in radians on the unit sphere. Queries whose
// closest place is farther than this resolve to nothing.
const maxNearestDistance = 0.0157

// nearestCandidate pairs a record position with its distance from the query.
type nearestCandidate struct {
	pos  int
	dist float64
}

// Nearest returns the indexed place closest to the given coordinates,
// searching the query's S2 cell and its neighbors. Distance ties break by
// population (descending), then name, for a deterministic result.
func (s *Service) Nearest(lat, lng float64) (GeoName, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return GeoName{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidArgument)
	}

	queryLL := s2.LatLngFromDegrees(lat, lng)
	queryCell := s2.CellIDFromLatLng(queryLL).Parent(cellLevel)

	var candidates []nearestCandidate
	for _, cell := range cellAndNeighbors(queryCell) {
		for _, pos := range s.ix.cells[cell] {
			rec := s.ix.records[pos]
			recLL := s2.LatLngFromDegrees(rec.Latitude, rec.Longitude)
			candidates = append(candidates, nearestCandidate{
				pos:  pos,
				dist: float64(queryLL.Distance(recLL)),
			})
		}
	}
	if len(candidates) == 0 {
		return GeoName{}, fmt.Errorf("%w: no places near %.5f,%.5f", ErrNotFound, lat, lng)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		ra, rb := s.ix.records[a.pos], s.ix.records[b.pos]
		if ra.Population != rb.Population {
			return ra.Population > rb.Population
		}
		return ra.Name < rb.Name
	})

	best := candidates[0]
	if best.dist > maxNearestDistance {
		return GeoName{}, fmt.Errorf("%w: no places near %.5f,%.5f", ErrNotFound, lat, lng)
	}
	return s.ix.records[best.pos], nil
}

// cellAndNeighbors returns the given cell plus its edge and corner
// neighbors.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	for i := 0; i < 4; i++ {
		cells = append(cells, edgeNeighbors[i])
	}

	seen := make(map[s2.CellID]bool, 9)
	for _, c := range cells {
		seen[c] = true
	}
	for i := 0; i < 4; i++ {
		for _, corner := range edgeNeighbors[i].EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}
