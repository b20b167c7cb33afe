package geonames

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	log "github.com/sirupsen/logrus"
)

// datasetFieldCount is the number of tab-separated columns in a GeoNames
// dump row.
const datasetFieldCount = 19

// maxLineBytes sizes the scanner buffer. Rows with large alternate-name
// sets exceed bufio's default 64KB token limit.
const maxLineBytes = 1 << 20

// Index holds every populated place retained from the dataset, reachable by
// id, by alternate name, and by S2 cell. Built once, immutable afterwards,
// safe for concurrent readers.
type Index struct {
	records []GeoName            // insertion order, backs every other structure
	byID    map[int]int          // geonameid -> position in records
	byName  map[string][]int     // alternate name -> positions, ascending by population
	cells   map[s2.CellID][]int  // level-10 S2 cell -> positions
}

// Len returns the number of retained records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Build parses tab-separated dataset rows from r and constructs the index.
// Rows whose feature class is not "P" are dropped; rows that do not match
// the 19-column schema fail the whole build. A duplicate geonameid keeps the
// record's original position and overwrites its value (last write wins).
func Build(r io.Reader) (*Index, error) {
	b := newBuilder()
	if err := b.consume(r); err != nil {
		return nil, err
	}
	return b.finish(), nil
}

// builder accumulates records across one or more dataset readers (a zip
// archive may spread the dump over several entries).
type builder struct {
	records []GeoName
	byID    map[int]int
	line    int
	dropped int
	dupes   int
}

func newBuilder() *builder {
	return &builder{byID: make(map[int]int)}
}

func (b *builder) consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		b.line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != datasetFieldCount {
			return &MalformedRecordError{Line: b.line, Fields: len(fields)}
		}
		if fields[6] != FeatureClassPopulatedPlace {
			b.dropped++
			continue
		}

		rec, err := parseFields(fields)
		if err != nil {
			return &MalformedRecordError{Line: b.line, Fields: len(fields), Reason: err.Error()}
		}

		if pos, ok := b.byID[rec.ID]; ok {
			// Overwrite in place so pagination order matches first insertion.
			b.records[pos] = rec
			b.dupes++
			log.WithFields(log.Fields{"geonameid": rec.ID, "line": b.line}).
				Warn("duplicate geonameid, keeping later record")
			continue
		}
		b.byID[rec.ID] = len(b.records)
		b.records = append(b.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}
	return nil
}

// finish builds the secondary indices over the accumulated records.
//
// The name index is populated in ascending population order so that for any
// name shared by several places, the last entry in its slice is the most
// populous. The sort is stable; equal populations keep their insertion
// order. Duplicate names within one record's alternate set are appended once
// per occurrence, not deduplicated.
func (b *builder) finish() *Index {
	ix := &Index{
		records: b.records,
		byID:    b.byID,
		byName:  make(map[string][]int),
		cells:   make(map[s2.CellID][]int),
	}

	order := make([]int, len(ix.records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ix.records[order[i]].Population < ix.records[order[j]].Population
	})

	for _, pos := range order {
		for _, name := range ix.records[pos].AlternateNames {
			ix.byName[name] = append(ix.byName[name], pos)
		}
	}

	for pos, rec := range ix.records {
		ll := s2.LatLngFromDegrees(rec.Latitude, rec.Longitude)
		cell := s2.CellIDFromLatLng(ll).Parent(cellLevel)
		ix.cells[cell] = append(ix.cells[cell], pos)
	}

	log.WithFields(log.Fields{
		"records":    len(ix.records),
		"names":      len(ix.byName),
		"filtered":   b.dropped,
		"duplicates": b.dupes,
	}).Info("index built")

	return ix
}

// parseFields converts one validated 19-field row into a GeoName. Numeric
// fields must parse; everything else is carried as-is.
func parseFields(fields []string) (GeoName, error) {
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return GeoName{}, fmt.Errorf("geonameid %q: %w", fields[0], err)
	}
	lat, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return GeoName{}, fmt.Errorf("latitude %q: %w", fields[4], err)
	}
	lng, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return GeoName{}, fmt.Errorf("longitude %q: %w", fields[5], err)
	}
	pop, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return GeoName{}, fmt.Errorf("population %q: %w", fields[14], err)
	}

	return GeoName{
		ID:               id,
		Name:             fields[1],
		ASCIIName:        fields[2],
		AlternateNames:   splitAlternateNames(fields[3]),
		Latitude:         lat,
		Longitude:        lng,
		FeatureClass:     fields[6],
		FeatureCode:      fields[7],
		CountryCode:      fields[8],
		CC2:              fields[9],
		Admin1Code:       fields[10],
		Admin2Code:       fields[11],
		Admin3Code:       fields[12],
		Admin4Code:       fields[13],
		Population:       pop,
		Elevation:        fields[15],
		DEM:              fields[16],
		Timezone:         fields[17],
		ModificationDate: fields[18],
	}, nil
}

// splitAlternateNames splits the comma-delimited alternate-name column.
// Empty tokens are dropped; repeated names are kept.
func splitAlternateNames(s string) []string {
	if s == "" {
		return nil
	}
	var names []string
	for _, raw := range strings.Split(s, ",") {
		if raw == "" {
			continue
		}
		names = append(names, raw)
	}
	return names
}
