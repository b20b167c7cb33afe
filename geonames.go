// Package geonames serves place records (cities, towns, villages) loaded
// from a GeoNames tab-separated dump. The dataset is parsed once at startup
// into a pair of in-memory indices; all queries afterwards are read-only and
// safe for concurrent use without locking.
package geonames

// FeatureClassPopulatedPlace marks inhabited localities in the GeoNames
// feature taxonomy (cities, towns, villages). Records with any other feature
// class are dropped at load time.
const FeatureClassPopulatedPlace = "P"

// GeoName is one row of the GeoNames dump. Field order and semantics follow
// the published 19-column schema; numeric fields are parsed at load time and
// the rest are kept as raw strings. Values are never mutated after the index
// is built.
type GeoName struct {
	ID               int      `json:"geonameid"`
	Name             string   `json:"name"`
	ASCIIName        string   `json:"asciiname"`
	AlternateNames   []string `json:"alternatenames"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	FeatureClass     string   `json:"feature_class"`
	FeatureCode      string   `json:"feature_code"`
	CountryCode      string   `json:"country_code"`
	CC2              string   `json:"cc2"`
	Admin1Code       string   `json:"admin1_code"`
	Admin2Code       string   `json:"admin2_code"`
	Admin3Code       string   `json:"admin3_code"`
	Admin4Code       string   `json:"admin4_code"`
	Population       int64    `json:"population"`
	Elevation        string   `json:"elevation"`
	DEM              string   `json:"dem"`
	Timezone         string   `json:"timezone"`
	ModificationDate string   `json:"modification_date"`
}

// Comparison is the result of comparing two places by name: which one lies
// farther north, and how their current UTC offsets relate. TimezoneDiff is
// formatted as a signed HH:MM string; the sign is "+" for a non-negative
// difference, including zero.
type Comparison struct {
	North        string  `json:"north"`
	IsSameTime   bool    `json:"is_same_time"`
	TimezoneDiff string  `json:"timezone_diff"`
	First        GeoName `json:"name_1"`
	Second       GeoName `json:"name_2"`
}
