// Package geo holds the geographic value types shared by geo clauses: the
// normalized point, geohash decoding, distance units and distance
// calculation modes.
package geo

import (
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"

	"github.com/vhyza/elasticsearch/fault"
)

// Suffixes a composite point field may carry. The clause parser strips
// them to recover the base field name.
const (
	LatSuffix     = ".lat"
	LonSuffix     = ".lon"
	GeohashSuffix = ".geohash"
)

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Point is a normalized latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// FromGeohash decodes a geohash cell into the point at its center.
func FromGeohash(hash string) (Point, error) {
	if hash == "" {
		return Point{}, fault.New(fault.MalformedValueCode, "empty geohash")
	}
	for _, r := range hash {
		if !strings.ContainsRune(geohashAlphabet, r) {
			return Point{}, fault.New(fault.MalformedValueCode, "invalid geohash character in ["+hash+"]")
		}
	}
	lat, lon := geohash.DecodeCenter(hash)
	return Point{Lat: lat, Lon: lon}, nil
}

// FromString reads a point from its combined textual forms: "lat,lon" when
// the text contains a comma, a geohash otherwise.
func FromString(s string) (Point, error) {
	if !strings.Contains(s, ",") {
		return FromGeohash(s)
	}

	parts := strings.SplitN(s, ",", 2)
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fault.New(fault.MalformedValueCode, "cannot read latitude from ["+s+"]").WithOriginal(err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fault.New(fault.MalformedValueCode, "cannot read longitude from ["+s+"]").WithOriginal(err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// Geohash encodes the point back into a geohash string.
func (p Point) Geohash() string {
	return geohash.Encode(p.Lat, p.Lon)
}
