package geo

import (
	"math"
	"testing"
)

const (
	testLat     = 57.64911
	testLon     = 10.40744
	testGeohash = "u4pruydqqvj"
)

func TestFromGeohash(t *testing.T) {
	p, err := FromGeohash(testGeohash)
	if err != nil {
		t.Fatalf("FromGeohash(%q) failed: %v", testGeohash, err)
	}

	if math.Abs(p.Lat-testLat) > 1e-3 || math.Abs(p.Lon-testLon) > 1e-3 {
		t.Fatalf("FromGeohash(%q) = %+v, want lat %v lon %v", testGeohash, p, testLat, testLon)
	}
}

func TestFromGeohashInvalid(t *testing.T) {
	for _, hash := range []string{"", "abc!", "with space", "AUPPER"} {
		if _, err := FromGeohash(hash); err == nil {
			t.Errorf("FromGeohash(%q) succeeded, want an error", hash)
		}
	}
}

func TestFromString(t *testing.T) {
	p, err := FromString("57.64911, 10.40744")
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if p.Lat != testLat || p.Lon != testLon {
		t.Fatalf("FromString = %+v, want lat %v lon %v", p, testLat, testLon)
	}

	// No comma means geohash.
	p, err = FromString(testGeohash)
	if err != nil {
		t.Fatalf("FromString(%q) failed: %v", testGeohash, err)
	}
	if math.Abs(p.Lat-testLat) > 1e-3 {
		t.Fatalf("FromString(%q) = %+v", testGeohash, p)
	}

	if _, err := FromString("57.64911,east"); err == nil {
		t.Fatal("FromString with a bad longitude should fail")
	}
}

func TestGeohashRoundTrip(t *testing.T) {
	p := Point{Lat: testLat, Lon: testLon}

	decoded, err := FromGeohash(p.Geohash())
	if err != nil {
		t.Fatalf("decoding our own geohash failed: %v", err)
	}
	if math.Abs(decoded.Lat-p.Lat) > 1e-5 || math.Abs(decoded.Lon-p.Lon) > 1e-5 {
		t.Fatalf("round trip drifted: %+v vs %+v", decoded, p)
	}
}

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{
		"m":             Meters,
		"meters":        Meters,
		"km":            Kilometers,
		"mi":            Miles,
		"miles":         Miles,
		"NM":            NauticalMiles,
		"nauticalmiles": NauticalMiles,
		"ft":            Feet,
	}

	for in, want := range tests {
		u, err := ParseUnit(in)
		if err != nil {
			t.Errorf("ParseUnit(%q) failed: %v", in, err)
			continue
		}
		if u != want {
			t.Errorf("ParseUnit(%q) = %v, want %v", in, u, want)
		}
	}

	if _, err := ParseUnit("parsec"); err == nil {
		t.Error("ParseUnit(parsec) succeeded, want an error")
	}
}

func TestUnitToMeters(t *testing.T) {
	if got := Kilometers.ToMeters(2); got != 2000 {
		t.Errorf("2km = %vm, want 2000", got)
	}
	if got := Miles.ToMeters(1); math.Abs(got-1609.344) > 1e-9 {
		t.Errorf("1mi = %vm, want 1609.344", got)
	}
}

func TestParseDistanceType(t *testing.T) {
	tests := map[string]DistanceType{
		"plane":      Plane,
		"arc":        Arc,
		"sloppy_arc": SloppyArc,
		"sloppyArc":  SloppyArc,
		"factor":     Factor,
	}

	for in, want := range tests {
		dt, err := ParseDistanceType(in)
		if err != nil {
			t.Errorf("ParseDistanceType(%q) failed: %v", in, err)
			continue
		}
		if dt != want {
			t.Errorf("ParseDistanceType(%q) = %v, want %v", in, dt, want)
		}
	}

	if _, err := ParseDistanceType("euclidean"); err == nil {
		t.Error("ParseDistanceType(euclidean) succeeded, want an error")
	}
}
