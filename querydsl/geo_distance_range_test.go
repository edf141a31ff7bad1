package querydsl

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/geo"
)

// Jutland test location, the classic geohash example.
const (
	testLat     = 57.64911
	testLon     = 10.40744
	testGeohash = "u4pruydqqvj"
)

func TestGeoDistanceRangePointShapes(t *testing.T) {
	tests := map[string]string{
		"array":           `{"geo_distance_range": {"from": "1km", "location": [10.40744, 57.64911]}}`,
		"array_with_alt":  `{"geo_distance_range": {"from": "1km", "location": [10.40744, 57.64911, 12.0]}}`,
		"object":          `{"geo_distance_range": {"from": "1km", "location": {"lat": 57.64911, "lon": 10.40744}}}`,
		"object_full":     `{"geo_distance_range": {"from": "1km", "location": {"latitude": 57.64911, "longitude": 10.40744}}}`,
		"suffix_pair":     `{"geo_distance_range": {"from": "1km", "location.lat": 57.64911, "location.lon": 10.40744}}`,
		"geohash_suffix":  `{"geo_distance_range": {"from": "1km", "location.geohash": "u4pruydqqvj"}}`,
		"combined_string": `{"geo_distance_range": {"from": "1km", "location": "57.64911,10.40744"}}`,
		"geohash_string":  `{"geo_distance_range": {"from": "1km", "location": "u4pruydqqvj"}}`,
	}

	for name, source := range tests {
		b := parseTestQuery(t, source).(GeoDistanceRangeBuilder)

		if b.FieldName() != "location" {
			t.Errorf("%s: field name = %q, want location", name, b.FieldName())
		}

		p := b.Point()
		if math.Abs(p.Lat-testLat) > 1e-3 || math.Abs(p.Lon-testLon) > 1e-3 {
			t.Errorf("%s: point = %+v, want lat %v lon %v", name, p, testLat, testLon)
		}
	}
}

func TestGeoDistanceRangeLastShapeWins(t *testing.T) {
	// The array arrives after the geohash, so the array's coordinates win.
	b := parseTestQuery(t, `{"geo_distance_range": {
		"from": 1,
		"location.geohash": "u4pruydqqvj",
		"location": [0.0, 0.0]
	}}`).(GeoDistanceRangeBuilder)

	p := b.Point()
	if p.Lat != 0 || p.Lon != 0 {
		t.Fatalf("point = %+v, want the later array shape (0, 0)", p)
	}
	if b.Geohash() != "" {
		t.Fatalf("geohash = %q, want the earlier shape discarded", b.Geohash())
	}
}

func TestGeoDistanceRangeIncompletePoint(t *testing.T) {
	f := faultFrom(t, `{"geo_distance_range": {"from": 1, "location.lat": 57.64911}}`)

	if f.Code() != fault.IncompletePointCode {
		t.Fatalf("fault code = %v, want %v", f.Code(), fault.IncompletePointCode)
	}
}

func TestGeoDistanceRangeShorthandOverwrite(t *testing.T) {
	// gte sets the bound and its inclusivity atomically; a later from +
	// include_lower pair overwrites both, and vice versa. Last token wins.
	tests := []struct {
		source       string
		from         Value
		includeLower bool
	}{
		{
			`{"geo_distance_range": {"location": [10.40744, 57.64911], "gte": 5, "from": 5, "include_lower": false}}`,
			NumberValue(5), false,
		},
		{
			`{"geo_distance_range": {"location": [10.40744, 57.64911], "from": 5, "include_lower": false, "gte": 5}}`,
			NumberValue(5), true,
		},
		{
			`{"geo_distance_range": {"location": [10.40744, 57.64911], "include_lower": false, "gt": 3, "gte": "5km"}}`,
			StringValue("5km"), true,
		},
	}

	for _, tt := range tests {
		b := parseTestQuery(t, tt.source).(GeoDistanceRangeBuilder)
		if !reflect.DeepEqual(b.From(), tt.from) {
			t.Errorf("ParseQuery(%q) from = %+v, want %+v", tt.source, b.From(), tt.from)
		}
		if b.IncludeLower() != tt.includeLower {
			t.Errorf("ParseQuery(%q) includeLower = %v, want %v", tt.source, b.IncludeLower(), tt.includeLower)
		}
	}
}

func TestGeoDistanceRangeBoundsKeepTheirKind(t *testing.T) {
	b := parseTestQuery(t, `{"geo_distance_range": {
		"location": [10.40744, 57.64911],
		"from": "200km",
		"to": 400000
	}}`).(GeoDistanceRangeBuilder)

	if b.From().Kind != ValueString || b.From().Str != "200km" {
		t.Fatalf("from = %+v, want the verbatim string 200km", b.From())
	}
	if b.To().Kind != ValueNumber || b.To().Num != 400000 {
		t.Fatalf("to = %+v, want the number 400000", b.To())
	}
}

func TestGeoDistanceRangeNullBoundIgnored(t *testing.T) {
	// A null bound shorthand is skipped wholesale: neither the bound nor
	// its inclusivity flag changes, so the earlier include_lower survives.
	b := parseTestQuery(t, `{"geo_distance_range": {
		"location": [10.40744, 57.64911],
		"include_lower": false,
		"gte": null
	}}`).(GeoDistanceRangeBuilder)

	if b.From().IsSet() {
		t.Fatalf("from = %+v, want unset", b.From())
	}
	if b.IncludeLower() {
		t.Fatal("includeLower = true, want the earlier false to survive")
	}
}

func TestGeoDistanceRangeNullFieldsIgnored(t *testing.T) {
	plain := parseTestQuery(t, `{"geo_distance_range": {
		"location": [10.40744, 57.64911],
		"from": "200km"
	}}`)
	withNulls := parseTestQuery(t, `{"geo_distance_range": {
		"location": [10.40744, 57.64911],
		"from": "200km",
		"to": null,
		"include_upper": null,
		"unit": null,
		"optimize_bbox": null,
		"boost": null
	}}`)

	if !reflect.DeepEqual(plain, withNulls) {
		t.Fatalf("null-valued fields changed the builder:\n%+v\nwant %+v", withNulls, plain)
	}
}

func TestGeoDistanceRangeUnknownField(t *testing.T) {
	f := faultFrom(t, `{"geo_distance_range": {"location": [10.40744, 57.64911], "not_a_real_field": 1}}`)

	if f.Code() != fault.UnrecognizedFieldCode {
		t.Fatalf("fault code = %v, want %v", f.Code(), fault.UnrecognizedFieldCode)
	}
	md, ok := f.Metadata().(fault.ClauseMetadata)
	if !ok || md.Clause != "geo_distance_range" || md.Field != "not_a_real_field" {
		t.Fatalf("fault metadata = %#v, want clause and field named", f.Metadata())
	}
}

func TestGeoDistanceRangeDeprecatedSettingSkipped(t *testing.T) {
	plain := parseTestQuery(t, `{"geo_distance_range": {"from": 1, "location": [10.40744, 57.64911]}}`)
	cached := parseTestQuery(t, `{"geo_distance_range": {"from": 1, "_cache": true, "location": [10.40744, 57.64911]}}`)

	if !reflect.DeepEqual(plain, cached) {
		t.Fatalf("_cache changed the builder:\n%+v\nwant %+v", cached, plain)
	}
}

func TestGeoDistanceRangeOptions(t *testing.T) {
	b := parseTestQuery(t, `{"geo_distance_range": {
		"location": [10.40744, 57.64911],
		"from": "200km",
		"unit": "miles",
		"distance_type": "arc",
		"optimize_bbox": "indexed",
		"normalize": true,
		"ignore_malformed": true,
		"boost": 3,
		"_name": "ring"
	}}`).(GeoDistanceRangeBuilder)

	if b.Unit() != geo.Miles {
		t.Errorf("unit = %v, want %v", b.Unit(), geo.Miles)
	}
	if b.DistanceType() != geo.Arc {
		t.Errorf("distance type = %v, want %v", b.DistanceType(), geo.Arc)
	}
	if b.OptimizeBbox() != "indexed" {
		t.Errorf("optimize bbox = %q, want indexed", b.OptimizeBbox())
	}
	if !b.Coerce() || !b.IgnoreMalformed() {
		t.Errorf("coerce = %v, ignoreMalformed = %v, want both true", b.Coerce(), b.IgnoreMalformed())
	}
	if b.Boost() != 3 || b.QueryName() != "ring" {
		t.Errorf("boost = %v, name = %q, want 3 and ring", b.Boost(), b.QueryName())
	}
}

func TestGeoDistanceRangeDefaults(t *testing.T) {
	b := parseTestQuery(t, `{"geo_distance_range": {"location": [10.40744, 57.64911]}}`).(GeoDistanceRangeBuilder)

	if !b.IncludeLower() || !b.IncludeUpper() {
		t.Error("bounds should default to inclusive")
	}
	if b.Unit() != geo.DefaultUnit {
		t.Errorf("unit = %v, want %v", b.Unit(), geo.DefaultUnit)
	}
	if b.DistanceType() != geo.DefaultDistanceType {
		t.Errorf("distance type = %v, want %v", b.DistanceType(), geo.DefaultDistanceType)
	}
	if b.OptimizeBbox() != "memory" {
		t.Errorf("optimize bbox = %q, want memory", b.OptimizeBbox())
	}
	if b.Boost() != DefaultBoost {
		t.Errorf("boost = %v, want %v", b.Boost(), DefaultBoost)
	}
}

func TestGeoDistanceRangeStrictDeprecatedSpelling(t *testing.T) {
	source := `{"geo_distance_range": {"location": [10.40744, 57.64911], "ge": 5}}`

	if _, err := DefaultRegistry().ParseQuery(source, Matcher{}); err != nil {
		t.Fatalf("lenient parse failed: %v", err)
	}

	_, err := DefaultRegistry().ParseQuery(source, Matcher{Strict: true})
	var f fault.Fault
	if !errors.As(err, &f) || f.Code() != fault.DeprecatedFieldCode {
		t.Fatalf("strict parse error = %v, want a deprecated_field fault", err)
	}
}

func TestGeoDistanceRangeRoundTrip(t *testing.T) {
	sources := []string{
		`{"geo_distance_range": {"location": [10.40744, 57.64911], "from": "200km", "to": 400000, "include_upper": false}}`,
		`{"geo_distance_range": {"location.geohash": "u4pruydqqvj", "gte": 5, "unit": "km", "_name": "ring"}}`,
	}

	for _, source := range sources {
		first := parseTestQuery(t, source)

		serialized, err := json.Marshal(first.Source())
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		second := parseTestQuery(t, string(serialized))
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("round trip of %q changed the builder:\n%+v\nwant %+v", source, second, first)
		}
	}
}
