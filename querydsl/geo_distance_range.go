package querydsl

import (
	"strings"

	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/geo"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// GeoDistanceRangeName is the canonical name of the geo range clause.
const GeoDistanceRangeName = "geo_distance_range"

// GeoDistanceRangeBuilder describes a query matching documents whose
// point field lies within a distance ring around an origin. Bounds stay
// tagged values: a textual "200km" and a numeric 200 are different inputs
// for downstream unit handling.
type GeoDistanceRangeBuilder struct {
	fieldName    string
	point        geo.Point
	geohash      string
	from         Value
	to           Value
	includeLower bool
	includeUpper bool
	unit         geo.Unit
	distanceType geo.DistanceType
	optimizeBbox string
	coerce       bool
	ignoreMalf   bool
	boost        float64
	queryName    string
}

var geoDistanceRangePrototype = GeoDistanceRangeBuilder{
	includeLower: true,
	includeUpper: true,
	unit:         geo.DefaultUnit,
	distanceType: geo.DefaultDistanceType,
	optimizeBbox: "memory",
	boost:        DefaultBoost,
}

func (b GeoDistanceRangeBuilder) WriterName() string {
	return GeoDistanceRangeName
}

func (b GeoDistanceRangeBuilder) FieldName() string {
	return b.fieldName
}

func (b GeoDistanceRangeBuilder) Point() geo.Point {
	return b.point
}

// Geohash returns the geohash the origin arrived as, or "" when the
// document used another point shape.
func (b GeoDistanceRangeBuilder) Geohash() string {
	return b.geohash
}

func (b GeoDistanceRangeBuilder) From() Value {
	return b.from
}

func (b GeoDistanceRangeBuilder) To() Value {
	return b.to
}

func (b GeoDistanceRangeBuilder) IncludeLower() bool {
	return b.includeLower
}

func (b GeoDistanceRangeBuilder) IncludeUpper() bool {
	return b.includeUpper
}

func (b GeoDistanceRangeBuilder) Unit() geo.Unit {
	return b.unit
}

func (b GeoDistanceRangeBuilder) DistanceType() geo.DistanceType {
	return b.distanceType
}

func (b GeoDistanceRangeBuilder) OptimizeBbox() string {
	return b.optimizeBbox
}

func (b GeoDistanceRangeBuilder) Coerce() bool {
	return b.coerce
}

func (b GeoDistanceRangeBuilder) IgnoreMalformed() bool {
	return b.ignoreMalf
}

func (b GeoDistanceRangeBuilder) Boost() float64 {
	return b.boost
}

func (b GeoDistanceRangeBuilder) QueryName() string {
	return b.queryName
}

func (b GeoDistanceRangeBuilder) Source() map[string]any {
	body := map[string]any{
		"include_lower":    b.includeLower,
		"include_upper":    b.includeUpper,
		"unit":             string(b.unit),
		"distance_type":    string(b.distanceType),
		"optimize_bbox":    b.optimizeBbox,
		"coerce":           b.coerce,
		"ignore_malformed": b.ignoreMalf,
		"boost":            b.boost,
	}
	if b.geohash != "" {
		body[b.fieldName+geo.GeohashSuffix] = b.geohash
	} else {
		body[b.fieldName] = []any{b.point.Lon, b.point.Lat}
	}
	if b.from.IsSet() {
		body["from"] = b.from.Interface()
	}
	if b.to.IsSet() {
		body["to"] = b.to.Interface()
	}
	if b.queryName != "" {
		body["_name"] = b.queryName
	}
	return map[string]any{GeoDistanceRangeName: body}
}

var (
	geoFromField         = NewParseField("from")
	geoToField           = NewParseField("to")
	geoIncludeLowerField = NewParseField("include_lower")
	geoIncludeUpperField = NewParseField("include_upper")
	geoGtField           = NewParseField("gt")
	geoGteField          = NewParseField("gte", "ge")
	geoLtField           = NewParseField("lt")
	geoLteField          = NewParseField("lte", "le")
	geoUnitField         = NewParseField("unit")
	geoDistanceTypeField = NewParseField("distance_type")
	geoNameField         = NewParseField("_name")
	geoBoostField        = NewParseField("boost")
	geoOptimizeBboxField = NewParseField("optimize_bbox")
	geoCoerceField       = NewParseField("coerce", "normalize")
	geoIgnoreMalfField   = NewParseField("ignore_malformed")
)

type GeoDistanceRangeParser struct{}

func (GeoDistanceRangeParser) Names() []string {
	return []string{GeoDistanceRangeName, toCamelCase(GeoDistanceRangeName)}
}

func (GeoDistanceRangeParser) Prototype() Builder {
	return geoDistanceRangePrototype
}

// geoPointState accumulates the origin across whatever shapes the
// document supplies. The shape seen last wins wholesale; a half-set
// suffix pair is only an error once the clause body has ended.
type geoPointState struct {
	point   geo.Point
	latSet  bool
	lonSet  bool
	geohash string
}

func (s *geoPointState) setPoint(p geo.Point) {
	s.point = p
	s.latSet, s.lonSet = true, true
	s.geohash = ""
}

func (s *geoPointState) setLat(lat float64) {
	s.point.Lat = lat
	s.latSet = true
	s.geohash = ""
}

func (s *geoPointState) setLon(lon float64) {
	s.point.Lon = lon
	s.lonSet = true
	s.geohash = ""
}

func (s *geoPointState) setGeohash(hash string) {
	s.geohash = hash
	s.latSet, s.lonSet = false, false
}

func (p GeoDistanceRangeParser) Parse(ctx *ParseContext) (Builder, error) {
	c := ctx.Cursor()
	m := ctx.Matcher()

	var boost *float64
	var queryName string
	var fieldName string
	var ps geoPointState
	var vFrom, vTo Value
	var includeLower, includeUpper *bool
	var unit *geo.Unit
	var distanceType *geo.DistanceType
	var optimizeBbox string
	var coerce, ignoreMalformed *bool

	var currentFieldName string
	for tok := c.Next(); tok.Type != token.ENDOBJECT; tok = c.Next() {
		if tok.Type == token.FIELDNAME {
			currentFieldName = tok.Literal
			continue
		}

		if ctx.IsDeprecatedSetting(currentFieldName) {
			if err := c.SkipChildren(); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case tok.Type == token.NULL:
			// A null-valued field reads as if it were never written: a
			// null bound shorthand touches neither the bound nor its
			// inclusivity flag.

		case tok.Type == token.STARTARRAY, tok.Type == token.STARTOBJECT:
			point, err := parseGeoPoint(c)
			if err != nil {
				return nil, err
			}
			ps.setPoint(point)
			fieldName = currentFieldName

		case tok.IsValue():
			handled, err := parseGeoRangeValue(c, m, currentFieldName, &vFrom, &vTo, &includeLower, &includeUpper)
			if err != nil {
				return nil, err
			}
			if handled {
				continue
			}

			if ok, err := m.Match(currentFieldName, geoUnitField); err != nil {
				return nil, err
			} else if ok {
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				u, err := geo.ParseUnit(text)
				if err != nil {
					return nil, err
				}
				unit = &u
				continue
			}

			if ok, err := m.Match(currentFieldName, geoDistanceTypeField); err != nil {
				return nil, err
			} else if ok {
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				dt, err := geo.ParseDistanceType(text)
				if err != nil {
					return nil, err
				}
				distanceType = &dt
				continue
			}

			switch {
			case strings.HasSuffix(currentFieldName, geo.LatSuffix):
				lat, err := c.Float()
				if err != nil {
					return nil, err
				}
				ps.setLat(lat)
				fieldName = strings.TrimSuffix(currentFieldName, geo.LatSuffix)
				continue
			case strings.HasSuffix(currentFieldName, geo.LonSuffix):
				lon, err := c.Float()
				if err != nil {
					return nil, err
				}
				ps.setLon(lon)
				fieldName = strings.TrimSuffix(currentFieldName, geo.LonSuffix)
				continue
			case strings.HasSuffix(currentFieldName, geo.GeohashSuffix):
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				ps.setGeohash(text)
				fieldName = strings.TrimSuffix(currentFieldName, geo.GeohashSuffix)
				continue
			}

			if ok, err := m.Match(currentFieldName, geoNameField); err != nil {
				return nil, err
			} else if ok {
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				queryName = text
				continue
			}

			if ok, err := m.Match(currentFieldName, geoBoostField); err != nil {
				return nil, err
			} else if ok {
				f, err := c.Float()
				if err != nil {
					return nil, err
				}
				boost = &f
				continue
			}

			if ok, err := m.Match(currentFieldName, geoOptimizeBboxField); err != nil {
				return nil, err
			} else if ok {
				text, err := c.Text()
				if err != nil {
					return nil, err
				}
				optimizeBbox = text
				continue
			}

			if ok, err := m.Match(currentFieldName, geoCoerceField); err != nil {
				return nil, err
			} else if ok {
				b, err := c.Bool()
				if err != nil {
					return nil, err
				}
				coerce = &b
				continue
			}

			if ok, err := m.Match(currentFieldName, geoIgnoreMalfField); err != nil {
				return nil, err
			} else if ok {
				b, err := c.Bool()
				if err != nil {
					return nil, err
				}
				ignoreMalformed = &b
				continue
			}

			// Fallback: an unmatched string may be the point itself, as
			// a combined "lat,lon" pair or a geohash.
			if tok.Type == token.STRING {
				point, err := geo.FromString(tok.Literal)
				if err == nil {
					ps.setPoint(point)
					fieldName = currentFieldName
					continue
				}
			}
			return nil, unrecognizedFieldFault(GeoDistanceRangeName, currentFieldName)

		default:
			return nil, fault.New(fault.MalformedValueCode, "["+GeoDistanceRangeName+"] query malformed at ["+tok.Literal+"]")
		}
	}

	builder := geoDistanceRangePrototype

	if fieldName == "" {
		return nil, missingFieldFault(GeoDistanceRangeName, "field")
	}
	builder.fieldName = fieldName

	switch {
	case ps.geohash != "":
		point, err := geo.FromGeohash(ps.geohash)
		if err != nil {
			return nil, err
		}
		builder.point = point
		builder.geohash = ps.geohash
	case ps.latSet && ps.lonSet:
		builder.point = ps.point
	case ps.latSet != ps.lonSet:
		return nil, fault.New(fault.IncompletePointCode, "["+GeoDistanceRangeName+"] received only one of lat and lon for ["+fieldName+"]").
			WithMetadata(fault.ClauseMetadata{Clause: GeoDistanceRangeName, Field: fieldName})
	default:
		return nil, missingFieldFault(GeoDistanceRangeName, fieldName)
	}

	builder.from = vFrom
	builder.to = vTo
	if includeLower != nil {
		builder.includeLower = *includeLower
	}
	if includeUpper != nil {
		builder.includeUpper = *includeUpper
	}
	if unit != nil {
		builder.unit = *unit
	}
	if distanceType != nil {
		builder.distanceType = *distanceType
	}
	if optimizeBbox != "" {
		builder.optimizeBbox = optimizeBbox
	}
	if coerce != nil {
		builder.coerce = *coerce
	}
	if ignoreMalformed != nil {
		builder.ignoreMalf = *ignoreMalformed
	}
	if boost != nil {
		builder.boost = *boost
	}
	builder.queryName = queryName

	return builder, nil
}

// parseGeoRangeValue handles the three spellings of each bound: the
// from/to pair with separate inclusivity toggles, and the gt/gte/lt/lte
// shorthands that overwrite both the bound value and its inclusivity flag
// in one step. Returns false when the field is none of the bound fields.
func parseGeoRangeValue(c *Cursor, m Matcher, name string, vFrom, vTo *Value, includeLower, includeUpper **bool) (bool, error) {
	setBound := func(target *Value) error {
		v, err := CoerceScalar(c.Current())
		if err != nil {
			return err
		}
		*target = v
		return nil
	}
	setFlag := func(target **bool, val bool) {
		b := val
		*target = &b
	}

	if ok, err := m.Match(name, geoFromField); err != nil {
		return false, err
	} else if ok {
		return true, setBound(vFrom)
	}

	if ok, err := m.Match(name, geoToField); err != nil {
		return false, err
	} else if ok {
		return true, setBound(vTo)
	}

	if ok, err := m.Match(name, geoIncludeLowerField); err != nil {
		return false, err
	} else if ok {
		b, err := c.Bool()
		if err != nil {
			return false, err
		}
		setFlag(includeLower, b)
		return true, nil
	}

	if ok, err := m.Match(name, geoIncludeUpperField); err != nil {
		return false, err
	} else if ok {
		b, err := c.Bool()
		if err != nil {
			return false, err
		}
		setFlag(includeUpper, b)
		return true, nil
	}

	if ok, err := m.Match(name, geoGtField); err != nil {
		return false, err
	} else if ok {
		if err := setBound(vFrom); err != nil {
			return false, err
		}
		setFlag(includeLower, false)
		return true, nil
	}

	if ok, err := m.Match(name, geoGteField); err != nil {
		return false, err
	} else if ok {
		if err := setBound(vFrom); err != nil {
			return false, err
		}
		setFlag(includeLower, true)
		return true, nil
	}

	if ok, err := m.Match(name, geoLtField); err != nil {
		return false, err
	} else if ok {
		if err := setBound(vTo); err != nil {
			return false, err
		}
		setFlag(includeUpper, false)
		return true, nil
	}

	if ok, err := m.Match(name, geoLteField); err != nil {
		return false, err
	} else if ok {
		if err := setBound(vTo); err != nil {
			return false, err
		}
		setFlag(includeUpper, true)
		return true, nil
	}

	return false, nil
}
