package geo

import "github.com/vhyza/elasticsearch/fault"

// Unit is a distance unit a range bound may be expressed in.
type Unit string

const (
	Inch          Unit = "in"
	Yard          Unit = "yd"
	Feet          Unit = "ft"
	Kilometers    Unit = "km"
	NauticalMiles Unit = "nmi"
	Millimeters   Unit = "mm"
	Centimeters   Unit = "cm"
	Miles         Unit = "mi"
	Meters        Unit = "m"
)

// DefaultUnit applies when a clause carries no unit field.
const DefaultUnit = Meters

var unitNames = map[string]Unit{
	"in":            Inch,
	"inch":          Inch,
	"yd":            Yard,
	"yards":         Yard,
	"ft":            Feet,
	"feet":          Feet,
	"km":            Kilometers,
	"kilometers":    Kilometers,
	"nmi":           NauticalMiles,
	"NM":            NauticalMiles,
	"nauticalmiles": NauticalMiles,
	"mm":            Millimeters,
	"millimeters":   Millimeters,
	"cm":            Centimeters,
	"centimeters":   Centimeters,
	"mi":            Miles,
	"miles":         Miles,
	"m":             Meters,
	"meters":        Meters,
}

// metersPerUnit converts a quantity of the unit to meters.
var metersPerUnit = map[Unit]float64{
	Inch:          0.0254,
	Yard:          0.9144,
	Feet:          0.3048,
	Kilometers:    1000,
	NauticalMiles: 1852,
	Millimeters:   0.001,
	Centimeters:   0.01,
	Miles:         1609.344,
	Meters:        1,
}

func ParseUnit(s string) (Unit, error) {
	if u, ok := unitNames[s]; ok {
		return u, nil
	}
	return "", fault.New(fault.MalformedValueCode, "no distance unit match for ["+s+"]")
}

// ToMeters converts a quantity of this unit into meters.
func (u Unit) ToMeters(quantity float64) float64 {
	return quantity * metersPerUnit[u]
}

// DistanceType selects the algorithm used to compute distances between
// points.
type DistanceType string

const (
	Plane     DistanceType = "plane"
	Arc       DistanceType = "arc"
	SloppyArc DistanceType = "sloppy_arc"
	Factor    DistanceType = "factor"
)

// DefaultDistanceType applies when a clause carries no distance_type
// field.
const DefaultDistanceType = SloppyArc

func ParseDistanceType(s string) (DistanceType, error) {
	switch s {
	case "plane":
		return Plane, nil
	case "arc":
		return Arc, nil
	case "sloppy_arc", "sloppyArc":
		return SloppyArc, nil
	case "factor":
		return Factor, nil
	}
	return "", fault.New(fault.MalformedValueCode, "no distance type match for ["+s+"]")
}
