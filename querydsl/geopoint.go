package querydsl

import (
	"github.com/vhyza/elasticsearch/fault"
	"github.com/vhyza/elasticsearch/querydsl/geo"
	"github.com/vhyza/elasticsearch/querydsl/token"
)

// parseGeoPoint decodes a point from whichever token shape the document
// used: an array [lon, lat], an object bearing lat/lon sub-fields, or a
// combined "lat,lon"/geohash string. The cursor must sit on the shape's
// first token and is left on its last.
func parseGeoPoint(c *Cursor) (geo.Point, error) {
	switch c.Current().Type {
	case token.STARTARRAY:
		return parseGeoPointArray(c)
	case token.STARTOBJECT:
		return parseGeoPointObject(c)
	case token.STRING:
		return geo.FromString(c.Current().Literal)
	}
	return geo.Point{}, fault.New(fault.MalformedValueCode, "geo point expected, found "+c.Current().Literal)
}

// Array order is [longitude, latitude] with an optional third altitude
// element; anything past that is ignored.
func parseGeoPointArray(c *Cursor) (geo.Point, error) {
	var coords []float64
	for t := c.Next(); t.Type != token.ENDARRAY; t = c.Next() {
		if t.Type != token.NUMBER {
			return geo.Point{}, fault.New(fault.MalformedValueCode, "numeric value expected in geo point array, found "+t.Literal)
		}
		f, err := c.Float()
		if err != nil {
			return geo.Point{}, err
		}
		coords = append(coords, f)
	}
	if len(coords) < 2 {
		return geo.Point{}, fault.New(fault.MalformedValueCode, "geo point array must hold at least [lon, lat]")
	}
	return geo.Point{Lat: coords[1], Lon: coords[0]}, nil
}

func parseGeoPointObject(c *Cursor) (geo.Point, error) {
	var p geo.Point
	var latSet, lonSet bool

	var currentFieldName string
	for t := c.Next(); t.Type != token.ENDOBJECT; t = c.Next() {
		if t.Type == token.FIELDNAME {
			currentFieldName = t.Literal
			continue
		}
		if !t.IsValue() {
			return geo.Point{}, fault.New(fault.MalformedValueCode, "scalar value expected for ["+currentFieldName+"] in geo point object")
		}

		switch currentFieldName {
		case "lat", "latitude":
			lat, err := c.Float()
			if err != nil {
				return geo.Point{}, err
			}
			p.Lat = lat
			latSet = true
		case "lon", "longitude":
			lon, err := c.Float()
			if err != nil {
				return geo.Point{}, err
			}
			p.Lon = lon
			lonSet = true
		case "geohash":
			text, err := c.Text()
			if err != nil {
				return geo.Point{}, err
			}
			decoded, err := geo.FromGeohash(text)
			if err != nil {
				return geo.Point{}, err
			}
			p = decoded
			latSet, lonSet = true, true
		default:
			return geo.Point{}, fault.New(fault.MalformedValueCode, "geo point object supports lat, lon and geohash, found ["+currentFieldName+"]")
		}
	}

	if !latSet || !lonSet {
		return geo.Point{}, fault.New(fault.IncompletePointCode, "geo point object missing lat or lon")
	}
	return p, nil
}
