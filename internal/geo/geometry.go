package geo

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// PointToWKB parses a GeoJSON point and returns WKB bytes. Empty input yields nil.
func PointToWKB(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("invalid geojson: %w", err)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, fmt.Errorf("geometry must be a Point, got %T", g)
	}
	if lon, lat := p.X(), p.Y(); lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("coordinates out of range: %v, %v", lon, lat)
	}
	return wkb.Marshal(p, binary.LittleEndian)
}

// WKBToGeoJSON converts WKB bytes into GeoJSON. Empty input yields nil.
func WKBToGeoJSON(wkbBytes []byte) (json.RawMessage, error) {
	if len(wkbBytes) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return nil, err
	}
	return gjson.Marshal(g)
}
