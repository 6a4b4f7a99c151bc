// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"
)

const EarthRadius = 6371000.0 // meters

// Coordinate represents a geographic coordinate in WGS84 degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceTo returns the great-circle distance in meters between c and other, using the
// Haversine formula.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dLat := (c.Lat - other.Lat) * math.Pi / 180
	dLon := (c.Lon - other.Lon) * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Valid checks if the coordinate is within the EPSG:4326 bounds
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Finite reports whether both components are finite numbers.
func (c Coordinate) Finite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) && !math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

// Point converts the coordinate into a simplefeatures point (X is longitude, Y is latitude).
func (c Coordinate) Point() (geom.Point, error) {
	if !c.Finite() {
		return geom.Point{}, fmt.Errorf("failed to create point from coordinate: non-finite component in %s", c)
	}
	point, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: c.Lon, Y: c.Lat},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Point{}, fmt.Errorf("failed to create point from coordinate: %w", err)
	}
	return point, nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
