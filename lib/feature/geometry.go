package feature

import "math"

type Point struct {
	Lon float64
	Lat float64
}

// Geometry is a point or a polygon outline. A single-point geometry is
// stored as a one-element outline.
type Geometry struct {
	Outline []Point
}

func PointGeometry(lon, lat float64) *Geometry {
	return &Geometry{Outline: []Point{{Lon: lon, Lat: lat}}}
}

func (g *Geometry) Centroid() Point {
	if len(g.Outline) == 0 {
		return Point{}
	}
	var lon, lat float64
	for _, p := range g.Outline {
		lon += p.Lon
		lat += p.Lat
	}
	n := float64(len(g.Outline))
	return Point{Lon: lon / n, Lat: lat / n}
}

const earthRadiusMeters = 6_371_000

// DistanceMeters gives the haversine great-circle distance between two
// points.
func DistanceMeters(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := lat2 - lat1
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
