package geo

import (
	"math"
	"time"

	"fleet-routing-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle (haversine) distance between two
// coordinates in kilometers. Symmetric, zero for identical points.
func Distance(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ETA returns the arrival time for a straight great-circle traversal at a
// constant speed.
func ETA(origin, destination domain.Coordinate, speedKmh float64, start time.Time) (time.Time, error) {
	if speedKmh <= 0 {
		return time.Time{}, &domain.InvalidInputError{Field: "speed_kmh", Reason: "must be positive"}
	}
	hours := Distance(origin, destination) / speedKmh
	return start.Add(time.Duration(hours * float64(time.Hour))), nil
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BoundingBox computes the envelope of a coordinate set.
func BoundingBox(coords []domain.Coordinate) (Bounds, error) {
	if len(coords) == 0 {
		return Bounds{}, &domain.EmptyInputError{What: "coordinates"}
	}

	b := Bounds{
		MinLon: coords[0].Lon, MaxLon: coords[0].Lon,
		MinLat: coords[0].Lat, MaxLat: coords[0].Lat,
	}
	for _, c := range coords[1:] {
		b.MinLon = math.Min(b.MinLon, c.Lon)
		b.MaxLon = math.Max(b.MaxLon, c.Lon)
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
	}
	return b, nil
}

// Centroid returns the arithmetic mean of the coordinates. This is an
// acceptable approximation for regional stop sets, not a geodesic centroid.
func Centroid(coords []domain.Coordinate) (domain.Coordinate, error) {
	if len(coords) == 0 {
		return domain.Coordinate{}, &domain.EmptyInputError{What: "coordinates"}
	}

	var lon, lat float64
	for _, c := range coords {
		lon += c.Lon
		lat += c.Lat
	}
	n := float64(len(coords))
	return domain.Coordinate{Lon: lon / n, Lat: lat / n}, nil
}

// IsNearPolyline reports whether a point lies within bufferKm of any segment
// of the polyline. Segments are buffered on a local planar projection
// (longitude scaled by cos(latitude)), which is accurate enough at route
// scale but not geodesically exact.
func IsNearPolyline(p domain.Coordinate, line []domain.Coordinate, bufferKm float64) bool {
	if len(line) == 0 {
		return false
	}
	if len(line) == 1 {
		return Distance(p, line[0]) <= bufferKm
	}

	for i := 0; i < len(line)-1; i++ {
		if pointSegmentDistanceKm(p, line[i], line[i+1]) <= bufferKm {
			return true
		}
	}
	return false
}

// pointSegmentDistanceKm projects the point onto the segment in a local
// planar frame centered on the segment start, then measures the haversine
// distance to the closest point.
func pointSegmentDistanceKm(p, a, b domain.Coordinate) float64 {
	scale := math.Cos(a.Lat * math.Pi / 180)

	ax, ay := 0.0, 0.0
	bx := (b.Lon - a.Lon) * scale
	by := b.Lat - a.Lat
	px := (p.Lon - a.Lon) * scale
	py := p.Lat - a.Lat

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return Distance(p, a)
	}

	t := (px*dx + py*dy) / segLenSq
	t = math.Max(0, math.Min(1, t))

	closest := domain.Coordinate{
		Lon: a.Lon + t*(b.Lon-a.Lon),
		Lat: a.Lat + t*(b.Lat-a.Lat),
	}
	return Distance(p, closest)
}
