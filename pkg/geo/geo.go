package geo

import (
	"math"
	"sort"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Point is a coordinate pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Candidate is an entity being considered by a proximity search. Entities
// without coordinates must be filtered out by the caller before building
// candidates; a Candidate always has a usable point.
type Candidate struct {
	Id      string
	Name    string
	Address string
	Point   Point
}

// Match is a candidate within the search radius, annotated with its distance.
type Match struct {
	Candidate
	DistanceKm float64
}

// WithinRadius returns the candidates within radiusKm of origin, sorted
// ascending by distance. The result is exactly the subset with
// distance <= radiusKm.
func WithinRadius(origin Point, candidates []Candidate, radiusKm float64) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		d := Haversine(origin.Latitude, origin.Longitude, c.Point.Latitude, c.Point.Longitude)
		if d <= radiusKm {
			matches = append(matches, Match{Candidate: c, DistanceKm: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches
}
