// Package grid holds the fixed 2.5-degree global lattice of the reanalysis
// dataset and a memoized nearest-index locator for real-valued coordinates.
package grid

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// Spacing is the lattice resolution in degrees.
	Spacing = 2.5
	// LonCount is the number of longitude points: 0.0 through 357.5.
	LonCount = 144
	// LatCount is the number of latitude points: 90.0 down to -90.0.
	LatCount = 73

	cacheSize = 512
)

var (
	// Lon is the dataset longitude lattice, ascending in [0, 360).
	Lon = lattice(0.0, Spacing, LonCount)
	// Lat is the dataset latitude lattice, descending from 90 to -90.
	Lat = lattice(90.0, -Spacing, LatCount)
)

func lattice(start, step float64, n int) []float64 {
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = start + step*float64(i)
	}
	return pts
}

type axis uint8

const (
	axisLat axis = iota
	axisLon
)

type cacheKey struct {
	axis axis
	val  float64
}

// Locator resolves real-valued coordinates to nearest lattice indices.
// Trips revisit the same rounded coordinates often, so results are memoized
// in a bounded LRU keyed by the query value before normalization.
type Locator struct {
	cache *lru.Cache[cacheKey, int]
}

func NewLocator() *Locator {
	cache, err := lru.New[cacheKey, int](cacheSize)
	if err != nil {
		panic(err) // only fails for non-positive sizes
	}
	return &Locator{cache: cache}
}

// NearestLat returns the index of the latitude lattice point closest to lat.
// Ties resolve to the lower index.
func (l *Locator) NearestLat(lat float64) int {
	return l.nearest(axisLat, Lat, lat, lat)
}

// NearestLon returns the index of the longitude lattice point closest to
// lon. Trip files use [-180, 180]; negative values are normalized to the
// lattice's [0, 360) convention first.
func (l *Locator) NearestLon(lon float64) int {
	q := lon
	if q < 0 {
		q = 360 + q
	}
	return l.nearest(axisLon, Lon, lon, q)
}

func (l *Locator) nearest(ax axis, pts []float64, key, query float64) int {
	ck := cacheKey{axis: ax, val: key}
	if idx, ok := l.cache.Get(ck); ok {
		return idx
	}
	best := 0
	bestDist := math.Abs(pts[0] - query)
	for i, p := range pts[1:] {
		if d := math.Abs(p - query); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	l.cache.Add(ck, best)
	return best
}
