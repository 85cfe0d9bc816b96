package grid

import (
	"math"
	"testing"
)

func TestLatticeShape(t *testing.T) {
	if len(Lon) != LonCount || Lon[0] != 0.0 || Lon[LonCount-1] != 357.5 {
		t.Errorf("longitude lattice is malformed: len %d, ends %v..%v", len(Lon), Lon[0], Lon[len(Lon)-1])
	}
	if len(Lat) != LatCount || Lat[0] != 90.0 || Lat[LatCount-1] != -90.0 {
		t.Errorf("latitude lattice is malformed: len %d, ends %v..%v", len(Lat), Lat[0], Lat[len(Lat)-1])
	}
}

func TestNearestLatWithinHalfSpacing(t *testing.T) {
	loc := NewLocator()
	for q := -90.0; q <= 90.0; q += 0.1 {
		idx := loc.NearestLat(q)
		if d := math.Abs(Lat[idx] - q); d > Spacing/2+1e-9 {
			t.Fatalf("NearestLat(%v) = %d (%v), off by %v", q, idx, Lat[idx], d)
		}
	}
}

func TestNearestLatTieResolvesToLowerIndex(t *testing.T) {
	loc := NewLocator()
	// 88.75 is equidistant from 90.0 (index 0) and 87.5 (index 1).
	if idx := loc.NearestLat(88.75); idx != 0 {
		t.Errorf("NearestLat(88.75) = %d, want 0", idx)
	}
}

func TestNearestLonNormalizesNegative(t *testing.T) {
	loc := NewLocator()
	neg := loc.NearestLon(-8.73)
	pos := loc.NearestLon(351.27)
	if neg != pos {
		t.Errorf("NearestLon(-8.73) = %d, NearestLon(351.27) = %d; want equal", neg, pos)
	}
	if Lon[neg] != 352.5 {
		t.Errorf("NearestLon(-8.73) resolved to %v, want 352.5", Lon[neg])
	}
}

func TestNearestLonExactPoints(t *testing.T) {
	loc := NewLocator()
	for i, want := range Lon {
		if idx := loc.NearestLon(want); idx != i {
			t.Fatalf("NearestLon(%v) = %d, want %d", want, idx, i)
		}
	}
}

func TestLocatorCacheStaysCorrectPastCapacity(t *testing.T) {
	loc := NewLocator()
	// More distinct queries than the cache holds; answers must not change
	// when earlier entries have been evicted and are recomputed.
	for pass := range 2 {
		for i := range 1000 {
			q := -90.0 + 180.0*float64(i)/999.0
			idx := loc.NearestLat(q)
			if d := math.Abs(Lat[idx] - q); d > Spacing/2+1e-9 {
				t.Fatalf("pass %d: NearestLat(%v) = %d (%v)", pass, q, idx, Lat[idx])
			}
		}
	}
}
