// Package profile builds the per-level temperature series for a trip: it
// samples the dataset at every 6-hour-aligned timestamp the trip covers and
// upsamples the result to hourly resolution.
package profile

import (
	"fmt"
	"time"

	"triptemp/internal/trip"
)

const (
	// NativeLevels is the number of pressure levels in the dataset.
	NativeLevels = 17
	// Levels counts the synthetic surface level plus the native levels.
	Levels = NativeLevels + 1

	kelvinOffset = 273.15
)

// SliceReader provides one [level][lat][lon] time slice of the air
// variable in Kelvin. *nc.Dataset implements it.
type SliceReader interface {
	Slice(timeIndex int) ([][][]float64, error)
}

// Series holds Levels parallel temperature series in Celsius, aligned to
// the deduplicated sequence of 6-hour timestamps actually sampled. Index 0
// is the synthetic surface level; 1..17 are the native levels in dataset
// order.
type Series [][]float64

// ConsistencyError reports a mismatch between the trip's timestamp count
// and the number of 6-hour samples produced, which indicates malformed or
// irregularly spaced trip data.
type ConsistencyError struct {
	Want, Got int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("expected %d six-hour samples for the trip, produced %d", e.Want, e.Got)
}

// Sample extracts temperature values for every 6-hour-aligned timestamp
// covered by the trip's location groups. Groups are processed in order; a
// timestamp already sampled via an earlier group is skipped, so overlapping
// groups never duplicate entries. Values are converted from Kelvin to
// Celsius and the synthetic surface level is derived by linear
// extrapolation below the lowest native level.
func Sample(groups []*trip.LocationGroup, ds SliceReader) (Series, error) {
	series := make(Series, Levels)
	processed := make(map[time.Time]struct{})
	for _, g := range groups {
		for ts := range trip.SixHourAligned(g.Start, g.End) {
			if _, done := processed[ts]; done {
				continue
			}
			// The dataset holds 4 samples per day; the source layout
			// addresses a whole day through index dayOfYear*4 - 1.
			air, err := ds.Slice(ts.YearDay()*4 - 1)
			if err != nil {
				return nil, err
			}
			if len(air) < NativeLevels {
				return nil, fmt.Errorf("time slice has %d levels, want %d", len(air), NativeLevels)
			}

			air0 := air[0][g.LatIndex][g.LonIndex]
			air1 := air[1][g.LatIndex][g.LonIndex]
			// Exact source arithmetic: convert the base level first, then
			// extrapolate with the Kelvin-space level difference.
			surface := (air0 - kelvinOffset) - 13.0/75.0*(air1-air0)
			series[0] = append(series[0], surface)

			for lvl := range NativeLevels {
				series[lvl+1] = append(series[lvl+1], air[lvl][g.LatIndex][g.LonIndex]-kelvinOffset)
			}
			processed[ts] = struct{}{}
		}
	}
	return series, nil
}

// Len returns the number of 6-hour timestamps sampled.
func (s Series) Len() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// CheckConsistency verifies the sampled length against the trip's distinct
// timestamp count, assuming hourly trip samples: 4 aligned stamps per 24
// trip records.
func (s Series) CheckConsistency(tripTimestamps int) error {
	if want := tripTimestamps * 4 / 24; want != s.Len() {
		return &ConsistencyError{Want: want, Got: s.Len()}
	}
	return nil
}
