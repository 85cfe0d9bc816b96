package profile

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// ErrTooFewSamples is returned when the trip covers fewer than four 6-hour
// timestamps; a cubic fit needs at least four points.
var ErrTooFewSamples = errors.New("trip too short: cubic interpolation needs at least 4 six-hour samples")

// Hourly expands 6-hour-resolution level series into hourly series with a
// cubic interpolant per level. For L input points the output holds 6L-5
// values per level: the final native sample anchors the last producible
// hour, so the 5 hours past it are trimmed rather than extrapolated.
func Hourly(s Series) (Series, error) {
	l := s.Len()
	if l < 4 {
		return nil, ErrTooFewSamples
	}
	xs := make([]float64, l)
	for i := range xs {
		xs[i] = float64(i * 6)
	}
	out := make(Series, len(s))
	for lvl, ys := range s {
		var cubic interp.NaturalCubic
		if err := cubic.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("fitting level %d: %w", lvl, err)
		}
		hours := make([]float64, 6*l-5)
		for h := range hours {
			hours[h] = cubic.Predict(float64(h))
		}
		out[lvl] = hours
	}
	return out, nil
}
