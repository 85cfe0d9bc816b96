// Package trip parses a recorded trip log of timestamped geolocation
// samples and groups it for dataset lookups: by unique (lat, lon) location
// and by timestamp.
package trip

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"triptemp/internal/grid"
)

// Trip lines look like: 2018-11-16 00:00:00+00    42.24    -8.73
// The timezone suffix and any trailing fields are ignored.
var lineRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\S*\s+(\S+)\s+(\S+)`)

const timeLayout = "2006-01-02 15:04:05"

// ErrEmptyTrip is returned by Parse when no line of the input matched the
// trip record format.
var ErrEmptyTrip = errors.New("trip file contains no valid records")

// YearMismatchError reports a trip whose final timestamp falls outside the
// dataset's calendar year.
type YearMismatchError struct {
	TripYear    int
	DatasetYear int
}

func (e *YearMismatchError) Error() string {
	return fmt.Sprintf("trip ends in year %d but dataset covers %d", e.TripYear, e.DatasetYear)
}

// Sample is one matched trip record.
type Sample struct {
	Time time.Time
	Lat  float64
	Lon  float64
}

// LocationGroup accumulates the time span a trip spent at one exact
// (lat, lon) coordinate pair, together with its resolved lattice position.
type LocationGroup struct {
	Lat, Lon         float64 // original trip coordinates
	GridLat, GridLon float64 // nearest lattice coordinates
	LatIndex         int
	LonIndex         int
	Start, End       time.Time
}

type coord struct {
	lat, lon float64
}

// Log is a fully parsed trip. Groups owns the location records; the
// by-location and by-time maps index into it without copying.
type Log struct {
	Groups []*LocationGroup

	byLoc  map[coord]*LocationGroup
	byTime map[time.Time]*LocationGroup
	order  []time.Time // distinct timestamps, first-seen order
}

// Parse reads a trip log, silently skipping lines that do not match the
// record format, and resolves each new location against the lattice via
// loc. It returns ErrEmptyTrip when nothing matched.
func Parse(r io.Reader, loc *grid.Locator) (*Log, error) {
	l := &Log{
		byLoc:  make(map[coord]*LocationGroup),
		byTime: make(map[time.Time]*LocationGroup),
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s, ok := parseLine(sc.Text())
		if !ok {
			continue
		}
		c := coord{lat: s.Lat, lon: s.Lon}
		g := l.byLoc[c]
		if g == nil {
			latIdx := loc.NearestLat(s.Lat)
			lonIdx := loc.NearestLon(s.Lon)
			g = &LocationGroup{
				Lat:      s.Lat,
				Lon:      s.Lon,
				GridLat:  grid.Lat[latIdx],
				GridLon:  grid.Lon[lonIdx],
				LatIndex: latIdx,
				LonIndex: lonIdx,
				Start:    s.Time,
				End:      s.Time,
			}
			l.Groups = append(l.Groups, g)
			l.byLoc[c] = g
		} else {
			g.End = s.Time
		}
		if _, seen := l.byTime[s.Time]; !seen {
			l.order = append(l.order, s.Time)
		}
		l.byTime[s.Time] = g
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trip file: %w", err)
	}
	if len(l.order) == 0 {
		return nil, ErrEmptyTrip
	}
	return l, nil
}

func parseLine(line string) (Sample, bool) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Sample{}, false
	}
	ts, err := time.Parse(timeLayout, m[1])
	if err != nil {
		return Sample{}, false
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Sample{}, false
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Sample{}, false
	}
	return Sample{Time: ts, Lat: lat, Lon: lon}, true
}

// Times returns the trip's distinct timestamps in first-seen order.
func (l *Log) Times() []time.Time {
	return l.order
}

// GroupAt returns the location group active at timestamp t, or nil.
func (l *Log) GroupAt(t time.Time) *LocationGroup {
	return l.byTime[t]
}

// End returns the trip's final timestamp.
func (l *Log) End() time.Time {
	return l.order[len(l.order)-1]
}

// ValidateYear checks that the trip's final timestamp falls within the
// dataset year. It must be called before any dataset read.
func (l *Log) ValidateYear(datasetYear int) error {
	if y := l.End().Year(); y != datasetYear {
		return &YearMismatchError{TripYear: y, DatasetYear: datasetYear}
	}
	return nil
}
