// Package nc reads the gridded reanalysis temperature archive: a NetCDF
// file with a 4-dimensional "air" variable indexed [time, level, lat, lon],
// 4 samples per day, 17 pressure levels, values in Kelvin.
package nc

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	"triptemp/internal/grid"
)

// ErrNoYear is returned when the dataset filename carries no 4-digit year.
var ErrNoYear = errors.New("dataset filename should contain a 4-digit year")

var yearRE = regexp.MustCompile(`\d{4}`)

// YearFromPath extracts the dataset year from the first contiguous 4-digit
// run in the file's basename, e.g. "air.2018.nc" -> 2018. It does not touch
// the file, so the year guard can run before any dataset I/O.
func YearFromPath(path string) (int, error) {
	m := yearRE.FindString(filepath.Base(path))
	if m == "" {
		return 0, ErrNoYear
	}
	return strconv.Atoi(m)
}

// Dataset is an open reanalysis file. Reads are served one time slice at a
// time; the most recent slice is kept, since all four 6-hour stamps of a
// day resolve to the same time index.
type Dataset struct {
	nc    api.Group
	air   api.VarGetter
	scale float64
	offs  float64

	lastIdx int
	last    [][][]float64 // [level][lat][lon], Kelvin
}

// Open opens a reanalysis NetCDF file and resolves its "air" variable.
func Open(path string) (*Dataset, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	air, err := g.GetVarGetter("air")
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("dataset has no air variable: %w", err)
	}
	d := &Dataset{nc: g, air: air, scale: 1, lastIdx: -1}
	// Packed files store int16 counts with unpack attributes.
	attrs := air.Attributes()
	if v, has := attrs.Get("scale_factor"); has {
		d.scale = attrFloat(v, 1)
	}
	if v, has := attrs.Get("add_offset"); has {
		d.offs = attrFloat(v, 0)
	}
	if err := d.checkLattice(); err != nil {
		g.Close()
		return nil, err
	}
	return d, nil
}

// checkLattice verifies the spatial dimensions when coordinate variables
// are present. Files without them are accepted as-is.
func (d *Dataset) checkLattice() error {
	for _, dim := range []struct {
		name string
		want int64
	}{
		{"lat", grid.LatCount},
		{"lon", grid.LonCount},
	} {
		vg, err := d.nc.GetVarGetter(dim.name)
		if err != nil {
			continue
		}
		if n := vg.Len(); n != dim.want {
			return fmt.Errorf("dataset %s axis has %d points, want %d", dim.name, n, dim.want)
		}
	}
	return nil
}

// Close closes the underlying file.
func (d *Dataset) Close() {
	d.nc.Close()
}

// Summary returns dataset information suitable for logging.
func (d *Dataset) Summary() []any {
	return []any{
		"var", "air",
		"timeSlices", d.air.Len(),
		"scale", d.scale,
		"offset", d.offs,
	}
}

// Slice reads one time slice of the air variable as [level][lat][lon]
// values in Kelvin, unpacking the stored representation when needed.
func (d *Dataset) Slice(timeIndex int) ([][][]float64, error) {
	if timeIndex == d.lastIdx {
		return d.last, nil
	}
	begin := int64(timeIndex)
	v, err := d.air.GetSlice(begin, begin+1)
	if err != nil {
		return nil, fmt.Errorf("reading time slice %d: %w", timeIndex, err)
	}
	slice, err := unpack(v, d.scale, d.offs)
	if err != nil {
		return nil, fmt.Errorf("time slice %d: %w", timeIndex, err)
	}
	d.lastIdx, d.last = timeIndex, slice
	return slice, nil
}

// unpack converts a single-timestamp GetSlice payload to float64 Kelvin.
func unpack(v any, scale, offs float64) ([][][]float64, error) {
	switch data := v.(type) {
	case [][][][]float64:
		return data[0], nil
	case [][][][]float32:
		return convert(data[0], func(x float32) float64 { return float64(x) }), nil
	case [][][][]int16:
		return convert(data[0], func(x int16) float64 { return float64(x)*scale + offs }), nil
	default:
		return nil, fmt.Errorf("unsupported air variable payload %T", v)
	}
}

func convert[T int16 | float32](in [][][]T, f func(T) float64) [][][]float64 {
	out := make([][][]float64, len(in))
	for i, plane := range in {
		out[i] = make([][]float64, len(plane))
		for j, row := range plane {
			vals := make([]float64, len(row))
			for k, x := range row {
				vals[k] = f(x)
			}
			out[i][j] = vals
		}
	}
	return out
}

func attrFloat(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case []float64:
		if len(x) > 0 {
			return x[0]
		}
	case []float32:
		if len(x) > 0 {
			return float64(x[0])
		}
	}
	return def
}
