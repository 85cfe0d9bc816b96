// Package report writes the correlated output file: one line per trip
// timestamp pairing the original sample with its hourly-interpolated
// temperature row.
package report

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"triptemp/internal/profile"
	"triptemp/internal/trip"
)

const (
	fieldSep   = "    "
	timeLayout = "2006-01-02 15:04:05"
)

// Columns is the output header: trip fields, resolved lattice fields, then
// one column per level. Only the two lowest levels have named pressures in
// the source data; the rest are placeholders.
var Columns = headerColumns()

func headerColumns() []string {
	cols := []string{"date", "lat_orig", "lon_orig", "lat_nc", "lon_nc", "level_1013", "level_1000"}
	for range profile.Levels - 2 {
		cols = append(cols, "level_X")
	}
	return cols
}

// Write emits the header and one row per trip timestamp. Trip timestamps
// and hourly rows are zipped length-limited: whichever sequence is longer
// is silently truncated to the overlap.
func Write(w io.Writer, log *trip.Log, hourly profile.Series) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Columns, fieldSep) + "\n"); err != nil {
		return err
	}

	times := log.Times()
	rows := min(len(times), hourly.Len())
	fields := make([]string, 0, len(Columns))
	for i := range rows {
		g := log.GroupAt(times[i])
		fields = fields[:0]
		fields = append(fields,
			times[i].Format(timeLayout),
			formatFloat(g.Lat),
			formatFloat(g.Lon),
			formatFloat(g.GridLat),
			formatFloat(g.GridLon),
		)
		for _, level := range hourly {
			fields = append(fields, formatFloat(level[i]))
		}
		if _, err := bw.WriteString(strings.Join(fields, fieldSep) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// OutFileName builds the default output filename from the trip and dataset
// basenames (final extension stripped), placed in the current directory.
func OutFileName(tripPath, ncPath string) string {
	return "out_for_" + stripExt(tripPath) + "_with_" + stripExt(ncPath) + ".txt"
}

func stripExt(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
