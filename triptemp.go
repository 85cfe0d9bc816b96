// Command triptemp correlates a recorded trip's geolocation samples with a
// year of gridded reanalysis temperature data, producing an hourly
// temperature profile (surface + 17 pressure levels) along the trip.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"triptemp/internal/config"
	"triptemp/internal/grid"
	"triptemp/internal/nc"
	"triptemp/internal/profile"
	"triptemp/internal/report"
	"triptemp/internal/trip"
)

const defaultTripFile = "sample.txt"

var (
	configFile = flag.String("config", "", "optional YAML config with default paths")
	tripFile   = flag.String("trip-file", "", "trip file with lines of <datetime> <lat> <lon> (default: bundled sample.txt)")
	outFile    = flag.String("out-file", "", "output filename; auto-generated from the input names when empty")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	var cfg config.Config
	if *configFile != "" {
		c, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = *c
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	ncPath := installPath(flag.Arg(0))
	tripPath := installPath(pick(*tripFile, cfg.TripFile, defaultTripFile))

	// The year guard must run before the dataset is opened.
	year, err := nc.YearFromPath(ncPath)
	if err != nil {
		fatal(logger, "Could not determine dataset year", err)
	}

	f, err := os.Open(tripPath)
	if err != nil {
		fatal(logger, "Could not open trip file", err)
	}
	tlog, err := trip.Parse(f, grid.NewLocator())
	f.Close()
	if err != nil {
		if errors.Is(err, trip.ErrEmptyTrip) {
			logger.Error("No valid trip records", "file", tripPath)
			os.Exit(1)
		}
		fatal(logger, "Could not parse trip file", err)
	}
	if err := tlog.ValidateYear(year); err != nil {
		fatal(logger, "Trip is outside the dataset's year", err)
	}
	logger.Info("trip parsed",
		"file", tripPath,
		"locations", len(tlog.Groups),
		"timestamps", len(tlog.Times()),
		"end", tlog.End())

	ds, err := nc.Open(ncPath)
	if err != nil {
		fatal(logger, "Could not open dataset", err)
	}
	defer ds.Close()
	logger.Info("dataset summary", ds.Summary()...)

	series, err := profile.Sample(tlog.Groups, ds)
	if err != nil {
		fatal(logger, "Could not sample dataset", err)
	}
	if err := series.CheckConsistency(len(tlog.Times())); err != nil {
		fatal(logger, "Trip sample spacing is inconsistent", err)
	}
	hourly, err := profile.Hourly(series)
	if err != nil {
		fatal(logger, "Could not interpolate to hourly resolution", err)
	}

	// The default output name lands in the working directory, not next to
	// the binary, so it is easy to find after a run.
	outPath := pick(*outFile, cfg.OutFile, report.OutFileName(tripPath, ncPath))
	out, err := os.Create(outPath)
	if err != nil {
		fatal(logger, "Could not create output file", err)
	}
	if err := report.Write(out, tlog, hourly); err != nil {
		out.Close()
		fatal(logger, "Could not write output file", err)
	}
	if err := out.Close(); err != nil {
		fatal(logger, "Could not write output file", err)
	}
	logger.Info("done",
		"out", outPath,
		"sixHourSamples", series.Len(),
		"hourlyRows", hourly.Len())
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: triptemp [flags] NC_FILE")
	fmt.Fprintln(os.Stderr, "  NC_FILE is a reanalysis NetCDF file whose name contains the 4-digit year")
	flag.PrintDefaults()
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// installPath resolves a relative path against the directory the binary is
// installed in, matching how the bundled sample trip file is located.
func installPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// pick returns the first non-empty value: flag, then config, then default.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
