// Package gributil inspects and filters GRIB files: it summarizes message
// metadata into tabular reports, selects messages by attribute, computes
// simulation and validity times, and extracts value and coordinate grids
// from a single message.
//
// Decoding is delegated to the grib1 package; everything here works through
// the Message interface.
package gributil

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/sdifrance/gributil/grib1"
	"github.com/sdifrance/gributil/gribio"
)

// Message is one decoded GRIB layer. *grib1.Message implements it.
type Message interface {
	// Keys returns the attribute names the message defines.
	Keys() []string
	// Get returns the value of a named attribute, or an error if the message
	// does not define it or it cannot be read.
	Get(key string) (interface{}, error)
	// Values returns the value grid.
	Values() ([][]float64, error)
	// LatLons returns latitude and longitude grids shaped like Values.
	LatLons() (lats, lons [][]float64, err error)
}

var _ Message = (*grib1.Message)(nil)

// DefaultTimestepInterval is the timestep interval, in minutes, Open assumes.
const DefaultTimestepInterval = 60

// subHourlyStepUnits is the stepUnits value forced onto every message when
// the timestep interval is below one hour.
const subHourlyStepUnits = 0

// Open decodes every message of the GRIB file at path, in file order. A file
// with a single message yields a slice of length one.
func Open(path string) ([]Message, error) {
	return OpenWithInterval(path, DefaultTimestepInterval)
}

// OpenWithInterval is Open for files whose timestep interval is given in
// minutes.
//
// Decoders of the time mishandled sub-hourly step units, so when the interval
// is below 60 minutes the stepUnits attribute of every message is forced to 0,
// regardless of the unit actually encoded. Callers that need the true
// sub-hourly unit should read unitOfTimeRange instead.
func OpenWithInterval(path string, timestepIntervalMinutes int) ([]Message, error) {
	if path == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "path must be a non-empty string")
	}

	f, err := gribio.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening GRIB file")
	}
	raw := f.GRIB1Messages()

	patch := timestepIntervalMinutes < 60
	if patch {
		glog.Warningf("timestep interval of %d minutes is below one hour, forcing stepUnits=%d on %d messages",
			timestepIntervalMinutes, subHourlyStepUnits, len(raw))
	}

	out := make([]Message, 0, len(raw))
	for _, m := range raw {
		if patch {
			if err := m.Set("stepUnits", int64(subHourlyStepUnits)); err != nil {
				return nil, errors.Wrap(err, "patching stepUnits")
			}
		}
		out = append(out, m)
	}

	glog.Infof("opened %s: %d GRIB messages", path, len(out))
	return out, nil
}
