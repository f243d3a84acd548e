package gributil

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// DefaultNodataThreshold is the magnitude below which ToGrid replaces
	// values with the nodata value.
	DefaultNodataThreshold = 0.001
	// DefaultNodataValue replaces values below the threshold.
	DefaultNodataValue = 0
)

type gridOptions struct {
	threshold float64
	nodata    float64
}

// GridOption configures ToGrid.
type GridOption func(*gridOptions)

// WithNodataThreshold sets the magnitude below which values are replaced. Zero
// disables the cleanup.
func WithNodataThreshold(threshold float64) GridOption {
	return func(o *gridOptions) { o.threshold = threshold }
}

// WithNodataValue sets the value that replaces values below the threshold.
func WithNodataValue(v float64) GridOption {
	return func(o *gridOptions) { o.nodata = v }
}

// Single returns the only message of msgs. It fails with a *MultiLayerError
// when there is more than one.
func Single(msgs []Message) (Message, error) {
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(ErrInvalidArgument, "no GRIB message given")
	case 1:
		return msgs[0], nil
	}
	return nil, &MultiLayerError{Count: len(msgs)}
}

// LayersToGrid is ToGrid for a sequence that must hold exactly one message.
func LayersToGrid(msgs []Message, opts ...GridOption) (values, lats, lons [][]float64, err error) {
	m, err := Single(msgs)
	if err != nil {
		return nil, nil, nil, err
	}
	return ToGrid(m, opts...)
}

// ToGrid returns the value grid of m and its latitude and longitude grids.
// Values whose magnitude is below the nodata threshold (0.001 unless
// configured) are replaced with the nodata value (0 unless configured) to
// erase numerical noise.
func ToGrid(m Message, opts ...GridOption) (values, lats, lons [][]float64, err error) {
	o := gridOptions{threshold: DefaultNodataThreshold, nodata: DefaultNodataValue}
	for _, opt := range opts {
		opt(&o)
	}

	values, err = m.Values()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading values")
	}
	if o.threshold != 0 {
		n := ReplaceBelow(values, o.threshold, o.nodata)
		glog.V(1).Infof("replaced %d values below %g with %g", n, o.threshold, o.nodata)
	}

	lats, lons, err = m.LatLons()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading coordinates")
	}
	return values, lats, lons, nil
}

// ReplaceBelow sets every value of grid whose magnitude is below threshold to
// nodata, in place, and returns how many were replaced.
func ReplaceBelow(grid [][]float64, threshold, nodata float64) int {
	n := 0
	for _, row := range grid {
		for i, v := range row {
			if math.Abs(v) < threshold {
				row[i] = nodata
				n++
			}
		}
	}
	return n
}
