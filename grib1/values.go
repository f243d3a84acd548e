package grib1

import (
	"math"

	"github.com/pkg/errors"
)

// MissingValue is stored at grid points the bitmap marks as absent.
const MissingValue = 9999

// ErrUnsupportedPacking is returned when the data section uses a packing this
// package cannot decode (spherical harmonics, complex or second order
// packing, predefined bitmaps).
var ErrUnsupportedPacking = errors.New("unsupported packing")

// ErrNoLatLonGrid is returned when the message does not describe a regular
// latitude/longitude grid.
var ErrNoLatLonGrid = errors.New("message has no regular lat/lon grid")

// Values decodes the data section into a grid with Nj rows of Ni columns.
// Points without a value in the bitmap hold MissingValue. Each call returns a
// freshly allocated grid.
func (m *Message) Values() ([][]float64, error) {
	grid := m.latLongGrid()
	if grid == nil {
		return nil, ErrNoLatLonGrid
	}
	flat, err := m.decodeValues()
	if err != nil {
		return nil, err
	}

	out := make([][]float64, grid.Nj())
	for j := range out {
		out[j] = make([]float64, grid.Ni())
	}
	for k, v := range flat {
		row, col := grid.gridIndex(k)
		out[row][col] = v
	}
	return out, nil
}

// LatLons returns the latitude and longitude of every grid point, in degrees,
// shaped like the grid returned by Values.
func (m *Message) LatLons() (lats, lons [][]float64, err error) {
	grid := m.latLongGrid()
	if grid == nil {
		return nil, nil, ErrNoLatLonGrid
	}
	lats, lons = grid.LatLons()
	return lats, lons, nil
}

func (m *Message) latLongGrid() *LatLongGrid {
	if m.grid == nil {
		return nil
	}
	return m.grid.LatLongGrid()
}

// numberOfDataPoints returns the number of grid points, or the number of
// packed values when the message has no grid description.
func (m *Message) numberOfDataPoints() int {
	if grid := m.latLongGrid(); grid != nil {
		return grid.Ni() * grid.Nj()
	}
	return m.numberOfPackedValues()
}

// numberOfPackedValues returns the number of values stored in the data section.
func (m *Message) numberOfPackedValues() int {
	if m.bitmap != nil && m.latLongGrid() != nil {
		return m.bitmap.Count(m.numberOfDataPoints())
	}
	bpv := int(m.binary.bitsPerValue)
	if bpv == 0 {
		if grid := m.latLongGrid(); grid != nil {
			return grid.Ni() * grid.Nj()
		}
		return 0
	}
	bits := len(m.binary.packed)*8 - m.binary.dataFlag.unusedBits()
	if bits < 0 {
		return 0
	}
	return bits / bpv
}

// decodeValues unpacks the data section in scanning order, expanding the
// bitmap if there is one.
func (m *Message) decodeValues() ([]float64, error) {
	b := m.binary
	switch {
	case b.dataFlag.sphericalHarmonics():
		return nil, errors.Wrap(ErrUnsupportedPacking, "spherical harmonic coefficients")
	case b.dataFlag.complexPacking():
		return nil, errors.Wrap(ErrUnsupportedPacking, "complex or second order packing")
	case m.bitmap != nil && m.bitmap.Predefined():
		return nil, errors.Wrapf(ErrUnsupportedPacking, "predefined bitmap %d", m.bitmap.tableReference)
	}

	points := m.numberOfDataPoints()
	count := m.numberOfPackedValues()
	if m.bitmap == nil && count != points {
		return nil, errors.Errorf("data section holds %d values, grid has %d points", count, points)
	}

	// Y × 10^D = R + X × 2^E
	binaryScale := math.Pow(2, float64(b.binaryScaleFactor))
	decimalScale := math.Pow(10, float64(m.product.decimalScaleFactor))

	packed := make([]float64, count)
	if b.bitsPerValue == 0 {
		for i := range packed {
			packed[i] = b.referenceValue / decimalScale
		}
	} else {
		raw, err := unpackBits(b.packed, int(b.bitsPerValue), count)
		if err != nil {
			return nil, err
		}
		for i, x := range raw {
			packed[i] = (b.referenceValue + float64(x)*binaryScale) / decimalScale
		}
	}

	if m.bitmap == nil {
		return packed, nil
	}
	out := make([]float64, points)
	next := 0
	for i := range out {
		if m.bitmap.Present(i) && next < len(packed) {
			out[i] = packed[next]
			next++
			continue
		}
		out[i] = MissingValue
	}
	return out, nil
}

// unpackBits reads count big-endian unsigned integers of bitsPerValue bits
// each from data.
func unpackBits(data []byte, bitsPerValue, count int) ([]uint64, error) {
	if need := bitsPerValue * count; need > len(data)*8 {
		return nil, errors.Errorf("need %d bits for %d values of %d bits, data section has %d", need, count, bitsPerValue, len(data)*8)
	}
	out := make([]uint64, count)
	mask := uint64(1)<<uint(bitsPerValue) - 1

	var acc uint64
	var nbits uint
	pos := 0
	for i := range out {
		for nbits < uint(bitsPerValue) {
			acc = acc<<8 | uint64(data[pos])
			pos++
			nbits += 8
		}
		shift := nbits - uint(bitsPerValue)
		out[i] = (acc >> shift) & mask
		nbits = shift
		acc &= uint64(1)<<shift - 1
	}
	return out, nil
}

// valueStats returns the minimum, maximum and mean of the values that are
// present.
func (m *Message) valueStats() (min, max, mean float64, err error) {
	flat, err := m.decodeValues()
	if err != nil {
		return 0, 0, 0, err
	}
	n := 0
	min, max = math.Inf(1), math.Inf(-1)
	for i, v := range flat {
		if m.bitmap != nil && !m.bitmap.Present(i) {
			continue
		}
		n++
		mean += v
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if n == 0 {
		return 0, 0, 0, errors.New("message has no values")
	}
	return min, max, mean / float64(n), nil
}
