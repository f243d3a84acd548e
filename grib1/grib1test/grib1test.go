// Package grib1test encodes GRIB1 messages for tests. It writes regular
// lat/lon grids with simple packing, the subset the grib1 package decodes.
package grib1test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdifrance/gributil/hexademicalfloatingpoint"
)

// Field describes one GRIB1 message.
type Field struct {
	Table2Version        uint8
	Centre               uint8
	IndicatorOfParameter uint8
	TypeOfLevel          uint8
	Level                uint16

	// Reference time.
	Year, Month, Day, Hour, Minute int

	UnitOfTimeRange    uint8
	P1, P2             uint8
	TimeRangeIndicator uint8

	// Grid, in millidegrees. Increments are signed in the scanning direction
	// implied by the first and last points.
	Ni, Nj                    int
	FirstLat, FirstLon        int32
	IncrementLat, IncrementLon int32

	DecimalScaleFactor int
	BitsPerValue       uint8

	// Values in scanning order (+i, row by row). Missing marks points left out
	// of a bitmap; when it is nil no bitmap section is written.
	Values  []float64
	Missing []bool
}

// Defaults returns a field of ECMWF 2 metre temperature on a 3x2 grid
// starting at 50N 0E with 1 degree spacing, valid at 2017-01-04 06:00 + 3h.
func Defaults() Field {
	return Field{
		Table2Version:        128,
		Centre:               98,
		IndicatorOfParameter: 167,
		TypeOfLevel:          1,
		Year:                 2017,
		Month:                1,
		Day:                  4,
		Hour:                 6,
		UnitOfTimeRange:      1,
		P1:                   3,
		Ni:                   3,
		Nj:                   2,
		FirstLat:             50000,
		FirstLon:             0,
		IncrementLat:         -1000,
		IncrementLon:         1000,
		DecimalScaleFactor:   2,
		BitsPerValue:         16,
		Values:               []float64{270, 271.5, 272, 273.25, 274, 275.75},
	}
}

// Bytes encodes the field as a complete GRIB1 message.
func (f Field) Bytes() []byte {
	pds := f.productDefinition()
	gds := f.gridDescription()
	bms := f.bitmap()
	bds := f.binaryData()

	total := 8 + len(pds) + len(gds) + len(bms) + len(bds) + 4
	var buf bytes.Buffer
	buf.WriteString("GRIB")
	buf.Write(uint24(uint32(total)))
	buf.WriteByte(1)
	buf.Write(pds)
	buf.Write(gds)
	buf.Write(bms)
	buf.Write(bds)
	buf.WriteString("7777")
	return buf.Bytes()
}

func (f Field) productDefinition() []byte {
	out := make([]byte, 28)
	copy(out[0:3], uint24(28))
	out[3] = f.Table2Version
	out[4] = f.Centre
	out[5] = 1
	out[6] = 255
	out[7] = 0x80
	if f.Missing != nil {
		out[7] |= 0x40
	}
	out[8] = f.IndicatorOfParameter
	out[9] = f.TypeOfLevel
	binary.BigEndian.PutUint16(out[10:12], f.Level)
	century := (f.Year-1)/100 + 1
	out[12] = byte(f.Year - (century-1)*100)
	out[13] = byte(f.Month)
	out[14] = byte(f.Day)
	out[15] = byte(f.Hour)
	out[16] = byte(f.Minute)
	out[17] = f.UnitOfTimeRange
	out[18] = f.P1
	out[19] = f.P2
	out[20] = f.TimeRangeIndicator
	out[24] = byte(century)
	copy(out[26:28], int16SignMagnitude(f.DecimalScaleFactor))
	return out
}

func (f Field) gridDescription() []byte {
	out := make([]byte, 32)
	copy(out[0:3], uint24(32))
	out[3] = 0
	out[4] = 255
	out[5] = 0 // regular lat/lon
	binary.BigEndian.PutUint16(out[6:8], uint16(f.Ni))
	binary.BigEndian.PutUint16(out[8:10], uint16(f.Nj))
	lastLat := f.FirstLat + int32(f.Nj-1)*f.IncrementLat
	lastLon := f.FirstLon + int32(f.Ni-1)*f.IncrementLon
	copy(out[10:13], int24SignMagnitude(f.FirstLat))
	copy(out[13:16], int24SignMagnitude(f.FirstLon))
	out[16] = 0x80 // increments given
	copy(out[17:20], int24SignMagnitude(lastLat))
	copy(out[20:23], int24SignMagnitude(lastLon))
	binary.BigEndian.PutUint16(out[23:25], uint16(abs32(f.IncrementLon)))
	binary.BigEndian.PutUint16(out[25:27], uint16(abs32(f.IncrementLat)))
	var scan byte
	if f.IncrementLon < 0 {
		scan |= 0x80
	}
	if f.IncrementLat > 0 {
		scan |= 0x40
	}
	out[27] = scan
	return out
}

func (f Field) bitmap() []byte {
	if f.Missing == nil {
		return nil
	}
	n := f.Ni * f.Nj
	bits := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if i < len(f.Missing) && f.Missing[i] {
			continue
		}
		bits[i/8] |= 1 << (7 - uint(i%8))
	}
	out := make([]byte, 6, 6+len(bits))
	copy(out[0:3], uint24(uint32(6+len(bits))))
	out[3] = byte(len(bits)*8 - n)
	return append(out, bits...)
}

func (f Field) binaryData() []byte {
	var present []float64
	for i, v := range f.Values {
		if f.Missing != nil && i < len(f.Missing) && f.Missing[i] {
			continue
		}
		present = append(present, v)
	}

	// Y × 10^D = R + X with E = 0.
	scale := math.Pow(10, float64(f.DecimalScaleFactor))
	ref := math.Inf(1)
	for _, v := range present {
		ref = math.Min(ref, math.Round(v*scale))
	}
	if len(present) == 0 {
		ref = 0
	}

	bpv := int(f.BitsPerValue)
	var packed []byte
	var acc uint64
	var nbits uint
	for _, v := range present {
		if bpv == 0 {
			break
		}
		x := uint64(math.Round(v*scale - ref))
		acc = acc<<uint(bpv) | x
		nbits += uint(bpv)
		for nbits >= 8 {
			packed = append(packed, byte(acc>>(nbits-8)))
			nbits -= 8
			acc &= uint64(1)<<nbits - 1
		}
	}
	unused := 0
	if nbits > 0 {
		packed = append(packed, byte(acc<<(8-nbits)))
		unused = 8 - int(nbits)
	}

	out := make([]byte, 11, 11+len(packed))
	copy(out[0:3], uint24(uint32(11+len(packed))))
	out[3] = byte(unused)
	// binary scale factor stays 0
	copy(out[6:10], hexademicalfloatingpoint.Encode32(ref))
	out[10] = f.BitsPerValue
	return append(out, packed...)
}

// WriteFile writes the concatenated messages to a file in a temporary
// directory and returns its path.
func WriteFile(t testing.TB, fields ...Field) string {
	t.Helper()
	var buf bytes.Buffer
	for _, f := range fields {
		buf.Write(f.Bytes())
	}
	path := filepath.Join(t.TempDir(), "fields.grib")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing GRIB fixture: %v", err)
	}
	return path
}

func uint24(v uint32) []byte {
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
}

func int24SignMagnitude(v int32) []byte {
	if v < 0 {
		return uint24(uint32(-v) | 1<<23)
	}
	return uint24(uint32(v))
}

func int16SignMagnitude(v int) []byte {
	if v < 0 {
		u := uint16(-v) | 1<<15
		return []byte{byte(u >> 8), byte(u)}
	}
	return []byte{byte(v >> 8), byte(v)}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
