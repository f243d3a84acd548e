// Package hexademicalfloatingpoint decodes and encodes floating point numbers
// in IBM hexidecimal floating point format, which GRIB1 uses for reference
// values.
//
// See https://en.wikipedia.org/wiki/IBM_hexadecimal_floating-point.
package hexademicalfloatingpoint

import (
	"encoding/binary"
	"math"
)

const (
	signBit      = 0b1000_0000
	exponentMask = 0b0111_1111
	exponentBias = 64
	mantissaBits = 24
)

// Parse32 decodes a single precision hexidecimal floating point number into a
// float64. Only the first four bytes are read.
func Parse32(bytes []byte) float64 {
	return ParseBits32(binary.BigEndian.Uint32(bytes[0:4]))
}

// ParseBits32 decodes the big-endian bit pattern of a single precision
// hexidecimal floating point number.
func ParseBits32(bits uint32) float64 {
	// See 92.6.4 of the GRIB1 manual (WMO-No. 306).
	// R = (–1)^s × 2^(–24) × B x 16^(A–64)
	//   = (–1)^s × B x (2)^(4A–4*64 - 24)
	a := int(bits>>mantissaBits) & exponentMask
	b := bits & (1<<mantissaBits - 1)
	out := math.Ldexp(float64(b), 4*(a-exponentBias)-mantissaBits)

	if bits>>mantissaBits&signBit != 0 {
		return -out
	}
	return out
}

// Encode32 encodes v as a single precision hexidecimal floating point number.
// Precision beyond the 24 bit mantissa is rounded away.
func Encode32(v float64) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, EncodeBits32(v))
	return out
}

// EncodeBits32 is Encode32 returning the bit pattern instead of bytes.
func EncodeBits32(v float64) uint32 {
	if v == 0 || math.IsNaN(v) {
		return 0
	}
	var sign uint32
	if v < 0 {
		sign = signBit
		v = -v
	}

	// Normalize so that 1/16 <= v < 1.
	exp := exponentBias
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}

	mantissa := uint32(math.Round(v * (1 << mantissaBits)))
	if mantissa >= 1<<mantissaBits {
		mantissa >>= 4
		exp++
	}
	if exp < 0 {
		return 0
	}
	if exp > exponentMask {
		exp = exponentMask
		mantissa = 1<<mantissaBits - 1
	}
	return (sign|uint32(exp))<<mantissaBits | mantissa
}
