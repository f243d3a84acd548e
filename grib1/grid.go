package grib1

import (
	"fmt"
)

// missingIncrement is the value of an increment that is not given.
const missingIncrement = 0xffff

// LatLongGrid specifies a latitude/longitude grid or equidistant cylindrical points.
type LatLongGrid struct {
	numPointsAlongParallel, numPointsAlongMeridian uint16
	firstGridPoint, lastGridPoint                  LatLng
	parallelIncrement, meridianIncrement           QuantizedAngle
	resolutionAndComponentFlags                    resolutionAndComponentFlags
	scanningMode                                   scanningMode
}

func (s *LatLongGrid) parseBytes(data []byte) error {
	/* https://codes.ecmwf.int/grib/format/grib1/grids/0/

	Octets	Key	Type	Content
	7-8	Ni	unsigned	Ni number of points along a parallel
	9-10	Nj	unsigned	Nj number of points along a meridian
	11-13	latitudeOfFirstGridPoint	signed	La1 latitude of first grid point
	14-16	longitudeOfFirstGridPoint	signed	Lo1 longitude of first grid point
	17	resolutionAndComponentFlags	codeflag	Resolution and component flags (see Code table 7)
	18-20	latitudeOfLastGridPoint	signed	La2 latitude of last grid point
	21-23	longitudeOfLastGridPoint	signed	Lo2 longitude of last grid point
	24-25	iDirectionIncrement	unsigned	Di i direction increment
	26-27	jDirectionIncrement	unsigned	Dj j direction increment
	28	scanningMode	codeflag	Scanning mode (flags see Flag/Code table 8)
	29-32			Set to zero (reserved)
	*/
	if len(data) < 22 {
		return fmt.Errorf("lat/lon grid definition must be at least 22 bytes long, got %d", len(data))
	}
	s.numPointsAlongParallel = uint16(parse2ByteUint(data[0], data[1]))
	s.numPointsAlongMeridian = uint16(parse2ByteUint(data[2], data[3]))

	s.firstGridPoint.lat.milliDegrees = parse3ByteInt(data[4], data[5], data[6])
	s.firstGridPoint.lng.milliDegrees = parse3ByteInt(data[7], data[8], data[9])
	s.resolutionAndComponentFlags = resolutionAndComponentFlags(data[10])
	s.lastGridPoint.lat.milliDegrees = parse3ByteInt(data[11], data[12], data[13])
	s.lastGridPoint.lng.milliDegrees = parse3ByteInt(data[14], data[15], data[16])
	s.parallelIncrement.milliDegrees = int32(parse2ByteUint(data[17], data[18]))
	s.meridianIncrement.milliDegrees = int32(parse2ByteUint(data[19], data[20]))
	s.scanningMode = scanningMode(data[21])

	if s.numPointsAlongParallel == 0 || s.numPointsAlongMeridian == 0 {
		return fmt.Errorf("grid has %dx%d points", s.numPointsAlongParallel, s.numPointsAlongMeridian)
	}

	if !s.resolutionAndComponentFlags.DirectionIncrementsGiven() ||
		s.parallelIncrement.milliDegrees == missingIncrement || s.meridianIncrement.milliDegrees == missingIncrement {
		s.parallelIncrement = incrementBetween(s.firstGridPoint.lng, s.lastGridPoint.lng, s.numPointsAlongParallel, true)
		s.meridianIncrement = incrementBetween(s.firstGridPoint.lat, s.lastGridPoint.lat, s.numPointsAlongMeridian, false)
		return nil
	}

	if !s.scanningMode.pointsScanInPlusIDirection() {
		s.parallelIncrement.milliDegrees *= -1
	}
	if !s.scanningMode.pointsScanInPlusJDirection() {
		s.meridianIncrement.milliDegrees *= -1
	}

	return nil
}

// incrementBetween derives a signed increment from the first and last points
// of an axis with n points.
func incrementBetween(first, last QuantizedAngle, n uint16, wraps bool) QuantizedAngle {
	if n < 2 {
		return QuantizedAngle{}
	}
	span := last.milliDegrees - first.milliDegrees
	if wraps && span < 0 {
		span += 360000
	}
	return QuantizedAngle{span / int32(n-1)}
}

// Ni returns the number of points along a parallel.
func (s *LatLongGrid) Ni() int { return int(s.numPointsAlongParallel) }

// Nj returns the number of points along a meridian.
func (s *LatLongGrid) Nj() int { return int(s.numPointsAlongMeridian) }

// FirstGridPoint returns the first point in scanning order.
func (s *LatLongGrid) FirstGridPoint() LatLng { return s.firstGridPoint }

// LastGridPoint returns the last point in scanning order.
func (s *LatLongGrid) LastGridPoint() LatLng { return s.lastGridPoint }

// Points returns every grid point in scanning order.
func (s *LatLongGrid) Points() []LatLng {
	var out []LatLng

	if s.scanningMode.adjacentPointsInIDirectionAreConsecutive() {
		for j := 0; j < int(s.numPointsAlongMeridian); j++ {
			for i := 0; i < int(s.numPointsAlongParallel); i++ {
				out = append(out, s.point(i, j))
			}
		}
	} else {
		for i := 0; i < int(s.numPointsAlongParallel); i++ {
			for j := 0; j < int(s.numPointsAlongMeridian); j++ {
				out = append(out, s.point(i, j))
			}
		}
	}

	return out
}

func (s *LatLongGrid) point(i, j int) LatLng {
	var offset LatLng
	offset.lat.milliDegrees = int32(j) * s.meridianIncrement.milliDegrees
	offset.lng.milliDegrees = int32(i) * s.parallelIncrement.milliDegrees
	return s.firstGridPoint.Plus(offset)
}

// LatLons returns latitude and longitude grids in degrees, each with Nj rows of
// Ni columns. Row j holds the j-th row of points along a meridian.
func (s *LatLongGrid) LatLons() (lats, lons [][]float64) {
	ni, nj := s.Ni(), s.Nj()
	lats = make([][]float64, nj)
	lons = make([][]float64, nj)
	for j := 0; j < nj; j++ {
		lats[j] = make([]float64, ni)
		lons[j] = make([]float64, ni)
		for i := 0; i < ni; i++ {
			p := s.point(i, j)
			lats[j][i] = p.Lat().Degrees()
			lons[j][i] = p.Lng().Degrees()
		}
	}
	return lats, lons
}

// gridIndex maps the k-th value in scanning order to its row and column.
func (s *LatLongGrid) gridIndex(k int) (row, col int) {
	if s.scanningMode.adjacentPointsInIDirectionAreConsecutive() {
		return k / s.Ni(), k % s.Ni()
	}
	return k % s.Nj(), k / s.Nj()
}

// QuantizedAngle is used for a lat/lng point.
type QuantizedAngle struct {
	milliDegrees int32
}

// Degrees returns the angle in degrees.
func (a QuantizedAngle) Degrees() float64 {
	return float64(a.milliDegrees) / 1000
}

// LatLng represents a latitude/longitude point.
type LatLng struct {
	lat, lng QuantizedAngle
}

// String returns a human-readable representation of the lat/lng.
func (ll LatLng) String() string {
	return fmt.Sprintf("%f, %f", ll.lat.Degrees(), ll.lng.Degrees())
}

// Plus adds one Lat/Lng to another.
func (ll LatLng) Plus(other LatLng) LatLng {
	ll.lat.milliDegrees += other.lat.milliDegrees
	ll.lng.milliDegrees += other.lng.milliDegrees
	return ll
}

// Lat returns the latitude.
func (ll LatLng) Lat() QuantizedAngle { return ll.lat }

// Lng returns the longitude.
func (ll LatLng) Lng() QuantizedAngle { return ll.lng }

// resolutionAndComponentFlags describes a value from table 7 https://codes.ecmwf.int/grib/format/grib1/flag/7/.
type resolutionAndComponentFlags uint8

const (
	directionIncrementsGiven     = 1 << 7
	earthAssumedOblateSpheroidal = 1 << 6
)

func (f resolutionAndComponentFlags) DirectionIncrementsGiven() bool {
	return (f & directionIncrementsGiven) != 0
}

// EarthIsOblate reports whether the earth is an oblate spheroid (IAU 1965)
// rather than a sphere of radius 6367.47 km.
func (f resolutionAndComponentFlags) EarthIsOblate() bool {
	return (f & earthAssumedOblateSpheroidal) != 0
}

// scanningMode is a value for the codepoint flag described here:
// https://codes.ecmwf.int/grib/format/grib1/flag/8/. It affects
// how grid representation incrementing works.
type scanningMode uint8

func (m scanningMode) String() string {
	iDir := "-i"
	if m.pointsScanInPlusIDirection() {
		iDir = "+i"
	}
	jDir := "-j"
	if m.pointsScanInPlusJDirection() {
		jDir = "+j"
	}
	adj := "jDirAdj"
	if m.adjacentPointsInIDirectionAreConsecutive() {
		adj = "iDirAdj"
	}

	return fmt.Sprintf("(%s, %s, %s)", iDir, jDir, adj)
}

const (
	pointsScanInMinusIDirection    = 1 << 7
	pointsScanInPlusJDirection     = 1 << 6
	adjPointsJDirectionConsecutive = 1 << 5
)

func (m scanningMode) pointsScanInPlusIDirection() bool {
	return (m & pointsScanInMinusIDirection) == 0
}

func (m scanningMode) pointsScanInPlusJDirection() bool {
	return (m & pointsScanInPlusJDirection) != 0
}

func (m scanningMode) adjacentPointsInIDirectionAreConsecutive() bool {
	return (m & adjPointsJDirectionConsecutive) == 0
}
