// Package grib1 contains a parser for GRIB messages that use edition 1.
//
// The specification for GRIB1 is the WMO Manual on Codes (WMO-No. 306), Volume
// I.2, and is available in an HTML format at
// https://apps.ecmwf.int/codes/grib/format/grib1/sections/3/.
//
// Besides the raw sections, a Message exposes a flat set of named attributes
// (see Keys and Get) using the key names of the ecCodes library, so that
// callers can inspect and filter messages without knowing the section layout.
package grib1

/*

During development of this library, it's useful to use grib_dump from the
ecCodes distribution to inspect the contents of a file with the C library:

	grib_dump -O file.grib

*/

import (
	"encoding/binary"
	"fmt"

	"github.com/sdifrance/gributil/hexademicalfloatingpoint"
)

// Message is a GRIB1 record.
type Message struct {
	ind     *indicatorSection
	product *ProductDefinition
	grid    *GridDescription
	bitmap  *Bitmap
	binary  *binaryDataSection

	// overrides holds attribute values replaced through Set.
	overrides map[string]interface{}
}

// ProductDefinition returns an object that describes the data contained in the record.
//
// See https://apps.ecmwf.int/codes/grib/format/grib1/sections/1/.
func (m *Message) ProductDefinition() *ProductDefinition {
	return m.product
}

// Bitmap returns the bitmap infromation stored in the message, or nil if the
// message has no bitmap section.
func (m *Message) Bitmap() *Bitmap {
	return m.bitmap
}

// GridDescription returns the GridDescription stored in the message, or nil if
// the message has no grid description section.
func (m *Message) GridDescription() *GridDescription {
	return m.grid
}

// String returns a summary description of the message.
func (m *Message) String() string {
	param := lookupParameter(m.product.table2Version, m.product.indicatorOfParameter)
	suffix := fmt.Sprintf(" (%s)", param.name)

	if m.grid != nil {
		suffix += fmt.Sprintf(" datarep = %d", m.grid.dataRepresentationType)
	}

	return fmt.Sprintf("indicator of parameter = %d; table2Version = %d; date = %d %04d%s",
		m.product.indicatorOfParameter, m.product.table2Version, m.product.DataDate(), m.product.DataTime(), suffix)
}

// Read reads data from a raw GRIB file and returns a slice of parsed messages.
//
// Multiple messages may be present in a single .grib file. Zero bytes between
// records are skipped.
func Read(data []byte) ([]*Message, error) {
	var out []*Message
	unconsumed := data
	offset := 0
	for len(unconsumed) > 0 {
		record, bytesRead, err := read1MaybeZeroPadded(unconsumed)
		if err != nil {
			return nil, fmt.Errorf("error reading GRIB record @ byte offset %d: %w", offset, err)
		}
		if record != nil {
			out = append(out, record)
		}
		unconsumed = unconsumed[bytesRead:]
		offset += bytesRead
	}
	return out, nil
}

func read1MaybeZeroPadded(data []byte) (*Message, int, error) {
	// It seems some files include zeros at the beginning. Read all the zeros before calling read1.
	zerosConsumed := 0
	for {
		if len(data) == 0 {
			return nil, zerosConsumed, nil
		}
		if data[0] == 0 {
			zerosConsumed++
			data = data[1:]
			continue
		}
		got, recordBytes, err := Read1(data)
		return got, recordBytes + zerosConsumed, err
	}
}

// Read1 reads a single GRIB1 message from a byte array. It returns the message
// and the number of bytes it occupied.
func Read1(data []byte) (*Message, int, error) {
	sec0 := &indicatorSection{}
	bytesRead, err := sec0.parseBytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing indicator section: %w", err)
	}
	unconsumed := data[bytesRead:int(sec0.messageLength)]

	sec1 := &ProductDefinition{}
	bytesRead, err = sec1.parseBytes(unconsumed)
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing product definition section: %w", err)
	}
	unconsumed = unconsumed[bytesRead:]

	var sec2 *GridDescription
	var sec3 *Bitmap

	if sec1.GridDescriptionIncluded() {
		sec2 = &GridDescription{}
		bytesRead, err = sec2.parseBytes(unconsumed)
		if err != nil {
			return nil, 0, fmt.Errorf("error parsing grid description section: %w", err)
		}
		unconsumed = unconsumed[bytesRead:]
	}

	if sec1.BitmapIncluded() {
		sec3 = &Bitmap{}
		bytesRead, err = sec3.parseBytes(unconsumed)
		if err != nil {
			return nil, 0, fmt.Errorf("error parsing bitmap section: %w", err)
		}
		unconsumed = unconsumed[bytesRead:]
	}

	sec4 := &binaryDataSection{}
	bytesRead, err = sec4.parseBytes(unconsumed)
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing binary data section: %w", err)
	}
	unconsumed = unconsumed[bytesRead:]

	sec5 := &endSection{}
	bytesRead, err = sec5.parseBytes(unconsumed)
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing end section: %w", err)
	}
	unconsumed = unconsumed[bytesRead:]

	consumedCount := int(sec0.messageLength) - len(unconsumed)
	if len(unconsumed) != 0 {
		extraInfo := ""
		if len(unconsumed) < 100 {
			extraInfo = fmt.Sprintf("; unconsumed bytes = %+v (%q)", unconsumed, string(unconsumed))
		}
		return nil, 0, fmt.Errorf("consumed %d bytes, expected to consume %d based on message length in header%s", consumedCount, sec0.messageLength, extraInfo)
	}

	return &Message{
		ind:     sec0,
		product: sec1,
		grid:    sec2,
		bitmap:  sec3,
		binary:  sec4,
	}, consumedCount, nil
}

type indicatorSection struct {
	messageLength uint64
}

func (is *indicatorSection) parseBytes(data []byte) (int, error) {
	/* https://apps.ecmwf.int/codes/grib/format/grib1/overview

	Octets	Key	Type	Content
	1-4	identifier	ascii	GRIB (coded according to the CCITT International Alphabet No. 5)
	5-7	totalLength	unsigned	Total length of GRIB message (including Section 0)
	8	editionNumber	unsigned	GRIB edition number (currently 1)
	*/

	if len(data) < 8 {
		return 0, fmt.Errorf("invalid GRIB file < 8 bytes long")
	}
	messageData := data
	data = data[0:8]
	if got, want := string(data[0:4]), "GRIB"; got != want {
		return 0, fmt.Errorf("first four bytes = %q, want %q", got, want)
	}

	if got, want := data[7], byte(1); got != want {
		return 0, fmt.Errorf("got GRIB edition %d, expected edition %d", got, want)
	}

	is.messageLength = uint64(parse3ByteUint(data[4], data[5], data[6]))

	if int(is.messageLength) > len(messageData) {
		return 0, fmt.Errorf("message length is %d, but only %d bytes supplied", is.messageLength, len(messageData))
	}
	if is.messageLength < 8 {
		return 0, fmt.Errorf("message length %d is shorter than the indicator section", is.messageLength)
	}

	return 8, nil
}

// ProductDefinition has information about the contents of a Message.
type ProductDefinition struct {
	section1Length              uint32 // parse3ByteUint(data[0], data[1], data[2])
	table2Version               uint8  // data[3]
	center                      uint8  // data[4]
	generatingProcessIdentifier uint8  // data[5]
	gridDefinition              uint8  // data[6]
	section1Flags               uint8  // data[7]
	// Indicator of parameter (see Code table 2).
	//
	// e.g., 169 corresponds to downward solar radiation in table 128.
	// https://apps.ecmwf.int/codes/grib/param-db/?id=169
	indicatorOfParameter                     IndicatorOfParameter // data[8]
	indicatorOfTypeOfLevel                   uint8                // data[9]
	heightPressureEtcOfLevels                uint32               // parse2ByteUint(data[10], data[11])
	yearOfCentury                            uint8                // data[12]
	month                                    uint8                // data[13]
	day                                      uint8                // data[14]
	hour                                     uint8                // data[15]
	minute                                   uint8                // data[16]
	unitOfTimeRange                          UnitOfTime           // data[17]
	p1                                       uint8                // data[18]
	p2                                       uint8                // data[19]
	timeRangeIndicator                       uint8                // data[20]
	numberIncludedInAverage                  uint32               // parse2ByteUint(data[21], data[22])
	numberMissingFromAveragesOrAccumulations uint8                // data[23]
	centuryOfReferenceTimeOfData             uint8                // data[24]
	subCentre                                uint8                // data[25]
	decimalScaleFactor                       int32                // parse2ByteInt(data[26], data[27])
}

// IndicatorOfParameter returns the parameter code of the message, to be
// interpreted with the table given by Table2Version.
func (p *ProductDefinition) IndicatorOfParameter() IndicatorOfParameter {
	return p.indicatorOfParameter
}

// Table2Version returns the version of the parameter table in use.
func (p *ProductDefinition) Table2Version() uint8 {
	return p.table2Version
}

// Year returns the four digit year of the reference time.
func (p *ProductDefinition) Year() int {
	return (int(p.centuryOfReferenceTimeOfData)-1)*100 + int(p.yearOfCentury)
}

// DataDate returns the reference date as a YYYYMMDD integer.
func (p *ProductDefinition) DataDate() int64 {
	return int64(p.Year())*10000 + int64(p.month)*100 + int64(p.day)
}

// DataTime returns the reference time of day as a HHMM integer.
func (p *ProductDefinition) DataTime() int64 {
	return int64(p.hour)*100 + int64(p.minute)
}

// Steps returns the start and end of the forecast time range, in units of
// UnitOfTimeRange, as interpreted from the time range indicator (Code table 5).
func (p *ProductDefinition) Steps() (start, end int64) {
	switch p.timeRangeIndicator {
	case 0:
		return int64(p.p1), int64(p.p1)
	case 1:
		return 0, 0
	case 2, 3, 4, 5:
		return int64(p.p1), int64(p.p2)
	case 10:
		// P1 occupies octets 19 and 20.
		v := int64(p.p1)<<8 | int64(p.p2)
		return v, v
	default:
		return int64(p.p1), int64(p.p1)
	}
}

// IndicatorOfParameter is one of the values from the table defined here: https://codes.ecmwf.int/grib/format/grib1/parameter/2/.
//
// A machine readable list of parameters can be obtianed from https://codes.ecmwf.int/grib/json/.
type IndicatorOfParameter uint8

// Parameters of ECMWF table 128.
const (
	ParameterIDGeopotential                   = 129
	ParameterIDTemperature                    = 130
	ParameterIDUComponentOfWind               = 131
	ParameterIDVComponentOfWind               = 132
	ParameterIDSpecificHumidity               = 133
	ParameterIDSurfacePressure                = 134
	ParameterIDMeanSeaLevelPressure           = 151
	ParameterIDRelativeHumidity               = 157
	ParameterIDTotalCloudCover                = 164
	ParameterID10MeterUWindComponent          = 165
	ParameterID10MeterVWindComponent          = 166
	ParameterID2MeterTemperature              = 167
	ParameterID2MeterDewpointTemperature      = 168
	ParameterIDSurfaceSolarRadiationDownwards = 169
	ParameterIDTotalPrecipitation             = 228
)

/*
	Code table 1 – Flag indication relative to Sections 2 and 3

Bit No. Value Meaning
1       0     Section 2 omitted
1       1     Section 2 included
2       0     Section 3 omitted
2       1     Section 3 included
Note: Bits enumerated from left to right.
*/
const (
	section2Included = 1 << 7
	section3Included = 1 << 6
)

// GridDescriptionIncluded reports whether the message carries Section 2.
func (p *ProductDefinition) GridDescriptionIncluded() bool {
	return (p.section1Flags & section2Included) != 0
}

// BitmapIncluded reports whether the message carries Section 3.
func (p *ProductDefinition) BitmapIncluded() bool {
	return (p.section1Flags & section3Included) != 0
}

func (p *ProductDefinition) parseBytes(data []byte) (int, error) {
	/* https://apps.ecmwf.int/codes/grib/format/grib1/sections/1/

		Octets	Key	Type	Content
	1-3	section1Length	unsigned	Length of section
	4	table2Version	unsigned	GRIB tables Version No. (currently 3 for international exchange) Version numbers 128-254 are reserved for local use
	5	centre	codetable	Identification of originating/generating centre (see Code table 0 = Common Code table C1 in Part C/c.)
	6	generatingProcessIdentifier	unsigned	Generating process identification number (allocated by originating centre)
	7	gridDefinition	unsigned	Grid definition (Number of grid used from catalogue defined by originating centre)
	8	section1Flags	codeflag	Flag (see Regulation 92.3.2 and Code table 1)
	9	indicatorOfParameter	codetable	Indicator of parameter (see Code table 2)
	10	indicatorOfTypeOfLevel	codetable	Indicator of type of level (see Code table 3)
	11-12			Height, pressure, etc. of levels (see Code table 3)
	13	yearOfCentury	unsigned	Year of century
	14	month	unsigned	Month      Reference time of data date and time of
	15	day	unsigned	Day          start of averaging or accumulation period
	16	hour	unsigned	Hour
	17	minute	unsigned	Minute
	18	unitOfTimeRange	codetable	Indicator of unit of time range (see Code table 4)
	19	P1	unsigned	P1 Period of time (number of time units) (0 for analyses or initialized analyses). Units of time given by octet 18
	20	P2	unsigned	P2 Period of time (number of time units); or Time interval between successive analyses, initialized analyses or forecasts, undergoing averaging or accumulation. Units of time given by octet 18
	21	timeRangeIndicator	codetable	Time range indicator (see Code table 5)
	22-23	numberIncludedInAverage	unsigned	Number included in average, when octet 21 (Code table 5) indicates an average or accumulation; otherwise set to zero
	24	numberMissingFromAveragesOrAccumulations	unsigned	Number missing from averages or accumulations
	25	centuryOfReferenceTimeOfData	unsigned	Century of reference time of data
	26	subCentre	codetable	Sub-centre identification (see common Code table C1 in Part C/c., Note (3))
	27-28	decimalScaleFactor	signed	Units decimal scale factor (D)
	29-40			Reserved: need not be present
	41-nn			Reserved for originating centre use
	*/

	if len(data) < 28 { // data[27] should be decimalScaleFactor
		return 0, fmt.Errorf("GRIB file section must be at least 28 bytes long")
	}
	p.section1Length = parse3ByteUint(data[0], data[1], data[2])
	p.table2Version = data[3]
	p.center = data[4]
	p.generatingProcessIdentifier = data[5]
	p.gridDefinition = data[6]
	p.section1Flags = data[7]
	p.indicatorOfParameter = IndicatorOfParameter(data[8])
	p.indicatorOfTypeOfLevel = data[9]
	p.heightPressureEtcOfLevels = parse2ByteUint(data[10], data[11])
	p.yearOfCentury = data[12]
	p.month = data[13]
	p.day = data[14]
	p.hour = data[15]
	p.minute = data[16]
	p.unitOfTimeRange = UnitOfTime(data[17])
	p.p1 = data[18]
	p.p2 = data[19]
	p.timeRangeIndicator = data[20]
	p.numberIncludedInAverage = parse2ByteUint(data[21], data[22])
	p.numberMissingFromAveragesOrAccumulations = data[23]
	p.centuryOfReferenceTimeOfData = data[24]
	p.subCentre = data[25]
	p.decimalScaleFactor = parse2ByteInt(data[26], data[27])

	if p.section1Length < 28 {
		return 0, fmt.Errorf("section 1 claims length %d, shorter than the 28 mandatory octets", p.section1Length)
	}
	if int(p.section1Length) > len(data) {
		return 0, fmt.Errorf("section 1 claims its length %d is greater than data size %d", p.section1Length, len(data))
	}

	return int(p.section1Length), nil
}

// GridDescription contains information about the coordinate system and bitmap entries.
//
// See https://apps.ecmwf.int/codes/grib/format/grib1/sections/2/.
type GridDescription struct {
	// 	Length of section (octets)
	section2Length uint32
	// 	NV number of vertical coordinate parameters
	numberOfVerticalCoordinateValues uint8
	// PV location (octet number) of the list of vertical coordinate parameters,
	// if present; or PL location (octet number) of the list of numbers of points
	// in each row (if no vertical coordinate parameters are present), if present;
	// or 255 (all bits set to 1) if neither are present
	pvlLocation uint8

	// Data representation type (see Code table 6)
	dataRepresentationType DataRepresentationType

	// parsedValue is the parsed value of the grid description based on dataRepresentationType.
	parsedValue interface{} // *LatLongGrid, for example.
}

// DataRepresentationType returns the grid type code (Code table 6).
func (s *GridDescription) DataRepresentationType() DataRepresentationType {
	return s.dataRepresentationType
}

func (s *GridDescription) parseBytes(data []byte) (int, error) {
	/* https://apps.ecmwf.int/codes/grib/format/grib1/sections/2/

	Octets	Key	Type	Content
	1-3	section2Length	unsigned	Length of section (octets)
	4	numberOfVerticalCoordinateValues	unsigned	NV number of vertical coordinate parameters
	5	pvlLocation	unsigned	PV location or PL location, or 255 if neither are present
	6	dataRepresentationType	codetable	Data representation type (see Code table 6)
	7-32			Grid definition (according to data representation type octet 6 above)
	*/

	if len(data) < 6 { // data[5] should be valid
		return 0, fmt.Errorf("GRIB file section must be at least 6 bytes long, got %d", len(data))
	}
	s.section2Length = parse3ByteUint(data[0], data[1], data[2])
	s.numberOfVerticalCoordinateValues = data[3]
	s.pvlLocation = data[4]
	s.dataRepresentationType = DataRepresentationType(data[5])

	if int(s.section2Length) > len(data) {
		return 0, fmt.Errorf("section 2 claims its length %d is greater than data size %d", s.section2Length, len(data))
	}
	if s.section2Length < 6 {
		return 0, fmt.Errorf("section 2 claims length %d, shorter than its header", s.section2Length)
	}

	representationBytes := data[6:s.section2Length]
	switch s.dataRepresentationType {
	case DataRepresentationTypeLL:
		grid := &LatLongGrid{}
		if err := grid.parseBytes(representationBytes); err != nil {
			return 0, fmt.Errorf("section 2 failed to parse DataRepresentationTypeLL: %w", err)
		}
		s.parsedValue = grid
	default:
		s.parsedValue = unparsedGridDescription(representationBytes)
		// Don't attempt to parse the remaining bytes.
	}

	return int(s.section2Length), nil
}

// LatLongGrid returns the LatLongGrid parsed from the GridDescription iff
// the DataRepresentationType is DataRepresentationTypeLL. Otherwise, returns
// nil.
func (s *GridDescription) LatLongGrid() *LatLongGrid {
	if x, ok := s.parsedValue.(*LatLongGrid); ok {
		return x
	}
	return nil
}

// unparsedGridDescription stores the part of GridDescription that wasn't parsed.
type unparsedGridDescription []byte

// Bitmap marks which grid points carry a packed value.
type Bitmap struct {
	// 	Length of section (octets)
	section3Length uint32
	// 	Number of unused bits at end of Section 3
	numberOfUnusedBitsAtEndOfSection3 uint8
	// Table reference: If the octets contain zero, a bit-map follows If the
	// octets contain a number, it refers to a predetermined bit-map provided by
	// the centre.
	tableReference uint32

	// The bit-map contiguous bits with a bit to data point correspondence,
	// ordered as defined in the grid definition.
	values []byte
}

func (s *Bitmap) parseBytes(data []byte) (int, error) {
	/* https://apps.ecmwf.int/codes/grib/format/grib1/sections/3/

	Octets	Key	Type	Content
	1-3	section3Length	unsigned	Length of section
	4	numberOfUnusedBitsAtEndOfSection3	unsigned	Number of unused bits at end of Section 3
	5-6	tableReference	unsigned	Table reference
	7-nn			The bit-map
	*/

	if len(data) < 6 { // data[5] should be valid
		return 0, fmt.Errorf("GRIB file section must be at least 6 bytes long, got %d", len(data))
	}
	s.section3Length = parse3ByteUint(data[0], data[1], data[2])
	s.numberOfUnusedBitsAtEndOfSection3 = data[3]
	s.tableReference = parse2ByteUint(data[4], data[5])

	if int(s.section3Length) > len(data) {
		return 0, fmt.Errorf("section 3 claims its length %d is greater than data size %d", s.section3Length, len(data))
	}
	if s.section3Length < 6 {
		return 0, fmt.Errorf("section 3 claims length %d, shorter than its header", s.section3Length)
	}

	if s.tableReference == 0 {
		s.values = data[6:s.section3Length]
	}

	return int(s.section3Length), nil
}

// Predefined reports whether the bitmap refers to a centre-defined bitmap
// instead of carrying its bits inline.
func (s *Bitmap) Predefined() bool {
	return s.tableReference != 0
}

// Present reports whether grid point i has a value.
func (s *Bitmap) Present(i int) bool {
	if i < 0 || i/8 >= len(s.values) {
		return false
	}
	return s.values[i/8]&(1<<(7-uint(i%8))) != 0
}

// Count returns the number of points among the first n that have a value.
func (s *Bitmap) Count(n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if s.Present(i) {
			count++
		}
	}
	return count
}

type binaryDataSection struct {
	// 	Length of section (octets)
	section4Length uint32
	// 	Flag (see Code table 11) (first 4 bits). Number of unused bits at end of Section 4 (last 4 bits)
	dataFlag binaryDataFlag
	// Scale factor (E)
	binaryScaleFactor int32

	// Reference value (minimum of packed values)
	referenceValue float64
	// Number of bits containing each packed value
	bitsPerValue uint8

	// Packed values; their layout depends on dataFlag.
	packed []byte
}

func (s *binaryDataSection) parseBytes(data []byte) (int, error) {
	/* https://codes.ecmwf.int/grib/format/grib1/sections/4/

	1-3	section4Length	unsigned	Length of section
	4	dataFlag	codeflag	Flag (see Code table 11) (first 4 bits). Number of unused bits at end of Section 4 (last 4 bits)
	5-6	binaryScaleFactor	signed	Scale factor (E)
	7-10	referenceValue	real	Reference value (minimum of packed values)
	11	bitsPerValue	unsigned	Number of bits containing each packed value
	12-nn			Variable, depending on the flag value in octet 4
	*/

	if len(data) < 11 { // data[10] should be valid
		return 0, fmt.Errorf("GRIB file section must be at least 11 bytes long, got %d", len(data))
	}
	s.section4Length = parse3ByteUint(data[0], data[1], data[2])
	s.dataFlag = binaryDataFlag(data[3])
	s.binaryScaleFactor = parse2ByteInt(data[4], data[5])
	s.referenceValue = hexademicalfloatingpoint.Parse32(data[6:10])
	s.bitsPerValue = data[10]

	if int(s.section4Length) > len(data) {
		return 0, fmt.Errorf("section 4 claims its length %d is greater than data size %d", s.section4Length, len(data))
	}
	if s.section4Length < 11 {
		return 0, fmt.Errorf("section 4 claims length %d, shorter than its header", s.section4Length)
	}
	if s.bitsPerValue > 32 {
		return 0, fmt.Errorf("bitsPerValue = %d, at most 32 is supported", s.bitsPerValue)
	}

	s.packed = data[11:s.section4Length]

	return int(s.section4Length), nil
}

// https://codes.ecmwf.int/grib/format/grib1/flag/11/
type binaryDataFlag uint8

const (
	binaryDataFlagSphericalHarmonicCoefficients = 1 << (8 - 1)
	binaryDataFlagComplexOrSecondOrderPacking   = 1 << (8 - 2)
	binaryDataFlagIntegerValues                 = 1 << (8 - 3)
	binaryDataFlagOctet14ContainsMoreFlagValues = 1 << (8 - 4)
)

func (f binaryDataFlag) sphericalHarmonics() bool {
	return f&binaryDataFlagSphericalHarmonicCoefficients != 0
}

func (f binaryDataFlag) complexPacking() bool {
	return f&binaryDataFlagComplexOrSecondOrderPacking != 0
}

func (f binaryDataFlag) integerValues() bool {
	return f&binaryDataFlagIntegerValues != 0
}

func (f binaryDataFlag) additionalFlags() bool {
	return f&binaryDataFlagOctet14ContainsMoreFlagValues != 0
}

func (f binaryDataFlag) unusedBits() int {
	return int(f & 0x0f)
}

type endSection struct{}

func (s *endSection) parseBytes(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("got end section length %d, expected data length of at least 4", len(data))
	}
	if got, want := string(data[0:4]), "7777"; got != want {
		return 0, fmt.Errorf("got end sequence %q, want %q", got, want)
	}
	return 4, nil
}

/*
Note on endinaness:

SPECIFICATIONS OF OCTET CONTENTS
Notes:
(1) Octets are numbered 1, 2, 3, etc., starting at the beginning of each section.
(2) In the following, bit positions within octets are referred to as bit 1 to bit 8, where bit 1 is the most significant and bit
8 is the least significant bit. Thus, an octet with only bit 8 set to 1 would have the integer value 1.

*/

func parse4ByteUint(byte0, byte1, byte2, byte3 byte) uint32 {
	return binary.BigEndian.Uint32([]byte{byte0, byte1, byte2, byte3})
}

func parse3ByteUint(byte0, byte1, byte2 byte) uint32 {
	return parse4ByteUint(0, byte0, byte1, byte2)
}

func parse2ByteUint(byte0, byte1 byte) uint32 {
	return parse3ByteUint(0, byte0, byte1)
}

func parse2ByteInt(byte0, byte1 byte) int32 {
	// A negative value of D shall be indicated by setting the high-order bit (bit 1) in the left-hand octet to 1 (on).
	unsigned := parse2ByteUint(byte0, byte1)
	absValue := (unsigned & 0b0111111111111111)
	negative := unsigned&(1<<15) != 0
	if negative {
		return -1 * int32(absValue)
	}
	return int32(absValue)
}

func parse3ByteInt(byte0, byte1, byte2 byte) int32 {
	unsigned := parse3ByteUint(byte0, byte1, byte2)
	absValue := (unsigned & 0b011111111111111111111111)
	negative := unsigned&(1<<23) != 0
	if negative {
		return -1 * int32(absValue)
	}
	return int32(absValue)
}

// UnitOfTime is based on table 4 from the spec. See
// https://github.com/ecmwf/eccodes/blob/fd549250dc5fe8f7f07dd242b8e781f73982735f/definitions/grib1/4.table
type UnitOfTime uint8

// Units of time from the GRIB1 spec.
//
// See https://apps.ecmwf.int/codes/grib/format/grib1/ctable/4/
const (
	UnitOfTimeMinute    = 0
	UnitOfTimeHour      = 1
	UnitOfTimeDay       = 2
	UnitOfTimeMonth     = 3
	UnitOfTimeYear      = 4
	UnitOfTimeDecade    = 5
	UnitOfTimeNormal    = 6
	UnitOfTimeCentury   = 7
	UnitOfTime3Hours    = 10
	UnitOfTime6Hours    = 11
	UnitOfTime12Hours   = 12
	UnitOfTime15Minutes = 13
	UnitOfTime30Minutes = 14
	UnitOfTimeSecond    = 254
)

// DataRepresentationType indicates the data representation used.
type DataRepresentationType uint8

const (
	// DataRepresentationTypeLL indicates Latitude/Longitude Grid.
	DataRepresentationTypeLL = 0
	// DataRepresentationTypeMM indicates Mercator Projection Grid.
	DataRepresentationTypeMM = 1
	// DataRepresentationTypeLC indicates Lambert Conformal.
	DataRepresentationTypeLC = 3
	// DataRepresentationTypeGG indicates Gaussian Latitude/Longitude Grid.
	DataRepresentationTypeGG = 4
	// DataRepresentationTypePS indicates Polar Stereographic Projection Grid.
	DataRepresentationTypePS = 5
	// DataRepresentationType10 indicates Rotated Latitude/Longitude grid.
	DataRepresentationType10 = 10
	// DataRepresentationTypeSH indicates Spherical Harmonic Coefficients.
	DataRepresentationTypeSH = 50
)
